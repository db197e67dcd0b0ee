package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book representa un libro del catálogo (ISBN único).
// Price es el precio de venta de referencia; las ventas congelan su propio precio.
// El stock nunca se modifica aquí: se deriva de movimientos en el motor de inventario.
type Book struct {
	ID        string
	ISBN      string
	Title     string
	Author    string
	Publisher string
	GenreID   string
	Price     decimal.Decimal // precio con impuestos incluidos
	CreatedAt time.Time
	UpdatedAt time.Time
}
