package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada (inmutable). UnitPrice es el precio del libro
// al momento de la venta: cambios posteriores del precio no afectan ventas pasadas.
// Toda Sale nace junto a exactamente un Movement tipo SALE con la misma cantidad.
type Sale struct {
	ID        string
	BookID    string
	Quantity  int64
	UnitPrice decimal.Decimal
	SoldAt    time.Time // fecha real de la venta (puede ser retroactiva)
	CreatedAt time.Time
}

// TopSale fila agregada de ventas por libro (para rankings).
type TopSale struct {
	BookID        string
	Title         string
	Author        string
	TotalQuantity int64
}
