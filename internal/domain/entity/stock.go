package entity

import "time"

// Stock representa la cantidad actual en existencia de un libro (agregado derivado).
// No existe fila hasta el primer movimiento: el repositorio devuelve un Stock en cero
// en lugar de "no encontrado" para evitar ramas de null en los callers.
type Stock struct {
	BookID    string
	Quantity  int64 // siempre >= 0
	UpdatedAt time.Time
}

// StockLevel vista de solo lectura del stock con los datos del libro (listados).
type StockLevel struct {
	BookID    string
	ISBN      string
	Title     string
	Author    string
	GenreName string
	Quantity  int64
	UpdatedAt time.Time
}
