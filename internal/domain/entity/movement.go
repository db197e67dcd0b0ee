package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeARRIVAL = "ARRIVAL" // entrada por recepción
	MovementTypeSALE    = "SALE"    // venta
	MovementTypeLOSS    = "LOSS"    // pérdida
	MovementTypeTHEFT   = "THEFT"   // robo
)

// Movement representa un movimiento de stock inmutable (historial append-only).
// Quantity siempre es positiva; la dirección la determina el tipo.
type Movement struct {
	ID        string
	BookID    string
	Type      string
	Quantity  int64  // > 0 siempre
	Reason    string // obligatorio en LOSS/THEFT, vacío en el resto
	CreatedAt time.Time
}

// IsValidMovementType indica si el tipo de movimiento es conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeARRIVAL, MovementTypeSALE, MovementTypeLOSS, MovementTypeTHEFT:
		return true
	}
	return false
}

// MovementEffect devuelve el efecto con signo sobre el stock: ARRIVAL suma, el resto resta.
func MovementEffect(t string, quantity int64) int64 {
	if t == MovementTypeARRIVAL {
		return quantity
	}
	return -quantity
}
