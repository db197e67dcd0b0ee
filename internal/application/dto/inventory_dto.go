package dto

import "time"

// ArrivalRequest body para POST /api/arrivals (entrada de stock).
type ArrivalRequest struct {
	BookID   string `json:"book_id"`
	Quantity int64  `json:"quantity"`
}

// AdjustmentRequest body para POST /api/inventory-adjustments (pérdida o robo).
type AdjustmentRequest struct {
	BookID   string `json:"book_id"`
	Type     string `json:"type"` // LOSS | THEFT
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// MovementResponse representación HTTP de un movimiento de stock.
type MovementResponse struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementRecordedResponse respuesta de registro de movimiento: la nueva cantidad
// ya validada dentro de la misma transacción.
type MovementRecordedResponse struct {
	MovementID string `json:"movement_id"`
	BookID     string `json:"book_id"`
	Type       string `json:"type"`
	Quantity   int64  `json:"quantity"`
	NewStock   int64  `json:"new_stock"`
}

// MovementQuery filtros para GET /api/inventory/:book_id/movements.
type MovementQuery struct {
	Types string `query:"types"` // lista separada por comas: ARRIVAL,SALE,...
	From  string `query:"from"`  // RFC3339
	To    string `query:"to"`    // RFC3339
	Order string `query:"order"` // asc | desc (asc por defecto)
	PageRequest
}

// StockLevelResponse fila del listado de inventario.
type StockLevelResponse struct {
	BookID    string    `json:"book_id"`
	ISBN      string    `json:"isbn"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	GenreName string    `json:"genre_name"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuantityResponse respuesta de GET /api/inventory/:book_id/quantity.
type QuantityResponse struct {
	BookID   string `json:"book_id"`
	Quantity int64  `json:"quantity"`
}
