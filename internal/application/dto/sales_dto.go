package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales. SoldAt opcional (por defecto: ahora);
// puede ser retroactivo pero nunca futuro.
type CreateSaleRequest struct {
	BookID   string     `json:"book_id"`
	Quantity int64      `json:"quantity"`
	SoldAt   *time.Time `json:"sold_at,omitempty"`
}

// SaleResponse representación HTTP de una venta.
type SaleResponse struct {
	ID        string          `json:"id"`
	BookID    string          `json:"book_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	SoldAt    time.Time       `json:"sold_at"`
	CreatedAt time.Time       `json:"created_at"`
	NewStock  int64           `json:"new_stock"`
}

// TopSaleResponse fila del ranking de más vendidos.
type TopSaleResponse struct {
	BookID        string `json:"book_id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	TotalQuantity int64  `json:"total_quantity"`
}
