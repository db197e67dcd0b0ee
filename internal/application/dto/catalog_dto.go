package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGenreRequest body para POST /api/genres.
type CreateGenreRequest struct {
	Name string `json:"name"`
}

// GenreResponse representación HTTP de un género.
type GenreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBookRequest body para POST /api/books.
type CreateBookRequest struct {
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Publisher string          `json:"publisher"`
	GenreID   string          `json:"genre_id"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateBookRequest body para PUT /api/books/:id. Solo atributos no ligados al stock.
type UpdateBookRequest struct {
	Title     *string          `json:"title,omitempty"`
	Author    *string          `json:"author,omitempty"`
	Publisher *string          `json:"publisher,omitempty"`
	GenreID   *string          `json:"genre_id,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// BookResponse representación HTTP de un libro.
type BookResponse struct {
	ID        string          `json:"id"`
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Publisher string          `json:"publisher"`
	GenreID   string          `json:"genre_id"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
