package repository

import "github.com/davidmparra/libreria-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para el agregado de stock.
// Get devuelve un Stock en cero si el libro aún no tiene fila (agregado perezoso):
// nunca nil sin error.
type StockRepository interface {
	Get(bookID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila del libro contra otros escritores (SELECT FOR UPDATE),
	// materializándola en cero si aún no existe para que el bloqueo siempre tenga efecto.
	GetForUpdate(bookID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListLevels(limit, offset int) ([]*entity.StockLevel, error)
}
