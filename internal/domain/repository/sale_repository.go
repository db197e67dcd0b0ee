package repository

import (
	"time"

	"github.com/davidmparra/libreria-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
// Las ventas son inmutables: no existe Update ni Delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByBook(bookID string, limit, offset int) ([]*entity.Sale, error)
	ExistsByBook(bookID string) (bool, error)
	// TopSales ranking de libros por unidades vendidas desde since (nil = histórico completo).
	TopSales(since *time.Time, limit int) ([]*entity.TopSale, error)
	TopSalesByGenre(genreID string, since *time.Time, limit int) ([]*entity.TopSale, error)
}
