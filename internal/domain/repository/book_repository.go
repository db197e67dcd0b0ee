package repository

import "github.com/davidmparra/libreria-api/internal/domain/entity"

// BookRepository define el puerto de persistencia para Book (DIP).
// El motor de inventario solo usa GetByID; el resto es catálogo.
type BookRepository interface {
	Create(book *entity.Book) error
	GetByID(id string) (*entity.Book, error)
	GetByISBN(isbn string) (*entity.Book, error)
	Update(book *entity.Book) error
	List(limit, offset int) ([]*entity.Book, error)
	ExistsByGenre(genreID string) (bool, error)
	Delete(id string) error
}
