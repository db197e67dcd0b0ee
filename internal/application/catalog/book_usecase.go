package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidmparra/libreria-api/internal/application/dto"
	"github.com/davidmparra/libreria-api/internal/domain"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

// BookUseCase casos de uso CRUD para libros. El stock nunca se toca aquí:
// lo deriva el motor de inventario desde los movimientos.
type BookUseCase struct {
	bookRepo  repository.BookRepository
	genreRepo repository.GenreRepository
	movRepo   repository.MovementRepository
	saleRepo  repository.SaleRepository
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(
	bookRepo repository.BookRepository,
	genreRepo repository.GenreRepository,
	movRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
) *BookUseCase {
	return &BookUseCase{bookRepo: bookRepo, genreRepo: genreRepo, movRepo: movRepo, saleRepo: saleRepo}
}

// Create crea un libro. ISBN único; el género debe existir; precio no negativo.
func (uc *BookUseCase) Create(ctx context.Context, in dto.CreateBookRequest) (*entity.Book, error) {
	if in.ISBN == "" || in.Title == "" || in.GenreID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	genre, err := uc.genreRepo.GetByID(in.GenreID)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.bookRepo.GetByISBN(in.ISBN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	book := &entity.Book{
		ID:        uuid.New().String(),
		ISBN:      in.ISBN,
		Title:     in.Title,
		Author:    in.Author,
		Publisher: in.Publisher,
		GenreID:   in.GenreID,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.bookRepo.Create(book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID obtiene un libro por ID.
func (uc *BookUseCase) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	book, err := uc.bookRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

// List lista libros con paginación.
func (uc *BookUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Book, error) {
	return uc.bookRepo.List(limit, offset)
}

// Update actualiza atributos no ligados al stock (título, autor, precio, etc.).
// Cambiar el precio no afecta ventas ya registradas: cada venta congela el suyo.
func (uc *BookUseCase) Update(ctx context.Context, id string, in dto.UpdateBookRequest) (*entity.Book, error) {
	book, err := uc.bookRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.Publisher != nil {
		book.Publisher = *in.Publisher
	}
	if in.GenreID != nil {
		genre, err := uc.genreRepo.GetByID(*in.GenreID)
		if err != nil {
			return nil, err
		}
		if genre == nil {
			return nil, domain.ErrNotFound
		}
		book.GenreID = *in.GenreID
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		book.Price = *in.Price
	}
	book.UpdatedAt = time.Now()
	if err := uc.bookRepo.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete elimina un libro sin historial. Un libro con movimientos o ventas está
// protegido: el historial contable es permanente.
func (uc *BookUseCase) Delete(ctx context.Context, id string) error {
	book, err := uc.bookRepo.GetByID(id)
	if err != nil {
		return err
	}
	if book == nil {
		return domain.ErrBookNotFound
	}
	hasMovements, err := uc.movRepo.ExistsByBook(id)
	if err != nil {
		return err
	}
	if hasMovements {
		return domain.ErrProtected
	}
	hasSales, err := uc.saleRepo.ExistsByBook(id)
	if err != nil {
		return err
	}
	if hasSales {
		return domain.ErrProtected
	}
	return uc.bookRepo.Delete(id)
}
