package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davidmparra/libreria-api/internal/domain"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

// GenreUseCase casos de uso CRUD para géneros (datos maestros del catálogo).
type GenreUseCase struct {
	genreRepo repository.GenreRepository
	bookRepo  repository.BookRepository
}

// NewGenreUseCase construye el caso de uso.
func NewGenreUseCase(genreRepo repository.GenreRepository, bookRepo repository.BookRepository) *GenreUseCase {
	return &GenreUseCase{genreRepo: genreRepo, bookRepo: bookRepo}
}

// Create crea un género. El nombre es único.
func (uc *GenreUseCase) Create(ctx context.Context, name string) (*entity.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.genreRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	genre := &entity.Genre{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.genreRepo.Create(genre); err != nil {
		return nil, err
	}
	return genre, nil
}

// GetByID obtiene un género por ID.
func (uc *GenreUseCase) GetByID(ctx context.Context, id string) (*entity.Genre, error) {
	genre, err := uc.genreRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, domain.ErrNotFound
	}
	return genre, nil
}

// List lista géneros con paginación.
func (uc *GenreUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Genre, error) {
	return uc.genreRepo.List(limit, offset)
}

// Delete elimina un género. Un género referenciado por libros está protegido:
// chequeo explícito de integridad referencial antes de borrar.
func (uc *GenreUseCase) Delete(ctx context.Context, id string) error {
	genre, err := uc.genreRepo.GetByID(id)
	if err != nil {
		return err
	}
	if genre == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.bookRepo.ExistsByGenre(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrProtected
	}
	return uc.genreRepo.Delete(id)
}
