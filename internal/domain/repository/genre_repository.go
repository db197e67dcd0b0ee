package repository

import "github.com/davidmparra/libreria-api/internal/domain/entity"

// GenreRepository define el puerto de persistencia para Genre (DIP).
type GenreRepository interface {
	Create(genre *entity.Genre) error
	GetByID(id string) (*entity.Genre, error)
	GetByName(name string) (*entity.Genre, error)
	List(limit, offset int) ([]*entity.Genre, error)
	Delete(id string) error
}
