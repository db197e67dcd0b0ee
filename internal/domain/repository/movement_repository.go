package repository

import (
	"time"

	"github.com/davidmparra/libreria-api/internal/domain/entity"
)

// Orden de listado por created_at.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// MovementFilter filtros de listado del historial de movimientos.
type MovementFilter struct {
	Types  []string // vacío = todos
	From   *time.Time
	To     *time.Time
	Order  string // OrderAsc u OrderDesc
	Limit  int
	Offset int
}

// MovementRepository define el puerto de persistencia del historial de movimientos.
// El historial es append-only: no existe Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByBook(bookID string, f MovementFilter) ([]*entity.Movement, error)
	ExistsByBook(bookID string) (bool, error)
}
