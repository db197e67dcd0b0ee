package ledger

import (
	"context"

	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad entre el historial de movimientos y el agregado
// de stock: ambos se escriben o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// Config parámetros del motor de inventario (ver pkg/config).
type Config struct {
	// MaxRetries reintentos automáticos ante ErrConflict antes de propagarlo al caller.
	MaxRetries int
}
