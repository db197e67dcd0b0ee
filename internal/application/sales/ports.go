package sales

import (
	"context"
	"time"

	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

// SaleTxRunner extiende la unidad de trabajo del motor de inventario con el repositorio
// de ventas: la venta, su movimiento SALE y el agregado de stock se confirman o se
// revierten juntos.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockMover puerto hacia el motor de inventario: aplicar un movimiento dentro de la
// transacción del caller (implementado por ledger.UseCase).
type StockMover interface {
	ApplyMovementInTx(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		bookID, movType string,
		quantity int64,
		reason string,
		now time.Time,
	) (*entity.Movement, int64, error)
}
