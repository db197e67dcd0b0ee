package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davidmparra/libreria-api/internal/domain"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

// UseCase es el motor de inventario: único escritor del historial de movimientos y del
// agregado de stock. Serializa las escrituras por libro con bloqueo de fila
// (SELECT FOR UPDATE dentro del TxRunner) y garantiza stock nunca negativo.
type UseCase struct {
	txRunner  TxRunner
	bookRepo  repository.BookRepository
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
	cfg       Config
}

// NewUseCase construye el motor. stockRepo y movRepo son las vistas de solo lectura
// (atadas al pool); las escrituras siempre pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	bookRepo repository.BookRepository,
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	cfg Config,
) *UseCase {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &UseCase{
		txRunner:  txRunner,
		bookRepo:  bookRepo,
		stockRepo: stockRepo,
		movRepo:   movRepo,
		cfg:       cfg,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	BookID   string
	Type     string
	Quantity int64
	Reason   string
}

// MovementResult resultado de un movimiento registrado.
type MovementResult struct {
	MovementID  string
	NewQuantity int64
}

// RecordMovement valida y aplica un movimiento: lee el agregado con bloqueo de fila,
// verifica que el resultado no sea negativo, apenda el movimiento y actualiza el stock
// en una sola transacción. Ante ErrConflict reintenta hasta cfg.MaxRetries veces.
func (uc *UseCase) RecordMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if !entity.IsValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	reason := strings.TrimSpace(input.Reason)
	switch input.Type {
	case entity.MovementTypeLOSS, entity.MovementTypeTHEFT:
		// El motivo en blanco (solo espacios) cuenta como ausente.
		if reason == "" {
			return nil, domain.ErrMissingReason
		}
	default:
		// En ARRIVAL/SALE el motivo se descarta.
		reason = ""
	}

	book, err := uc.bookRepo.GetByID(input.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}

	var result *MovementResult
	err = uc.withConflictRetry(ctx, func() error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			stockRepo repository.StockRepository,
		) error {
			mov, newQty, err := uc.ApplyMovementInTx(movRepo, stockRepo, book.ID, input.Type, input.Quantity, reason, time.Now())
			if err != nil {
				return err
			}
			result = &MovementResult{MovementID: mov.ID, NewQuantity: newQty}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyMovementInTx aplica un movimiento usando los repositorios proporcionados (misma
// transacción del caller). Lo usa RecordMovement y el motor de ventas para que la venta
// y su movimiento SALE compartan unidad de trabajo. Asume entrada ya validada.
func (uc *UseCase) ApplyMovementInTx(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	bookID, movType string,
	quantity int64,
	reason string,
	now time.Time,
) (*entity.Movement, int64, error) {
	// Bloquea la fila de stock del libro: serializa contra otros escritores del mismo
	// libro sin bloquear libros distintos.
	stock, err := stockRepo.GetForUpdate(bookID)
	if err != nil {
		return nil, 0, err
	}
	newQty := stock.Quantity + entity.MovementEffect(movType, quantity)
	if newQty < 0 {
		// Se rechaza la operación completa: sin movimiento y sin tocar el agregado.
		return nil, 0, domain.ErrInsufficientStock
	}

	mov := &entity.Movement{
		ID:        uuid.New().String(),
		BookID:    bookID,
		Type:      movType,
		Quantity:  quantity,
		Reason:    reason,
		CreatedAt: now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, 0, err
	}

	stock.Quantity = newQty
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, 0, err
	}
	return mov, newQty, nil
}

// GetQuantity devuelve la cantidad actual de un libro. Un libro sin movimientos aún
// tiene cantidad cero (agregado perezoso); un libro inexistente es ErrBookNotFound.
func (uc *UseCase) GetQuantity(ctx context.Context, bookID string) (int64, error) {
	book, err := uc.bookRepo.GetByID(bookID)
	if err != nil {
		return 0, err
	}
	if book == nil {
		return 0, domain.ErrBookNotFound
	}
	stock, err := uc.stockRepo.Get(bookID)
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

// ListMovements lista el historial de un libro con filtros de tipo y rango de fechas,
// ordenado por created_at. Lectura pura: nunca toma el bloqueo de escritura.
func (uc *UseCase) ListMovements(ctx context.Context, bookID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	if err := validateFilter(&f); err != nil {
		return nil, err
	}
	book, err := uc.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return uc.movRepo.ListByBook(bookID, f)
}

// ListStockLevels listado paginado del inventario actual (fachada de consulta).
func (uc *UseCase) ListStockLevels(ctx context.Context, limit, offset int) ([]*entity.StockLevel, error) {
	if limit <= 0 || limit > 100 || offset < 0 {
		return nil, domain.ErrInvalidFilter
	}
	return uc.stockRepo.ListLevels(limit, offset)
}

// withConflictRetry ejecuta fn y reintenta mientras devuelva ErrConflict, con tope
// acotado. Cualquier otro error (o el agotamiento) se propaga tal cual.
func (uc *UseCase) withConflictRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= uc.cfg.MaxRetries; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = fn()
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	return err
}

func validateFilter(f *repository.MovementFilter) error {
	for _, t := range f.Types {
		if !entity.IsValidMovementType(t) {
			return domain.ErrInvalidFilter
		}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return domain.ErrInvalidFilter
	}
	switch f.Order {
	case "":
		f.Order = repository.OrderAsc
	case repository.OrderAsc, repository.OrderDesc:
	default:
		return domain.ErrInvalidFilter
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 || f.Offset < 0 {
		return domain.ErrInvalidFilter
	}
	return nil
}
