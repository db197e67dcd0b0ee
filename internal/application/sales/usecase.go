package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/davidmparra/libreria-api/internal/domain"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

// Periodos aceptados por los rankings de ventas.
var periodDeltas = map[string]time.Duration{
	"1w": 7 * 24 * time.Hour,
	"1m": 30 * 24 * time.Hour,
	"3m": 90 * 24 * time.Hour,
	"6m": 180 * 24 * time.Hour,
	"1y": 365 * 24 * time.Hour,
	"5y": 5 * 365 * 24 * time.Hour,
	// "all" no tiene delta: histórico completo
}

// UseCase registra ventas componiendo el motor de inventario: cada venta produce su
// fila en sales y exactamente un movimiento SALE con la misma cantidad, en una sola
// transacción. El precio unitario se congela al momento de la venta.
type UseCase struct {
	txRunner   SaleTxRunner
	stockMover StockMover
	bookRepo   repository.BookRepository
	genreRepo  repository.GenreRepository
	saleRepo   repository.SaleRepository
	maxRetries int
}

// NewUseCase construye el motor de ventas. saleRepo es la vista de lectura (pool);
// las escrituras pasan por txRunner.
func NewUseCase(
	txRunner SaleTxRunner,
	stockMover StockMover,
	bookRepo repository.BookRepository,
	genreRepo repository.GenreRepository,
	saleRepo repository.SaleRepository,
	maxRetries int,
) *UseCase {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &UseCase{
		txRunner:   txRunner,
		stockMover: stockMover,
		bookRepo:   bookRepo,
		genreRepo:  genreRepo,
		saleRepo:   saleRepo,
		maxRetries: maxRetries,
	}
}

// SaleInput entrada para registrar una venta. SoldAt nil = ahora.
type SaleInput struct {
	BookID   string
	Quantity int64
	SoldAt   *time.Time
}

// SaleResult venta registrada más la cantidad resultante en stock.
type SaleResult struct {
	Sale        *entity.Sale
	NewQuantity int64
}

// RecordSale congela el precio actual del libro, descuenta stock vía el motor de
// inventario y guarda la venta, todo en la misma unidad de trabajo. Si el descuento
// falla (por ejemplo stock insuficiente) no queda ni venta ni movimiento.
func (uc *UseCase) RecordSale(ctx context.Context, input SaleInput) (*SaleResult, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	book, err := uc.bookRepo.GetByID(input.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}

	now := time.Now()
	soldAt := now
	if input.SoldAt != nil {
		// Ventas retroactivas permitidas sin límite; futuras no.
		if input.SoldAt.After(now) {
			return nil, domain.ErrInvalidInput
		}
		soldAt = *input.SoldAt
	}

	var result *SaleResult
	run := func() error {
		return uc.txRunner.RunSale(ctx, func(
			movRepo repository.MovementRepository,
			stockRepo repository.StockRepository,
			saleRepo repository.SaleRepository,
		) error {
			_, newQty, err := uc.stockMover.ApplyMovementInTx(
				movRepo, stockRepo, book.ID, entity.MovementTypeSALE, input.Quantity, "", now,
			)
			if err != nil {
				return err
			}
			sale := &entity.Sale{
				ID:        uuid.New().String(),
				BookID:    book.ID,
				Quantity:  input.Quantity,
				UnitPrice: book.Price, // precio al momento de la venta
				SoldAt:    soldAt,
				CreatedAt: now,
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			result = &SaleResult{Sale: sale, NewQuantity: newQty}
			return nil
		})
	}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err = run()
		if !errors.Is(err, domain.ErrConflict) || attempt >= uc.maxRetries {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListByBook historial de ventas de un libro (paginado).
func (uc *UseCase) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 || limit > 100 || offset < 0 {
		return nil, domain.ErrInvalidFilter
	}
	book, err := uc.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return uc.saleRepo.ListByBook(bookID, limit, offset)
}

// TopSales ranking de libros más vendidos en el periodo (1w, 1m, 3m, 6m, 1y, 5y, all).
func (uc *UseCase) TopSales(ctx context.Context, period string, limit int) ([]*entity.TopSale, error) {
	since, err := sinceForPeriod(period, time.Now())
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return uc.saleRepo.TopSales(since, limit)
}

// TopSalesByGenre ranking de más vendidos dentro de un género.
func (uc *UseCase) TopSalesByGenre(ctx context.Context, genreID, period string, limit int) ([]*entity.TopSale, error) {
	if genreID == "" {
		return nil, domain.ErrInvalidFilter
	}
	since, err := sinceForPeriod(period, time.Now())
	if err != nil {
		return nil, err
	}
	genre, err := uc.genreRepo.GetByID(genreID)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 10
	}
	return uc.saleRepo.TopSalesByGenre(genreID, since, limit)
}

// sinceForPeriod traduce el periodo a una fecha de corte; "all" devuelve nil.
func sinceForPeriod(period string, now time.Time) (*time.Time, error) {
	if period == "all" {
		return nil, nil
	}
	delta, ok := periodDeltas[period]
	if !ok {
		return nil, domain.ErrInvalidFilter
	}
	since := now.Add(-delta)
	return &since, nil
}
