package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidmparra/libreria-api/internal/application/ledger"
	"github.com/davidmparra/libreria-api/internal/application/sales"
	"github.com/davidmparra/libreria-api/internal/domain"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba. El txRunner emula la transacción real: fn opera sobre una
// copia staged y solo al terminar sin error se publica al estado compartido.
// Así un fallo a mitad de la venta (stock insuficiente, error del repo de
// ventas) descarta también el movimiento SALE ya apendado en la copia.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	mu        sync.Mutex
	stocks    map[string]entity.Stock
	movements []*entity.Movement
	sales     []*entity.Sale

	failSaleCreate bool
}

func newMemState() *memState {
	return &memState{stocks: make(map[string]entity.Stock)}
}

func (s *memState) snapshot() *memState {
	c := &memState{
		stocks:         make(map[string]entity.Stock, len(s.stocks)),
		failSaleCreate: s.failSaleCreate,
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	c.sales = append(c.sales, s.sales...)
	return c
}

type memTxRunner struct{ st *memState }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.RunSale(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.SaleRepository,
	) error {
		return fn(movRepo, stockRepo)
	})
}

func (r *memTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	staged := r.st.snapshot()
	err := fn(&memMovementRepo{st: staged}, &memStockRepo{st: staged}, &memSaleRepo{st: staged})
	if err != nil {
		return err
	}
	r.st.stocks = staged.stocks
	r.st.movements = staged.movements
	r.st.sales = staged.sales
	return nil
}

type memStockRepo struct{ st *memState }

func (r *memStockRepo) Get(bookID string) (*entity.Stock, error) {
	if s, ok := r.st.stocks[bookID]; ok {
		copia := s
		return &copia, nil
	}
	return &entity.Stock{BookID: bookID}, nil
}

func (r *memStockRepo) GetForUpdate(bookID string) (*entity.Stock, error) {
	// Materializa la fila en cero como el repositorio real: el bloqueo necesita fila.
	if _, ok := r.st.stocks[bookID]; !ok {
		r.st.stocks[bookID] = entity.Stock{BookID: bookID}
	}
	return r.Get(bookID)
}

func (r *memStockRepo) Upsert(stock *entity.Stock) error {
	r.st.stocks[stock.BookID] = *stock
	return nil
}

func (r *memStockRepo) ListLevels(limit, offset int) ([]*entity.StockLevel, error) {
	return nil, nil
}

type memMovementRepo struct{ st *memState }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	copia := *m
	r.st.movements = append(r.st.movements, &copia)
	return nil
}

func (r *memMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }

func (r *memMovementRepo) ListByBook(bookID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.st.movements {
		if m.BookID == bookID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *memMovementRepo) ExistsByBook(bookID string) (bool, error) {
	for _, m := range r.st.movements {
		if m.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

var errRepoCaido = errors.New("sale repo: fallo inyectado")

type memSaleRepo struct{ st *memState }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	if r.st.failSaleCreate {
		return errRepoCaido
	}
	copia := *sale
	r.st.sales = append(r.st.sales, &copia)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.st.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) ListByBook(bookID string, limit, offset int) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, s := range r.st.sales {
		if s.BookID == bookID {
			list = append(list, s)
		}
	}
	return list, nil
}

func (r *memSaleRepo) ExistsByBook(bookID string) (bool, error) {
	for _, s := range r.st.sales {
		if s.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSaleRepo) TopSales(*time.Time, int) ([]*entity.TopSale, error) {
	return nil, nil
}

func (r *memSaleRepo) TopSalesByGenre(string, *time.Time, int) ([]*entity.TopSale, error) {
	return nil, nil
}

type memBookRepo struct{ books map[string]*entity.Book }

func (r *memBookRepo) Create(b *entity.Book) error            { r.books[b.ID] = b; return nil }
func (r *memBookRepo) GetByID(id string) (*entity.Book, error) { return r.books[id], nil }
func (r *memBookRepo) GetByISBN(string) (*entity.Book, error)  { return nil, nil }
func (r *memBookRepo) Update(b *entity.Book) error             { r.books[b.ID] = b; return nil }
func (r *memBookRepo) List(int, int) ([]*entity.Book, error)   { return nil, nil }
func (r *memBookRepo) ExistsByGenre(string) (bool, error)      { return false, nil }
func (r *memBookRepo) Delete(string) error                     { return nil }

type memGenreRepo struct{ genres map[string]*entity.Genre }

func (r *memGenreRepo) Create(g *entity.Genre) error             { r.genres[g.ID] = g; return nil }
func (r *memGenreRepo) GetByID(id string) (*entity.Genre, error) { return r.genres[id], nil }
func (r *memGenreRepo) GetByName(string) (*entity.Genre, error)  { return nil, nil }
func (r *memGenreRepo) List(int, int) ([]*entity.Genre, error)   { return nil, nil }
func (r *memGenreRepo) Delete(string) error                      { return nil }

const testBookID = "00000000-0000-0000-0000-0000000000bb"

type fixture struct {
	sales  *sales.UseCase
	ledger *ledger.UseCase
	books  *memBookRepo
	st     *memState
}

func buildEngines(t *testing.T) *fixture {
	t.Helper()
	st := newMemState()
	runner := &memTxRunner{st: st}
	books := &memBookRepo{books: map[string]*entity.Book{
		testBookID: {
			ID:    testBookID,
			ISBN:  "9780000000002",
			Title: "La vorágine",
			Price: decimal.RequireFromString("38500.00"),
		},
	}}
	genres := &memGenreRepo{genres: map[string]*entity.Genre{}}

	ledgerUC := ledger.NewUseCase(runner, books, &memStockRepo{st: st}, &memMovementRepo{st: st},
		ledger.Config{MaxRetries: 0})
	salesUC := sales.NewUseCase(runner, ledgerUC, books, genres, &memSaleRepo{st: st}, 0)
	return &fixture{sales: salesUC, ledger: ledgerUC, books: books, st: st}
}

func (f *fixture) arrive(t *testing.T, qty int64) {
	t.Helper()
	_, err := f.ledger.RecordMovement(context.Background(), ledger.MovementInput{
		BookID: testBookID, Type: entity.MovementTypeARRIVAL, Quantity: qty,
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_CongelaPrecioAlMomentoDeLaVenta(t *testing.T) {
	f := buildEngines(t)
	f.arrive(t, 5)

	precioOriginal := f.books.books[testBookID].Price
	result, err := f.sales.RecordSale(context.Background(), sales.SaleInput{
		BookID: testBookID, Quantity: 2,
	})
	require.NoError(t, err)
	assert.True(t, result.Sale.UnitPrice.Equal(precioOriginal))

	// Cambiar el precio del catálogo no debe tocar la venta ya registrada.
	f.books.books[testBookID].Price = decimal.RequireFromString("99000.00")
	require.Len(t, f.st.sales, 1)
	assert.True(t, f.st.sales[0].UnitPrice.Equal(precioOriginal),
		"el precio de la venta queda congelado")
}

func TestRecordSale_GeneraExactamenteUnMovimientoSALE(t *testing.T) {
	f := buildEngines(t)
	f.arrive(t, 10)

	result, err := f.sales.RecordSale(context.Background(), sales.SaleInput{
		BookID: testBookID, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.NewQuantity)

	var ventas []*entity.Movement
	for _, m := range f.st.movements {
		if m.Type == entity.MovementTypeSALE {
			ventas = append(ventas, m)
		}
	}
	require.Len(t, ventas, 1)
	assert.Equal(t, int64(3), ventas[0].Quantity, "misma cantidad que la venta")
	require.Len(t, f.st.sales, 1)
	assert.Equal(t, int64(3), f.st.sales[0].Quantity)
}

func TestRecordSale_StockInsuficienteNoDejaRastro(t *testing.T) {
	f := buildEngines(t)
	f.arrive(t, 2)

	_, err := f.sales.RecordSale(context.Background(), sales.SaleInput{
		BookID: testBookID, Quantity: 5,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, f.st.sales, "sin venta")
	for _, m := range f.st.movements {
		assert.NotEqual(t, entity.MovementTypeSALE, m.Type, "sin movimiento SALE")
	}
	qty, err := f.ledger.GetQuantity(context.Background(), testBookID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), qty)
}

func TestRecordSale_FalloDelRepoRevierteElMovimiento(t *testing.T) {
	f := buildEngines(t)
	f.arrive(t, 10)
	f.st.failSaleCreate = true

	_, err := f.sales.RecordSale(context.Background(), sales.SaleInput{
		BookID: testBookID, Quantity: 1,
	})
	require.ErrorIs(t, err, errRepoCaido)

	// La transacción se revierte completa: ni venta, ni movimiento SALE, ni descuento.
	assert.Empty(t, f.st.sales)
	for _, m := range f.st.movements {
		assert.NotEqual(t, entity.MovementTypeSALE, m.Type)
	}
	qty, err := f.ledger.GetQuantity(context.Background(), testBookID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)
}

func TestRecordSale_FechaDeVenta(t *testing.T) {
	f := buildEngines(t)
	f.arrive(t, 20)
	ctx := context.Background()

	// Sin fecha: se usa el momento actual.
	antes := time.Now()
	result, err := f.sales.RecordSale(ctx, sales.SaleInput{BookID: testBookID, Quantity: 1})
	require.NoError(t, err)
	assert.False(t, result.Sale.SoldAt.Before(antes))
	assert.False(t, result.Sale.SoldAt.After(time.Now()))

	// Retroactiva: permitida sin límite.
	pasado := time.Now().AddDate(-2, 0, 0)
	result, err = f.sales.RecordSale(ctx, sales.SaleInput{
		BookID: testBookID, Quantity: 1, SoldAt: &pasado,
	})
	require.NoError(t, err)
	assert.True(t, result.Sale.SoldAt.Equal(pasado))

	// Futura: rechazada.
	futuro := time.Now().Add(48 * time.Hour)
	_, err = f.sales.RecordSale(ctx, sales.SaleInput{
		BookID: testBookID, Quantity: 1, SoldAt: &futuro,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_Validaciones(t *testing.T) {
	f := buildEngines(t)

	_, err := f.sales.RecordSale(context.Background(), sales.SaleInput{
		BookID: testBookID, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.sales.RecordSale(context.Background(), sales.SaleInput{
		BookID: "no-existe", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestRecordSale_ContextoCancelado(t *testing.T) {
	f := buildEngines(t)
	f.arrive(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.sales.RecordSale(ctx, sales.SaleInput{BookID: testBookID, Quantity: 1})
	assert.ErrorIs(t, err, context.Canceled)

	// Una venta abortada no publica nada: ni venta, ni movimiento SALE, ni descuento.
	assert.Empty(t, f.st.sales)
	for _, m := range f.st.movements {
		assert.NotEqual(t, entity.MovementTypeSALE, m.Type)
	}
	qty, err := f.ledger.GetQuantity(context.Background(), testBookID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), qty)
}

// Escenario completo: entradas, ventas y mermas intercaladas sobre el mismo libro.
func TestRecordSale_EscenarioCompleto(t *testing.T) {
	f := buildEngines(t)
	ctx := context.Background()

	f.arrive(t, 10)

	result, err := f.sales.RecordSale(ctx, sales.SaleInput{BookID: testBookID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.NewQuantity)
	assert.Equal(t, int64(3), result.Sale.Quantity)

	movResult, err := f.ledger.RecordMovement(ctx, ledger.MovementInput{
		BookID: testBookID, Type: entity.MovementTypeTHEFT, Quantity: 5, Reason: "hurto en estantería",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), movResult.NewQuantity)

	_, err = f.sales.RecordSale(ctx, sales.SaleInput{BookID: testBookID, Quantity: 5})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	qty, err := f.ledger.GetQuantity(ctx, testBookID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), qty, "la cantidad queda en 2 tras el intento fallido")
	require.Len(t, f.st.sales, 1, "solo la venta exitosa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y rankings
// ──────────────────────────────────────────────────────────────────────────────

func TestListByBook_PaginacionInvalida(t *testing.T) {
	f := buildEngines(t)
	for _, caso := range []struct{ limit, offset int }{
		{0, 0}, {101, 0}, {10, -1},
	} {
		_, err := f.sales.ListByBook(context.Background(), testBookID, caso.limit, caso.offset)
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	}
}

func TestTopSales_PeriodoInvalido(t *testing.T) {
	f := buildEngines(t)
	for _, periodo := range []string{"", "2w", "10y", "semana"} {
		_, err := f.sales.TopSales(context.Background(), periodo, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidFilter, "periodo %q debe rechazarse", periodo)
	}
	_, err := f.sales.TopSales(context.Background(), "all", 10)
	assert.NoError(t, err, "all es el histórico completo")
}

func TestTopSalesByGenre_GeneroRequeridoYExistente(t *testing.T) {
	f := buildEngines(t)

	_, err := f.sales.TopSalesByGenre(context.Background(), "", "1m", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)

	_, err = f.sales.TopSalesByGenre(context.Background(), "genero-fantasma", "1m", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
