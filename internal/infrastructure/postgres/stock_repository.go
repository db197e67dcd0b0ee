package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un libro. Sin fila aún = Stock en cero (agregado perezoso).
func (r *StockRepo) Get(bookID string) (*entity.Stock, error) {
	query := `
		SELECT book_id, quantity, updated_at
		FROM stock WHERE book_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, bookID).Scan(&s.BookID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{BookID: bookID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Serializa los movimientos concurrentes sobre el mismo libro. Si el libro aún no
// tiene fila, se materializa primero en cero: FOR UPDATE sobre una fila inexistente
// no bloquea nada y dos primeros movimientos concurrentes se pisarían entre sí.
func (r *StockRepo) GetForUpdate(bookID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO stock (book_id, quantity, updated_at)
		VALUES ($1, 0, now())
		ON CONFLICT (book_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, bookID); err != nil {
		return nil, fmt.Errorf("materialize stock row: %w", err)
	}
	query := `
		SELECT book_id, quantity, updated_at
		FROM stock WHERE book_id = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, bookID).Scan(&s.BookID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock de un libro.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (book_id, quantity, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (book_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, stock.BookID, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListLevels listado de inventario con datos del libro (solo lectura, paginado).
func (r *StockRepo) ListLevels(limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT s.book_id, b.isbn, b.title, b.author, g.name, s.quantity, s.updated_at
		FROM stock s
		JOIN books b ON b.id = s.book_id
		JOIN genres g ON g.id = b.genre_id
		ORDER BY b.title ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var lv entity.StockLevel
		if err := rows.Scan(&lv.BookID, &lv.ISBN, &lv.Title, &lv.Author, &lv.GenreName, &lv.Quantity, &lv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &lv)
	}
	return list, rows.Err()
}
