package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las ventas son inmutables: solo INSERT y SELECT.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, book_id, quantity, unit_price, sold_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.BookID, sale.Quantity, sale.UnitPrice, sale.SoldAt, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, book_id, quantity, unit_price, sold_at, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.BookID, &s.Quantity, &s.UnitPrice, &s.SoldAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListByBook lista ventas de un libro, más recientes primero.
func (r *SaleRepo) ListByBook(bookID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, book_id, quantity, unit_price, sold_at, created_at
		FROM sales WHERE book_id = $1
		ORDER BY sold_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, bookID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.BookID, &s.Quantity, &s.UnitPrice, &s.SoldAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ExistsByBook indica si el libro tiene ventas registradas (protección de borrado).
func (r *SaleRepo) ExistsByBook(bookID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM sales WHERE book_id = $1)`, bookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists sales by book: %w", err)
	}
	return exists, nil
}

// TopSales ranking de libros por unidades vendidas desde since (nil = histórico completo).
func (r *SaleRepo) TopSales(since *time.Time, limit int) ([]*entity.TopSale, error) {
	query := `
		SELECT s.book_id, b.title, b.author, SUM(s.quantity) AS total_quantity
		FROM sales s
		JOIN books b ON b.id = s.book_id`
	args := []any{}
	pos := 1
	if since != nil {
		query += fmt.Sprintf(" WHERE s.sold_at >= $%d", pos)
		args = append(args, *since)
		pos++
	}
	query += fmt.Sprintf(`
		GROUP BY s.book_id, b.title, b.author
		ORDER BY total_quantity DESC
		LIMIT $%d`, pos)
	args = append(args, limit)
	return r.queryTopSales(query, args)
}

// TopSalesByGenre ranking de más vendidos dentro de un género.
func (r *SaleRepo) TopSalesByGenre(genreID string, since *time.Time, limit int) ([]*entity.TopSale, error) {
	query := `
		SELECT s.book_id, b.title, b.author, SUM(s.quantity) AS total_quantity
		FROM sales s
		JOIN books b ON b.id = s.book_id
		WHERE b.genre_id = $1`
	args := []any{genreID}
	pos := 2
	if since != nil {
		query += fmt.Sprintf(" AND s.sold_at >= $%d", pos)
		args = append(args, *since)
		pos++
	}
	query += fmt.Sprintf(`
		GROUP BY s.book_id, b.title, b.author
		ORDER BY total_quantity DESC
		LIMIT $%d`, pos)
	args = append(args, limit)
	return r.queryTopSales(query, args)
}

func (r *SaleRepo) queryTopSales(query string, args []any) ([]*entity.TopSale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("top sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.TopSale
	for rows.Next() {
		var t entity.TopSale
		if err := rows.Scan(&t.BookID, &t.Title, &t.Author, &t.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan top sale: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
