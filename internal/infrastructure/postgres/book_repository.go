package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/davidmparra/libreria-api/internal/domain"
	"github.com/davidmparra/libreria-api/internal/domain/entity"
	"github.com/davidmparra/libreria-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementación del puerto BookRepository sobre PostgreSQL (usable con pool o tx).
type BookRepo struct {
	q Querier
}

// NewBookRepository construye el adaptador de persistencia para libros. Pasar pool o tx (Querier).
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

// Create persiste un libro nuevo.
func (r *BookRepo) Create(book *entity.Book) error {
	query := `
		INSERT INTO books (id, isbn, title, author, publisher, genre_id, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.ISBN, book.Title, book.Author, book.Publisher,
		book.GenreID, book.Price, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID obtiene un libro por ID.
func (r *BookRepo) GetByID(id string) (*entity.Book, error) {
	return r.getBy("id", id)
}

// GetByISBN obtiene un libro por ISBN.
func (r *BookRepo) GetByISBN(isbn string) (*entity.Book, error) {
	return r.getBy("isbn", isbn)
}

func (r *BookRepo) getBy(column, value string) (*entity.Book, error) {
	query := fmt.Sprintf(`
		SELECT id, isbn, title, author, publisher, genre_id, price, created_at, updated_at
		FROM books WHERE %s = $1`, column)
	var b entity.Book
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.GenreID, &b.Price, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &b, nil
}

// Update actualiza atributos del libro (nunca el stock: ese vive en el agregado).
func (r *BookRepo) Update(book *entity.Book) error {
	query := `
		UPDATE books SET title = $2, author = $3, publisher = $4, genre_id = $5, price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.Title, book.Author, book.Publisher, book.GenreID, book.Price, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// List lista libros con paginación.
func (r *BookRepo) List(limit, offset int) ([]*entity.Book, error) {
	query := `
		SELECT id, isbn, title, author, publisher, genre_id, price, created_at, updated_at
		FROM books ORDER BY title ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()
	var list []*entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.GenreID, &b.Price, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ExistsByGenre indica si algún libro referencia el género (protección de borrado).
func (r *BookRepo) ExistsByGenre(genreID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM books WHERE genre_id = $1)`, genreID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists books by genre: %w", err)
	}
	return exists, nil
}

// Delete elimina un libro. El caller verifica antes que no tenga historial.
func (r *BookRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
