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

var _ repository.GenreRepository = (*GenreRepo)(nil)

// GenreRepo implementación del puerto GenreRepository sobre PostgreSQL.
type GenreRepo struct {
	q Querier
}

// NewGenreRepository construye el adaptador de persistencia para géneros.
func NewGenreRepository(q Querier) *GenreRepo {
	return &GenreRepo{q: q}
}

// Create persiste un género nuevo. Nombre único.
func (r *GenreRepo) Create(genre *entity.Genre) error {
	query := `INSERT INTO genres (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, genre.ID, genre.Name, genre.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

// GetByID obtiene un género por ID.
func (r *GenreRepo) GetByID(id string) (*entity.Genre, error) {
	return r.getBy("id", id)
}

// GetByName obtiene un género por nombre.
func (r *GenreRepo) GetByName(name string) (*entity.Genre, error) {
	return r.getBy("name", name)
}

func (r *GenreRepo) getBy(column, value string) (*entity.Genre, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM genres WHERE %s = $1`, column)
	var g entity.Genre
	err := r.q.QueryRow(context.Background(), query, value).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return &g, nil
}

// List lista géneros con paginación.
func (r *GenreRepo) List(limit, offset int) ([]*entity.Genre, error) {
	query := `SELECT id, name, created_at FROM genres ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()
	var list []*entity.Genre
	for rows.Next() {
		var g entity.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// Delete elimina un género. El caller verifica antes que no esté referenciado.
func (r *GenreRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	return nil
}
