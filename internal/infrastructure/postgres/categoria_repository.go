package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación del puerto CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoriaRepo) Create(c *entity.Categoria) error {
	query := `
		INSERT INTO categorias (id, nombre, descripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Nombre, c.Descripcion, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	query := `SELECT id, nombre, descripcion, created_at, updated_at FROM categorias WHERE id = $1`
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// List lista categorías con paginación.
func (r *CategoriaRepo) List(limit, offset int) ([]*entity.Categoria, error) {
	query := `SELECT id, nombre, descripcion, created_at, updated_at FROM categorias ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una categoría existente.
func (r *CategoriaRepo) Update(c *entity.Categoria) error {
	query := `UPDATE categorias SET nombre = $2, descripcion = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Nombre, c.Descripcion, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *CategoriaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete categoria: %w", err)
	}
	return nil
}
