package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

const proveedorColumns = `id, nombre, nit, telefono, email, direccion, activo, created_at, updated_at`

// ProveedorRepo implementación del puerto ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador de proveedores. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un proveedor.
func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (` + proveedorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.NIT, p.Telefono, p.Email, p.Direccion, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE id = $1`
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Nombre, &p.NIT, &p.Telefono, &p.Email, &p.Direccion, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

// List lista proveedores con paginación.
func (r *ProveedorRepo) List(limit, offset int) ([]*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.Nombre, &p.NIT, &p.Telefono, &p.Email, &p.Direccion, &p.Activo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor existente.
func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	query := `
		UPDATE proveedores
		SET nombre = $2, nit = $3, telefono = $4, email = $5, direccion = $6, activo = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.NIT, p.Telefono, p.Email, p.Direccion, p.Activo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// Delete elimina un proveedor por ID.
func (r *ProveedorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return nil
}
