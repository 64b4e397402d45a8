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

var _ repository.EmpleadoRepository = (*EmpleadoRepo)(nil)

const empleadoColumns = `id, nombre, email, password_hash, rol, activo, created_at, updated_at`

// EmpleadoRepo implementación del puerto EmpleadoRepository sobre PostgreSQL.
type EmpleadoRepo struct {
	q Querier
}

// NewEmpleadoRepository construye el adaptador de empleados. Pasar pool o tx (Querier).
func NewEmpleadoRepository(q Querier) *EmpleadoRepo {
	return &EmpleadoRepo{q: q}
}

// Create persiste un empleado.
func (r *EmpleadoRepo) Create(e *entity.Empleado) error {
	query := `
		INSERT INTO empleados (` + empleadoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Nombre, e.Email, e.PasswordHash, e.Rol, e.Activo, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert empleado: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmpleadoRepo) GetByID(id string) (*entity.Empleado, error) {
	query := `SELECT ` + empleadoColumns + ` FROM empleados WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByEmail obtiene un empleado por email (login).
func (r *EmpleadoRepo) GetByEmail(email string) (*entity.Empleado, error) {
	query := `SELECT ` + empleadoColumns + ` FROM empleados WHERE email = $1`
	return r.scanOne(query, email)
}

// List lista empleados con paginación.
func (r *EmpleadoRepo) List(limit, offset int) ([]*entity.Empleado, error) {
	query := `SELECT ` + empleadoColumns + ` FROM empleados ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empleados: %w", err)
	}
	defer rows.Close()
	var list []*entity.Empleado
	for rows.Next() {
		var e entity.Empleado
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Email, &e.PasswordHash, &e.Rol, &e.Activo, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan empleado: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *EmpleadoRepo) scanOne(query string, args ...any) (*entity.Empleado, error) {
	var e entity.Empleado
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&e.ID, &e.Nombre, &e.Email, &e.PasswordHash, &e.Rol, &e.Activo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empleado: %w", err)
	}
	return &e, nil
}
