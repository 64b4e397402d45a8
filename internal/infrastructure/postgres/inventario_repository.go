package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

const inventarioColumns = `id, tipo, origen, cantidad, motivo, referencia, stock_resultante, producto_id, empleado_id, fecha, created_at`

// InventarioRepo implementación del puerto InventarioRepository sobre
// PostgreSQL (usable con pool o tx).
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador del libro de movimientos.
// Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// Create agrega un asiento al libro.
func (r *InventarioRepo) Create(m *entity.Inventario) error {
	query := `
		INSERT INTO inventario (` + inventarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Tipo, m.Origen, m.Cantidad, m.Motivo, nullIfEmpty(m.Referencia),
		m.StockResultante, m.ProductoID, m.EmpleadoID, m.Fecha, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *InventarioRepo) GetByID(id string) (*entity.Inventario, error) {
	query := `SELECT ` + inventarioColumns + ` FROM inventario WHERE id = $1`
	m, err := scanMovimiento(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Update reescribe un asiento existente (tras revertir y reaplicar su efecto).
func (r *InventarioRepo) Update(m *entity.Inventario) error {
	query := `
		UPDATE inventario
		SET origen = $2, cantidad = $3, motivo = $4, referencia = $5, stock_resultante = $6, producto_id = $7, empleado_id = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Origen, m.Cantidad, m.Motivo, nullIfEmpty(m.Referencia),
		m.StockResultante, m.ProductoID, m.EmpleadoID,
	)
	if err != nil {
		return fmt.Errorf("update movimiento: %w", err)
	}
	return nil
}

// Delete borra un asiento. El caller ya debe haber revertido su efecto.
func (r *InventarioRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventario WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	return nil
}

// List lista asientos en orden cronológico inverso con paginación.
func (r *InventarioRepo) List(limit, offset int) ([]*entity.Inventario, error) {
	query := `SELECT ` + inventarioColumns + ` FROM inventario ORDER BY fecha DESC, created_at DESC LIMIT $1 OFFSET $2`
	return r.scanList(query, limit, offset)
}

// ListByProducto lista los asientos de un producto en orden cronológico inverso.
func (r *InventarioRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.Inventario, error) {
	query := `SELECT ` + inventarioColumns + ` FROM inventario WHERE producto_id = $1 ORDER BY fecha DESC, created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(query, productoID, limit, offset)
}

func (r *InventarioRepo) scanList(query string, args ...any) ([]*entity.Inventario, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventario
	for rows.Next() {
		m, err := scanMovimiento(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovimiento(row rowScanner) (*entity.Inventario, error) {
	var m entity.Inventario
	var referencia *string
	err := row.Scan(
		&m.ID, &m.Tipo, &m.Origen, &m.Cantidad, &m.Motivo, &referencia,
		&m.StockResultante, &m.ProductoID, &m.EmpleadoID, &m.Fecha, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan movimiento: %w", err)
	}
	if referencia != nil {
		m.Referencia = *referencia
	}
	return &m, nil
}
