package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

var _ repository.CompraRepository = (*CompraRepo)(nil)

const compraColumns = `id, proveedor_id, empleado_id, numero_factura, fecha_compra, total, notas, created_at, updated_at`

// CompraRepo implementación del puerto CompraRepository sobre PostgreSQL
// (usable con pool o tx).
type CompraRepo struct {
	q Querier
}

// NewCompraRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

// Create persiste la cabecera de una compra.
func (r *CompraRepo) Create(c *entity.Compra) error {
	query := `
		INSERT INTO compras (` + compraColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ProveedorID, c.EmpleadoID, nullIfEmpty(c.NumeroFactura),
		c.FechaCompra, c.Total, c.Notas, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert compra: %w", err)
	}
	return nil
}

// CreateLinea persiste una línea de compra.
func (r *CompraRepo) CreateLinea(l *entity.CompraProducto) error {
	query := `
		INSERT INTO compra_productos (id, compra_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.CompraID, l.ProductoID, l.Cantidad, l.PrecioUnitario, l.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert compra_producto: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una compra.
func (r *CompraRepo) GetByID(id string) (*entity.Compra, error) {
	query := `SELECT ` + compraColumns + ` FROM compras WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la cabecera bloqueando la fila (SELECT ... FOR UPDATE)
// para serializar ediciones concurrentes de la misma compra.
func (r *CompraRepo) GetForUpdate(id string) (*entity.Compra, error) {
	query := `SELECT ` + compraColumns + ` FROM compras WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// ListLineas lista las líneas de una compra.
func (r *CompraRepo) ListLineas(compraID string) ([]*entity.CompraProducto, error) {
	query := `
		SELECT id, compra_id, producto_id, cantidad, precio_unitario, subtotal
		FROM compra_productos WHERE compra_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, compraID)
	if err != nil {
		return nil, fmt.Errorf("list lineas: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompraProducto
	for rows.Next() {
		var l entity.CompraProducto
		if err := rows.Scan(&l.ID, &l.CompraID, &l.ProductoID, &l.Cantidad, &l.PrecioUnitario, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan linea: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteLineas borra todas las líneas de una compra (reemplazo total en updates).
func (r *CompraRepo) DeleteLineas(compraID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM compra_productos WHERE compra_id = $1`, compraID)
	if err != nil {
		return fmt.Errorf("delete lineas: %w", err)
	}
	return nil
}

// UpdateHeader actualiza la cabecera de una compra.
func (r *CompraRepo) UpdateHeader(c *entity.Compra) error {
	query := `
		UPDATE compras
		SET proveedor_id = $2, empleado_id = $3, numero_factura = $4, fecha_compra = $5, total = $6, notas = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ProveedorID, c.EmpleadoID, nullIfEmpty(c.NumeroFactura),
		c.FechaCompra, c.Total, c.Notas, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update compra: %w", err)
	}
	return nil
}

// Delete borra la cabecera. Las líneas deben borrarse antes (DeleteLineas).
func (r *CompraRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM compras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete compra: %w", err)
	}
	return nil
}

// List lista cabeceras de compras con paginación, más recientes primero.
func (r *CompraRepo) List(limit, offset int) ([]*entity.Compra, error) {
	query := `SELECT ` + compraColumns + ` FROM compras ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Compra
	for rows.Next() {
		c, err := scanCompra(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CompraRepo) scanOne(query string, args ...any) (*entity.Compra, error) {
	c, err := scanCompra(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func scanCompra(row rowScanner) (*entity.Compra, error) {
	var c entity.Compra
	var numeroFactura *string
	err := row.Scan(
		&c.ID, &c.ProveedorID, &c.EmpleadoID, &numeroFactura,
		&c.FechaCompra, &c.Total, &c.Notas, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan compra: %w", err)
	}
	if numeroFactura != nil {
		c.NumeroFactura = *numeroFactura
	}
	return &c, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
