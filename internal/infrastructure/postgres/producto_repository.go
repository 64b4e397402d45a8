package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, categoria_id, codigo, nombre, descripcion, stock, precio, activo, created_at, updated_at`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un producto nuevo. Stock y precio inician en cero.
func (r *ProductoRepo) Create(p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoriaID, p.Codigo, p.Nombre, p.Descripcion,
		p.Stock, p.Precio, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByCodigo obtiene un producto por su código único.
func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo = $1`
	return r.scanOne(query, codigo)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT ... FOR UPDATE).
// Solo tiene sentido con un Querier de transacción.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// ActualizarStockPrecio actualiza solo stock y costo promedio (motor de inventario).
func (r *ProductoRepo) ActualizarStockPrecio(id string, stock int64, precio decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock = $2, precio = $3, updated_at = now() WHERE id = $1`,
		id, stock, precio,
	)
	if err != nil {
		return fmt.Errorf("update stock/precio: %w", err)
	}
	return nil
}

// Update actualiza campos de catálogo. No toca stock ni precio (se manejan vía movimientos).
func (r *ProductoRepo) Update(p *entity.Producto) error {
	query := `
		UPDATE productos
		SET categoria_id = $2, nombre = $3, descripcion = $4, activo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoriaID, p.Nombre, p.Descripcion, p.Activo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

func (r *ProductoRepo) scanOne(query string, args ...any) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProducto(row rowScanner) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.CategoriaID, &p.Codigo, &p.Nombre, &p.Descripcion,
		&p.Stock, &p.Precio, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan producto: %w", err)
	}
	return &p, nil
}
