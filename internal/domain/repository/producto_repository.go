package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para productos (DIP).
// Stock y Precio solo se modifican vía ActualizarStockPrecio, dentro de la
// transacción del motor de inventario y con la fila bloqueada (GetForUpdate).
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByCodigo(codigo string) (*entity.Producto, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Producto, error)
	ActualizarStockPrecio(id string, stock int64, precio decimal.Decimal) error
	Update(producto *entity.Producto) error
	List(limit, offset int) ([]*entity.Producto, error)
	Delete(id string) error
}
