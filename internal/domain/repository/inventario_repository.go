package repository

import "github.com/tiendafacil/backoffice-api/internal/domain/entity"

// InventarioRepository define el puerto de persistencia para el libro de
// movimientos de stock. Los asientos se agregan dentro de la transacción del
// motor, después de la mutación de stock correspondiente.
type InventarioRepository interface {
	Create(movimiento *entity.Inventario) error
	GetByID(id string) (*entity.Inventario, error)
	Update(movimiento *entity.Inventario) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Inventario, error)
	// ListByProducto lista los asientos de un producto en orden cronológico inverso.
	ListByProducto(productoID string, limit, offset int) ([]*entity.Inventario, error)
}
