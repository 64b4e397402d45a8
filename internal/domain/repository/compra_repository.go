package repository

import "github.com/tiendafacil/backoffice-api/internal/domain/entity"

// CompraRepository define el puerto de persistencia para compras y sus líneas.
type CompraRepository interface {
	Create(compra *entity.Compra) error
	CreateLinea(linea *entity.CompraProducto) error
	GetByID(id string) (*entity.Compra, error)
	// GetForUpdate obtiene la cabecera bloqueando la fila (SELECT ... FOR UPDATE)
	// para serializar ediciones concurrentes de la misma compra.
	GetForUpdate(id string) (*entity.Compra, error)
	ListLineas(compraID string) ([]*entity.CompraProducto, error)
	DeleteLineas(compraID string) error
	UpdateHeader(compra *entity.Compra) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Compra, error)
}
