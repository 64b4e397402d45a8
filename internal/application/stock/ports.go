package stock

import (
	"context"

	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: cualquier error en fn provoca rollback completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		compraRepo repository.CompraRepository,
		movRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}
