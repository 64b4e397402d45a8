package stock

import (
	"github.com/shopspring/decimal"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/ledger"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

// Applier aplica deltas de stock sobre productos dentro de una transacción.
// Es el único camino de mutación de Producto.Stock y Producto.Precio: compras
// y movimientos comparten esta primitiva en lugar de duplicar la aritmética.
//
// Bloquea la fila del producto (SELECT ... FOR UPDATE) en el primer acceso y
// conserva el precio sin redondear entre líneas de la misma transacción, de
// modo que el redondeo a 2 decimales no se acumule línea a línea.
type Applier struct {
	productos repository.ProductoRepository // repos atados a la tx del caller
	precios   map[string]decimal.Decimal    // precio sin redondear por producto
}

// NewApplier construye el aplicador con el repositorio de productos de la tx.
func NewApplier(productos repository.ProductoRepository) *Applier {
	return &Applier{
		productos: productos,
		precios:   make(map[string]decimal.Decimal),
	}
}

// AplicarDelta suma delta al stock del producto y, si costoUnitario no es nil,
// recalcula el costo promedio ponderado (delta positivo mezcla la entrada;
// delta negativo deshace esa mezcla al revertir una línea de compra). Devuelve
// el producto actualizado (stock nuevo, precio redondeado a 2 decimales).
// Falla con domain.ErrStockNegativo si el stock resultante sería menor que cero
// y con domain.ErrProductoNoEncontrado si el producto no existe.
func (a *Applier) AplicarDelta(productoID string, delta int64, costoUnitario *decimal.Decimal) (*entity.Producto, error) {
	p, err := a.productos.GetForUpdate(productoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductoNoEncontrado
	}

	precio := p.Precio
	if v, ok := a.precios[productoID]; ok {
		precio = v
	}

	nuevoStock := p.Stock + delta
	if nuevoStock < 0 {
		return nil, domain.ErrStockNegativo
	}
	if costoUnitario != nil && delta != 0 {
		precio = ledger.CostoPromedio(p.Stock, precio, delta, *costoUnitario)
	}
	a.precios[productoID] = precio

	redondeado := precio.Round(2)
	if err := a.productos.ActualizarStockPrecio(productoID, nuevoStock, redondeado); err != nil {
		return nil, err
	}
	p.Stock = nuevoStock
	p.Precio = redondeado
	return p, nil
}

// Revertir deshace el efecto de un asiento del libro aplicando el delta
// inverso, sin recalcular el precio (las reversas no llevan costo unitario).
func (a *Applier) Revertir(mov *entity.Inventario) (*entity.Producto, error) {
	return a.AplicarDelta(mov.ProductoID, -mov.Cantidad, nil)
}
