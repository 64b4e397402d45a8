package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compra cabecera de una compra a proveedor. Sus líneas (CompraProducto) se
// crean, reemplazan y eliminan siempre como una unidad junto con la cabecera.
type Compra struct {
	ID            string
	ProveedorID   string
	EmpleadoID    string
	NumeroFactura string // opcional; si está vacío se usa el ID de la compra como referencia
	FechaCompra   time.Time
	Total         decimal.Decimal
	Notas         string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Lineas []*CompraProducto
}

// CompraProducto línea de una compra. Existe solo mientras exista su compra;
// en una actualización las líneas se reemplazan por completo (borrar + recrear).
type CompraProducto struct {
	ID             string
	CompraID       string
	ProductoID     string
	Cantidad       int64 // >= 1
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal // Cantidad * PrecioUnitario
}
