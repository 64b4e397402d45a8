package entity

import "time"

// Tipos de movimiento de inventario.
const (
	TipoEntrada = "entrada"
	TipoSalida  = "salida"
	TipoAjuste  = "ajuste"
)

// Orígenes de movimiento de inventario.
const (
	OrigenVenta      = "venta"
	OrigenCompra     = "compra"
	OrigenAjuste     = "ajuste"
	OrigenDevolucion = "devolucion"
	OrigenOtro       = "otro"
)

// Inventario es un asiento del libro de movimientos de stock (append-mostly).
// Cantidad guarda el delta firmado: positivo en entradas, negativo en salidas,
// con el signo dado por el solicitante en ajustes. La suma de Cantidad de los
// asientos vivos de un producto debe coincidir con Producto.Stock en cada commit.
type Inventario struct {
	ID              string
	Tipo            string
	Origen          string
	Cantidad        int64 // delta firmado sobre el stock
	Motivo          string
	Referencia      string // opcional: número de factura o ID de compra
	StockResultante int64  // snapshot del stock inmediatamente después del asiento
	ProductoID      string
	EmpleadoID      string
	Fecha           time.Time
	CreatedAt       time.Time
}

// TipoValido indica si s es un tipo de movimiento conocido.
func TipoValido(s string) bool {
	return s == TipoEntrada || s == TipoSalida || s == TipoAjuste
}

// OrigenValido indica si s es un origen de movimiento conocido.
func OrigenValido(s string) bool {
	switch s {
	case OrigenVenta, OrigenCompra, OrigenAjuste, OrigenDevolucion, OrigenOtro:
		return true
	}
	return false
}
