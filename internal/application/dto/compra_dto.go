package dto

import "github.com/shopspring/decimal"

// CompraLineaRequest línea de compra en solicitudes de crear/actualizar.
type CompraLineaRequest struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearCompraRequest body para POST /api/compras.
// FechaCompra en formato "2006-01-02"; vacía = hoy.
type CrearCompraRequest struct {
	ProveedorID   string               `json:"proveedor_id"`
	NumeroFactura string               `json:"numero_factura,omitempty"`
	FechaCompra   string               `json:"fecha_compra,omitempty"`
	Notas         string               `json:"notas,omitempty"`
	Lineas        []CompraLineaRequest `json:"lineas"`
}

// ActualizarCompraRequest body para PUT /api/compras/{id}.
// Las líneas reemplazan por completo a las existentes (revertir y reaplicar).
type ActualizarCompraRequest = CrearCompraRequest

// CompraLineaResponse línea de compra en respuestas.
type CompraLineaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CompraResponse compra con sus líneas.
type CompraResponse struct {
	ID            string                `json:"id"`
	ProveedorID   string                `json:"proveedor_id"`
	EmpleadoID    string                `json:"empleado_id"`
	NumeroFactura string                `json:"numero_factura,omitempty"`
	FechaCompra   string                `json:"fecha_compra"`
	Total         decimal.Decimal       `json:"total"`
	Notas         string                `json:"notas,omitempty"`
	Lineas        []CompraLineaResponse `json:"lineas"`
}

// CompraListResponse listado paginado de compras.
type CompraListResponse struct {
	Items []CompraResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
