package dto

// CrearMovimientoRequest body para POST /api/inventario/movimientos.
// Cantidad: >= 1 para entrada/salida; en ajuste lleva el signo del efecto
// deseado (positiva suma, negativa resta) y no puede ser cero.
type CrearMovimientoRequest struct {
	Tipo       string `json:"tipo"`
	Origen     string `json:"origen"`
	Cantidad   int64  `json:"cantidad"`
	Motivo     string `json:"motivo"`
	Referencia string `json:"referencia,omitempty"`
	ProductoID string `json:"producto_id"`
}

// ActualizarMovimientoRequest body para PUT /api/inventario/movimientos/{id}.
// Tipo es inmutable: si viene y difiere del original la operación falla.
type ActualizarMovimientoRequest struct {
	Tipo       string `json:"tipo,omitempty"`
	Origen     string `json:"origen"`
	Cantidad   int64  `json:"cantidad"`
	Motivo     string `json:"motivo"`
	Referencia string `json:"referencia,omitempty"`
	ProductoID string `json:"producto_id"`
}

// MovimientoResponse asiento del libro de inventario.
type MovimientoResponse struct {
	ID              string `json:"id"`
	Tipo            string `json:"tipo"`
	Origen          string `json:"origen"`
	Cantidad        int64  `json:"cantidad"` // delta firmado
	Motivo          string `json:"motivo"`
	Referencia      string `json:"referencia,omitempty"`
	StockResultante int64  `json:"stock_resultante"`
	ProductoID      string `json:"producto_id"`
	EmpleadoID      string `json:"empleado_id"`
	Fecha           string `json:"fecha"`
}

// MovimientoListResponse listado paginado de movimientos.
type MovimientoListResponse struct {
	Items []MovimientoResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// EliminarMovimientoResponse stock del producto tras revertir y borrar el asiento.
type EliminarMovimientoResponse struct {
	StockResultante int64 `json:"stock_resultante"`
}
