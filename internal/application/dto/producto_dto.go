package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearProductoRequest body para POST /api/productos.
// Stock y precio no se aceptan: inician en cero y solo los mueve el motor de inventario.
type CrearProductoRequest struct {
	Codigo      string  `json:"codigo"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	CategoriaID *string `json:"categoria_id,omitempty"`
}

// ActualizarProductoRequest body para PUT /api/productos/{id}. Campos opcionales.
type ActualizarProductoRequest struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
	CategoriaID *string `json:"categoria_id,omitempty"`
	Activo      *bool   `json:"activo,omitempty"`
}

// ProductoResponse producto del catálogo con stock y costo promedio actuales.
type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	CategoriaID *string         `json:"categoria_id,omitempty"`
	Stock       int64           `json:"stock"`
	Precio      decimal.Decimal `json:"precio"` // costo promedio ponderado
	Activo      bool            `json:"activo"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductoListResponse listado paginado de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
