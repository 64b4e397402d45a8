package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto del catálogo.
// Stock y Precio (costo promedio ponderado) son propiedad del motor de inventario:
// solo se mutan vía compras y movimientos, nunca por el CRUD de catálogo.
type Producto struct {
	ID          string
	CategoriaID *string
	Codigo      string // código único del producto
	Nombre      string
	Descripcion string
	Stock       int64           // nunca menor que cero
	Precio      decimal.Decimal // costo promedio ponderado, 2 decimales persistidos
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
