package entity

import "time"

// Proveedor representa un proveedor de compras.
type Proveedor struct {
	ID        string
	Nombre    string
	NIT       string
	Telefono  string
	Email     string
	Direccion string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
