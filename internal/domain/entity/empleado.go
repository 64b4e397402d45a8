package entity

import "time"

// Empleado usuario del back-office. El motor de inventario solo lo consume como
// identidad de atribución (empleado_id en compras y movimientos).
type Empleado struct {
	ID           string
	Nombre       string
	Email        string
	PasswordHash string
	Rol          string // "admin" | "bodeguero" | "vendedor"
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
