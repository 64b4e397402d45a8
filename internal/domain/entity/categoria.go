package entity

import "time"

// Categoria agrupa productos del catálogo.
type Categoria struct {
	ID          string
	Nombre      string
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
