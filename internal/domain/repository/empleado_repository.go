package repository

import "github.com/tiendafacil/backoffice-api/internal/domain/entity"

// EmpleadoRepository define el puerto de persistencia para empleados.
type EmpleadoRepository interface {
	Create(empleado *entity.Empleado) error
	GetByID(id string) (*entity.Empleado, error)
	GetByEmail(email string) (*entity.Empleado, error)
	List(limit, offset int) ([]*entity.Empleado, error)
}
