package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	proveedores repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(proveedores repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{proveedores: proveedores}
}

// Crear crea un proveedor.
func (uc *ProveedorUseCase) Crear(in dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	proveedor := &entity.Proveedor{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		NIT:       in.NIT,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.proveedores.Create(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// Obtener devuelve un proveedor por ID.
func (uc *ProveedorUseCase) Obtener(id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.proveedores.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toProveedorResponse(proveedor), nil
}

// Actualizar modifica un proveedor existente.
func (uc *ProveedorUseCase) Actualizar(id string, in dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.proveedores.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNoEncontrado
	}
	if in.Nombre != nil {
		proveedor.Nombre = *in.Nombre
	}
	if in.NIT != nil {
		proveedor.NIT = *in.NIT
	}
	if in.Telefono != nil {
		proveedor.Telefono = *in.Telefono
	}
	if in.Email != nil {
		proveedor.Email = *in.Email
	}
	if in.Direccion != nil {
		proveedor.Direccion = *in.Direccion
	}
	if in.Activo != nil {
		proveedor.Activo = *in.Activo
	}
	proveedor.UpdatedAt = time.Now()
	if err := uc.proveedores.Update(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// Listar lista proveedores con paginación.
func (uc *ProveedorUseCase) Listar(limit, offset int) (*dto.ProveedorListResponse, error) {
	list, err := uc.proveedores.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProveedorResponse(p))
	}
	return &dto.ProveedorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Eliminar borra un proveedor por ID.
func (uc *ProveedorUseCase) Eliminar(id string) error {
	return uc.proveedores.Delete(id)
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		NIT:       p.NIT,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
		Activo:    p.Activo,
	}
}
