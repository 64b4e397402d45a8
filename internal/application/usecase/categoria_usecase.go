package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

// CategoriaUseCase casos de uso CRUD para categorías.
type CategoriaUseCase struct {
	categorias repository.CategoriaRepository
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(categorias repository.CategoriaRepository) *CategoriaUseCase {
	return &CategoriaUseCase{categorias: categorias}
}

// Crear crea una categoría.
func (uc *CategoriaUseCase) Crear(in dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	categoria := &entity.Categoria{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categorias.Create(categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

// Obtener devuelve una categoría por ID.
func (uc *CategoriaUseCase) Obtener(id string) (*dto.CategoriaResponse, error) {
	categoria, err := uc.categorias.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toCategoriaResponse(categoria), nil
}

// Actualizar modifica una categoría existente.
func (uc *CategoriaUseCase) Actualizar(id string, in dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := uc.categorias.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNoEncontrado
	}
	if in.Nombre != nil {
		categoria.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		categoria.Descripcion = *in.Descripcion
	}
	categoria.UpdatedAt = time.Now()
	if err := uc.categorias.Update(categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

// Listar lista categorías con paginación.
func (uc *CategoriaUseCase) Listar(limit, offset int) (*dto.CategoriaListResponse, error) {
	list, err := uc.categorias.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoriaResponse(c))
	}
	return &dto.CategoriaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Eliminar borra una categoría por ID.
func (uc *CategoriaUseCase) Eliminar(id string) error {
	return uc.categorias.Delete(id)
}

func toCategoriaResponse(c *entity.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
	}
}
