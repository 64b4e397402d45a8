package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para productos. Stock y Precio se manejan
// vía compras y movimientos, nunca desde aquí.
type ProductoUseCase struct {
	productos  repository.ProductoRepository
	categorias repository.CategoriaRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(productos repository.ProductoRepository, categorias repository.CategoriaRepository) *ProductoUseCase {
	return &ProductoUseCase{productos: productos, categorias: categorias}
}

// Crear crea un producto nuevo. Stock inicia en 0 y Precio en 0.
func (uc *ProductoUseCase) Crear(in dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	existente, _ := uc.productos.GetByCodigo(in.Codigo)
	if existente != nil {
		return nil, domain.ErrDuplicado
	}
	if in.CategoriaID != nil {
		cat, err := uc.categorias.GetByID(*in.CategoriaID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrReferenciaInvalida
		}
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:          uuid.New().String(),
		CategoriaID: in.CategoriaID,
		Codigo:      in.Codigo,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Stock:       0,
		Precio:      decimal.Zero,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productos.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// Obtener devuelve un producto por ID.
func (uc *ProductoUseCase) Obtener(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.productos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toProductoResponse(producto), nil
}

// Actualizar modifica campos de catálogo del producto (nunca stock ni precio).
func (uc *ProductoUseCase) Actualizar(id string, in dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.productos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNoEncontrado
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.CategoriaID != nil {
		cat, err := uc.categorias.GetByID(*in.CategoriaID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrReferenciaInvalida
		}
		producto.CategoriaID = in.CategoriaID
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	producto.UpdatedAt = time.Now()
	if err := uc.productos.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// Listar lista productos con paginación.
func (uc *ProductoUseCase) Listar(limit, offset int) (*dto.ProductoListResponse, error) {
	list, err := uc.productos.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Eliminar borra un producto por ID.
func (uc *ProductoUseCase) Eliminar(id string) error {
	return uc.productos.Delete(id)
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID,
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		CategoriaID: p.CategoriaID,
		Stock:       p.Stock,
		Precio:      p.Precio,
		Activo:      p.Activo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
