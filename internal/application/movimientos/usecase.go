package movimientos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/application/stock"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

// UseCase registra movimientos de inventario no ligados a compras (ventas,
// ajustes manuales, devoluciones) contra el libro y el stock del producto,
// con la misma disciplina transaccional y de reversa que usan las compras.
// Los movimientos no llevan costo unitario: el costo promedio solo lo mueven
// las compras.
type UseCase struct {
	txRunner    stock.TxRunner
	productos   repository.ProductoRepository
	empleados   repository.EmpleadoRepository
	movimientos repository.InventarioRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner stock.TxRunner,
	productos repository.ProductoRepository,
	empleados repository.EmpleadoRepository,
	movimientos repository.InventarioRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productos:   productos,
		empleados:   empleados,
		movimientos: movimientos,
	}
}

// deltaPorTipo normaliza la cantidad solicitada al delta firmado del asiento:
// entrada -> +cantidad, salida -> -cantidad, ajuste -> cantidad tal cual (el
// solicitante define el signo del ajuste).
func deltaPorTipo(tipo string, cantidad int64) int64 {
	switch tipo {
	case entity.TipoEntrada:
		return cantidad
	case entity.TipoSalida:
		return -cantidad
	default:
		return cantidad
	}
}

func validarCantidad(tipo string, cantidad int64) error {
	switch tipo {
	case entity.TipoEntrada, entity.TipoSalida:
		if cantidad < 1 {
			return domain.ErrEntradaInvalida
		}
	case entity.TipoAjuste:
		if cantidad == 0 {
			return domain.ErrEntradaInvalida
		}
	}
	return nil
}

// Crear valida producto y empleado, aplica el delta (rechazando stock
// negativo) y agrega el asiento con el snapshot de stock resultante.
func (uc *UseCase) Crear(ctx context.Context, empleadoID string, in dto.CrearMovimientoRequest) (*dto.MovimientoResponse, error) {
	if !entity.TipoValido(in.Tipo) || !entity.OrigenValido(in.Origen) ||
		in.ProductoID == "" || in.Motivo == "" || empleadoID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if err := validarCantidad(in.Tipo, in.Cantidad); err != nil {
		return nil, err
	}
	if err := uc.validarReferencias(empleadoID, in.ProductoID); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.Inventario{
		ID:         uuid.New().String(),
		Tipo:       in.Tipo,
		Origen:     in.Origen,
		Cantidad:   deltaPorTipo(in.Tipo, in.Cantidad),
		Motivo:     in.Motivo,
		Referencia: in.Referencia,
		ProductoID: in.ProductoID,
		EmpleadoID: empleadoID,
		Fecha:      now,
		CreatedAt:  now,
	}
	err := uc.txRunner.Run(ctx, func(
		_ repository.CompraRepository,
		movRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		applier := stock.NewApplier(productoRepo)
		p, err := applier.AplicarDelta(mov.ProductoID, mov.Cantidad, nil)
		if err != nil {
			return err
		}
		mov.StockResultante = p.Stock
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovimientoResponse(mov), nil
}

// Actualizar revierte el efecto del asiento original contra su producto
// original y aplica el efecto nuevo contra el producto indicado (que puede
// ser otro), dentro de la misma transacción. El tipo es inmutable.
func (uc *UseCase) Actualizar(ctx context.Context, id, empleadoID string, in dto.ActualizarMovimientoRequest) (*dto.MovimientoResponse, error) {
	if !entity.OrigenValido(in.Origen) || in.ProductoID == "" || in.Motivo == "" || empleadoID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if err := uc.validarReferencias(empleadoID, in.ProductoID); err != nil {
		return nil, err
	}

	var mov *entity.Inventario
	err := uc.txRunner.Run(ctx, func(
		_ repository.CompraRepository,
		movRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		var err error
		mov, err = movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNoEncontrado
		}
		if in.Tipo != "" && in.Tipo != mov.Tipo {
			return domain.ErrTipoInmutable
		}
		if err := validarCantidad(mov.Tipo, in.Cantidad); err != nil {
			return err
		}

		applier := stock.NewApplier(productoRepo)
		if _, err := applier.Revertir(mov); err != nil {
			return err
		}
		delta := deltaPorTipo(mov.Tipo, in.Cantidad)
		p, err := applier.AplicarDelta(in.ProductoID, delta, nil)
		if err != nil {
			return err
		}

		mov.Origen = in.Origen
		mov.Cantidad = delta
		mov.Motivo = in.Motivo
		mov.Referencia = in.Referencia
		mov.ProductoID = in.ProductoID
		mov.EmpleadoID = empleadoID
		mov.StockResultante = p.Stock
		return movRepo.Update(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovimientoResponse(mov), nil
}

// Eliminar revierte el efecto del asiento y borra la fila. Si revertir dejaría
// el stock en negativo la operación falla y el asiento sigue intacto.
func (uc *UseCase) Eliminar(ctx context.Context, id string) (*dto.EliminarMovimientoResponse, error) {
	var stockResultante int64
	err := uc.txRunner.Run(ctx, func(
		_ repository.CompraRepository,
		movRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		mov, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNoEncontrado
		}
		applier := stock.NewApplier(productoRepo)
		p, err := applier.Revertir(mov)
		if err != nil {
			return err
		}
		stockResultante = p.Stock
		return movRepo.Delete(id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.EliminarMovimientoResponse{StockResultante: stockResultante}, nil
}

// Obtener devuelve un asiento por ID.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.MovimientoResponse, error) {
	mov, err := uc.movimientos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toMovimientoResponse(mov), nil
}

// Listar devuelve asientos en orden cronológico inverso; con productoID filtra
// por producto.
func (uc *UseCase) Listar(ctx context.Context, productoID string, limit, offset int) (*dto.MovimientoListResponse, error) {
	var (
		list []*entity.Inventario
		err  error
	)
	if productoID != "" {
		list, err = uc.movimientos.ListByProducto(productoID, limit, offset)
	} else {
		list, err = uc.movimientos.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(list))
	for _, mov := range list {
		items = append(items, *toMovimientoResponse(mov))
	}
	return &dto.MovimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *UseCase) validarReferencias(empleadoID, productoID string) error {
	empleado, err := uc.empleados.GetByID(empleadoID)
	if err != nil {
		return err
	}
	if empleado == nil {
		return domain.ErrReferenciaInvalida
	}
	producto, err := uc.productos.GetByID(productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrProductoNoEncontrado
	}
	return nil
}

func toMovimientoResponse(m *entity.Inventario) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:              m.ID,
		Tipo:            m.Tipo,
		Origen:          m.Origen,
		Cantidad:        m.Cantidad,
		Motivo:          m.Motivo,
		Referencia:      m.Referencia,
		StockResultante: m.StockResultante,
		ProductoID:      m.ProductoID,
		EmpleadoID:      m.EmpleadoID,
		Fecha:           m.Fecha.Format(time.RFC3339),
	}
}
