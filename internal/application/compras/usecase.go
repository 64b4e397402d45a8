package compras

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/application/stock"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de una compra (cabecera + líneas) y su
// efecto sobre stock, costo promedio y libro de inventario, todo dentro de una
// sola transacción por operación. Las ediciones no calculan diferencias: se
// revierte el efecto anterior y se aplica el nuevo con la misma primitiva que
// usan crear y eliminar, así un solo camino de código es responsable de toda
// la aritmética de stock.
type UseCase struct {
	txRunner    stock.TxRunner
	proveedores repository.ProveedorRepository
	empleados   repository.EmpleadoRepository
	productos   repository.ProductoRepository
	compras     repository.CompraRepository
}

// NewUseCase construye el caso de uso. Los repositorios recibidos se usan solo
// para lecturas de validación y consulta; las escrituras van por el TxRunner.
func NewUseCase(
	txRunner stock.TxRunner,
	proveedores repository.ProveedorRepository,
	empleados repository.EmpleadoRepository,
	productos repository.ProductoRepository,
	compras repository.CompraRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		proveedores: proveedores,
		empleados:   empleados,
		productos:   productos,
		compras:     compras,
	}
}

// Crear valida proveedor, empleado y productos, y dentro de una transacción
// crea la cabecera, sus líneas, suma stock con recálculo de costo promedio y
// agrega un asiento entrada/compra por línea con el snapshot de stock.
func (uc *UseCase) Crear(ctx context.Context, empleadoID string, in dto.CrearCompraRequest) (*dto.CompraResponse, error) {
	if err := uc.validarReferencias(empleadoID, in); err != nil {
		return nil, err
	}
	fecha, err := parseFecha(in.FechaCompra)
	if err != nil {
		return nil, err
	}
	// Computar primero los valores puros (líneas, subtotales, total) y recién
	// después abrir la transacción: el punto de fallo queda sin ambigüedad.
	lineas, total := construirLineas(in.Lineas)

	now := time.Now()
	compra := &entity.Compra{
		ID:            uuid.New().String(),
		ProveedorID:   in.ProveedorID,
		EmpleadoID:    empleadoID,
		NumeroFactura: in.NumeroFactura,
		FechaCompra:   fecha,
		Total:         total,
		Notas:         in.Notas,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		compraRepo repository.CompraRepository,
		movRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		if err := compraRepo.Create(compra); err != nil {
			return err
		}
		applier := stock.NewApplier(productoRepo)
		motivo := fmt.Sprintf("Compra #%s", compra.ID)
		for i, linea := range lineas {
			linea.CompraID = compra.ID
			if err := compraRepo.CreateLinea(linea); err != nil {
				return err
			}
			costo := linea.PrecioUnitario
			p, err := applier.AplicarDelta(linea.ProductoID, linea.Cantidad, &costo)
			if err != nil {
				return domain.NuevoErrorLinea(i, linea.ProductoID, err)
			}
			if err := movRepo.Create(uc.asiento(compra, linea.ProductoID, linea.Cantidad, entity.TipoEntrada, motivo, p.Stock, empleadoID, now)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	compra.Lineas = lineas
	return toCompraResponse(compra), nil
}

// Actualizar reemplaza por completo cabecera y líneas de una compra:
// revierte el efecto de cada línea existente (resta stock y deshace la mezcla
// de costo), borra las líneas, actualiza la cabecera y aplica las nuevas
// líneas como en Crear. Si revertir dejaría algún stock en negativo, la
// transacción completa se aborta con ErrStockNegativo.
func (uc *UseCase) Actualizar(ctx context.Context, id, empleadoID string, in dto.ActualizarCompraRequest) (*dto.CompraResponse, error) {
	if err := uc.validarReferencias(empleadoID, in); err != nil {
		return nil, err
	}
	fecha, err := parseFecha(in.FechaCompra)
	if err != nil {
		return nil, err
	}
	lineas, total := construirLineas(in.Lineas)
	now := time.Now()

	var compra *entity.Compra
	err = uc.txRunner.Run(ctx, func(
		compraRepo repository.CompraRepository,
		movRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		var err error
		compra, err = compraRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.ErrNoEncontrado
		}
		applier := stock.NewApplier(productoRepo)
		if err := uc.revertirLineas(compraRepo, movRepo, applier, compra, empleadoID,
			"Actualización de compra: reversa del efecto anterior", now); err != nil {
			return err
		}
		if err := compraRepo.DeleteLineas(id); err != nil {
			return err
		}

		compra.ProveedorID = in.ProveedorID
		compra.EmpleadoID = empleadoID
		compra.NumeroFactura = in.NumeroFactura
		compra.FechaCompra = fecha
		compra.Total = total
		compra.Notas = in.Notas
		compra.UpdatedAt = now
		if err := compraRepo.UpdateHeader(compra); err != nil {
			return err
		}

		motivo := "Actualización de compra: nuevo efecto"
		for i, linea := range lineas {
			linea.CompraID = id
			if err := compraRepo.CreateLinea(linea); err != nil {
				return err
			}
			costo := linea.PrecioUnitario
			p, err := applier.AplicarDelta(linea.ProductoID, linea.Cantidad, &costo)
			if err != nil {
				return domain.NuevoErrorLinea(i, linea.ProductoID, err)
			}
			if err := movRepo.Create(uc.asiento(compra, linea.ProductoID, linea.Cantidad, entity.TipoEntrada, motivo, p.Stock, empleadoID, now)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	compra.Lineas = lineas
	return toCompraResponse(compra), nil
}

// Eliminar revierte el efecto de cada línea (igual que en Actualizar), borra
// las líneas y luego la cabecera. Si el stock ya fue consumido por otras
// salidas y revertir lo dejaría en negativo, la operación falla y nada cambia.
func (uc *UseCase) Eliminar(ctx context.Context, id, empleadoID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		compraRepo repository.CompraRepository,
		movRepo repository.InventarioRepository,
		productoRepo repository.ProductoRepository,
	) error {
		compra, err := compraRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.ErrNoEncontrado
		}
		applier := stock.NewApplier(productoRepo)
		if err := uc.revertirLineas(compraRepo, movRepo, applier, compra, empleadoID,
			"Eliminación de compra", now); err != nil {
			return err
		}
		if err := compraRepo.DeleteLineas(id); err != nil {
			return err
		}
		return compraRepo.Delete(id)
	})
}

// Obtener devuelve una compra con sus líneas.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.CompraResponse, error) {
	compra, err := uc.compras.GetByID(id)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, domain.ErrNoEncontrado
	}
	compra.Lineas, err = uc.compras.ListLineas(id)
	if err != nil {
		return nil, err
	}
	return toCompraResponse(compra), nil
}

// Listar devuelve compras con sus líneas, paginadas por fecha de creación.
func (uc *UseCase) Listar(ctx context.Context, limit, offset int) (*dto.CompraListResponse, error) {
	list, err := uc.compras.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(list))
	for _, compra := range list {
		compra.Lineas, err = uc.compras.ListLineas(compra.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toCompraResponse(compra))
	}
	return &dto.CompraListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// revertirLineas deshace el efecto de las líneas vigentes de la compra y deja
// un asiento salida/compra compensatorio por cada una.
func (uc *UseCase) revertirLineas(
	compraRepo repository.CompraRepository,
	movRepo repository.InventarioRepository,
	applier *stock.Applier,
	compra *entity.Compra,
	empleadoID, motivo string,
	now time.Time,
) error {
	lineas, err := compraRepo.ListLineas(compra.ID)
	if err != nil {
		return err
	}
	for i, linea := range lineas {
		costo := linea.PrecioUnitario
		p, err := applier.AplicarDelta(linea.ProductoID, -linea.Cantidad, &costo)
		if err != nil {
			return domain.NuevoErrorLinea(i, linea.ProductoID, err)
		}
		if err := movRepo.Create(uc.asiento(compra, linea.ProductoID, -linea.Cantidad, entity.TipoSalida, motivo, p.Stock, empleadoID, now)); err != nil {
			return err
		}
	}
	return nil
}

// asiento arma el registro del libro para una línea de compra ya aplicada.
// cantidad llega firmada: positiva al aplicar, negativa al revertir.
func (uc *UseCase) asiento(compra *entity.Compra, productoID string, cantidad int64, tipo, motivo string, stockResultante int64, empleadoID string, now time.Time) *entity.Inventario {
	referencia := compra.NumeroFactura
	if referencia == "" {
		referencia = compra.ID
	}
	return &entity.Inventario{
		ID:              uuid.New().String(),
		Tipo:            tipo,
		Origen:          entity.OrigenCompra,
		Cantidad:        cantidad,
		Motivo:          motivo,
		Referencia:      referencia,
		StockResultante: stockResultante,
		ProductoID:      productoID,
		EmpleadoID:      empleadoID,
		Fecha:           now,
		CreatedAt:       now,
	}
}

// validarReferencias comprueba proveedor, empleado y cada producto referenciado
// antes de abrir la transacción. Un fallo identifica la línea ofensora.
func (uc *UseCase) validarReferencias(empleadoID string, in dto.CrearCompraRequest) error {
	if empleadoID == "" || in.ProveedorID == "" || len(in.Lineas) == 0 {
		return domain.ErrEntradaInvalida
	}
	empleado, err := uc.empleados.GetByID(empleadoID)
	if err != nil {
		return err
	}
	if empleado == nil {
		return domain.ErrReferenciaInvalida
	}
	proveedor, err := uc.proveedores.GetByID(in.ProveedorID)
	if err != nil {
		return err
	}
	if proveedor == nil {
		return domain.ErrReferenciaInvalida
	}
	for i, linea := range in.Lineas {
		if linea.ProductoID == "" || linea.Cantidad < 1 || linea.PrecioUnitario.IsNegative() {
			return domain.NuevoErrorLinea(i, linea.ProductoID, domain.ErrEntradaInvalida)
		}
		producto, err := uc.productos.GetByID(linea.ProductoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.NuevoErrorLinea(i, linea.ProductoID, domain.ErrProductoNoEncontrado)
		}
	}
	return nil
}

// construirLineas computa las líneas (con subtotal) y el total de la compra.
func construirLineas(in []dto.CompraLineaRequest) ([]*entity.CompraProducto, decimal.Decimal) {
	lineas := make([]*entity.CompraProducto, 0, len(in))
	total := decimal.Zero
	for _, l := range in {
		subtotal := l.PrecioUnitario.Mul(decimal.NewFromInt(l.Cantidad))
		lineas = append(lineas, &entity.CompraProducto{
			ID:             uuid.New().String(),
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}
	return lineas, total
}

func parseFecha(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.ErrEntradaInvalida
	}
	return t, nil
}

func toCompraResponse(c *entity.Compra) *dto.CompraResponse {
	resp := &dto.CompraResponse{
		ID:            c.ID,
		ProveedorID:   c.ProveedorID,
		EmpleadoID:    c.EmpleadoID,
		NumeroFactura: c.NumeroFactura,
		FechaCompra:   c.FechaCompra.Format("2006-01-02"),
		Total:         c.Total,
		Notas:         c.Notas,
		Lineas:        make([]dto.CompraLineaResponse, 0, len(c.Lineas)),
	}
	for _, l := range c.Lineas {
		resp.Lineas = append(resp.Lineas, dto.CompraLineaResponse{
			ID:             l.ID,
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal,
		})
	}
	return resp
}
