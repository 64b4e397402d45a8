package movimientos_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/application/movimientos"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const empleadoID = "emp-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nuevoEntorno(t *testing.T) (*testutil.MemDB, *movimientos.UseCase) {
	t.Helper()
	db := testutil.NewMemDB()
	db.Empleados[empleadoID] = &entity.Empleado{ID: empleadoID, Nombre: "Ana", Activo: true}
	uc := movimientos.NewUseCase(db.TxRunner(), db.ProductoRepo(), db.EmpleadoRepo(), db.MovimientoRepo())
	return db, uc
}

func agregarProducto(db *testutil.MemDB, id string, stock int64, precio string) {
	db.Productos[id] = &entity.Producto{
		ID:     id,
		Codigo: "COD-" + id,
		Nombre: "Producto " + id,
		Stock:  stock,
		Precio: d(precio),
		Activo: true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearMovimiento_Entrada(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 5, "20")

	out, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoEntrada,
		Origen:     entity.OrigenDevolucion,
		Cantidad:   3,
		Motivo:     "Devolución de cliente",
		ProductoID: "p1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Cantidad, "entrada guarda delta positivo")
	assert.Equal(t, int64(8), out.StockResultante)
	assert.Equal(t, int64(8), db.Productos["p1"].Stock)
	assert.True(t, db.Productos["p1"].Precio.Equal(d("20")), "los movimientos no tocan el costo promedio")
	require.Len(t, db.Movimientos, 1)
}

func TestCrearMovimiento_Salida(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 10, "20")

	out, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoSalida,
		Origen:     entity.OrigenVenta,
		Cantidad:   4,
		Motivo:     "Venta mostrador",
		Referencia: "TICKET-88",
		ProductoID: "p1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(-4), out.Cantidad, "salida guarda delta negativo")
	assert.Equal(t, int64(6), out.StockResultante)
	assert.Equal(t, int64(6), db.Productos["p1"].Stock)
}

// Una salida mayor que el stock disponible se rechaza sin dejar rastro.
func TestCrearMovimiento_SalidaInsuficiente(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 3, "20")

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoSalida,
		Origen:     entity.OrigenVenta,
		Cantidad:   5,
		Motivo:     "Venta mostrador",
		ProductoID: "p1",
	})
	assert.ErrorIs(t, err, domain.ErrStockNegativo)
	assert.Equal(t, int64(3), db.Productos["p1"].Stock)
	assert.Empty(t, db.Movimientos, "no debe quedar asiento de una operación fallida")
}

// El ajuste lleva el signo del solicitante: negativo resta.
func TestCrearMovimiento_AjusteNegativo(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 5, "20")

	out, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoAjuste,
		Origen:     entity.OrigenAjuste,
		Cantidad:   -2,
		Motivo:     "Merma por conteo físico",
		ProductoID: "p1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-2), out.Cantidad)
	assert.Equal(t, int64(3), db.Productos["p1"].Stock)
}

func TestCrearMovimiento_AjusteCero(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 5, "20")

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoAjuste,
		Origen:     entity.OrigenAjuste,
		Cantidad:   0,
		Motivo:     "Ajuste vacío",
		ProductoID: "p1",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCrearMovimiento_TipoDesconocido(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 5, "20")

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       "transferencia",
		Origen:     entity.OrigenOtro,
		Cantidad:   1,
		Motivo:     "x",
		ProductoID: "p1",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCrearMovimiento_ProductoInexistente(t *testing.T) {
	_, uc := nuevoEntorno(t)

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoEntrada,
		Origen:     entity.OrigenOtro,
		Cantidad:   1,
		Motivo:     "x",
		ProductoID: "p-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrProductoNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualizar
// ──────────────────────────────────────────────────────────────────────────────

func TestActualizarMovimiento_CambioDeTipoRechazado(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 10, "20")

	creado, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoSalida,
		Origen:     entity.OrigenVenta,
		Cantidad:   2,
		Motivo:     "Venta",
		ProductoID: "p1",
	})
	require.NoError(t, err)

	_, err = uc.Actualizar(context.Background(), creado.ID, empleadoID, dto.ActualizarMovimientoRequest{
		Tipo:       entity.TipoEntrada,
		Origen:     entity.OrigenVenta,
		Cantidad:   2,
		Motivo:     "Venta",
		ProductoID: "p1",
	})
	assert.ErrorIs(t, err, domain.ErrTipoInmutable)
	assert.Equal(t, int64(8), db.Productos["p1"].Stock, "nada debe cambiar")
}

// Cambiar cantidad y producto: se revierte contra el producto original y se
// aplica contra el nuevo, en la misma transacción.
func TestActualizarMovimiento_CambiaCantidadYProducto(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 10, "20")
	agregarProducto(db, "p2", 7, "30")

	creado, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoSalida,
		Origen:     entity.OrigenVenta,
		Cantidad:   2,
		Motivo:     "Venta",
		ProductoID: "p1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(8), db.Productos["p1"].Stock)

	out, err := uc.Actualizar(context.Background(), creado.ID, empleadoID, dto.ActualizarMovimientoRequest{
		Origen:     entity.OrigenVenta,
		Cantidad:   5,
		Motivo:     "Venta corregida",
		ProductoID: "p2",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), db.Productos["p1"].Stock, "el producto original recupera su stock")
	assert.Equal(t, int64(2), db.Productos["p2"].Stock)
	assert.Equal(t, int64(-5), out.Cantidad)
	assert.Equal(t, int64(2), out.StockResultante)
	assert.Equal(t, "p2", out.ProductoID)
	require.Len(t, db.Movimientos, 1, "se reescribe el asiento, no se agrega otro")
}

func TestActualizarMovimiento_NoExiste(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 10, "20")

	_, err := uc.Actualizar(context.Background(), "mov-fantasma", empleadoID, dto.ActualizarMovimientoRequest{
		Origen:     entity.OrigenVenta,
		Cantidad:   1,
		Motivo:     "x",
		ProductoID: "p1",
	})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminar
// ──────────────────────────────────────────────────────────────────────────────

func TestEliminarMovimiento_RevierteYBorra(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 10, "20")

	creado, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoSalida,
		Origen:     entity.OrigenVenta,
		Cantidad:   4,
		Motivo:     "Venta",
		ProductoID: "p1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), db.Productos["p1"].Stock)

	out, err := uc.Eliminar(context.Background(), creado.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.StockResultante)
	assert.Equal(t, int64(10), db.Productos["p1"].Stock)
	assert.Empty(t, db.Movimientos)
}

// Borrar una entrada cuyo stock ya se consumió dejaría el stock negativo.
func TestEliminarMovimiento_EntradaConsumida_Falla(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "20")

	creado, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
		Tipo:       entity.TipoEntrada,
		Origen:     entity.OrigenDevolucion,
		Cantidad:   5,
		Motivo:     "Devolución",
		ProductoID: "p1",
	})
	require.NoError(t, err)

	db.Productos["p1"].Stock = 2

	_, err = uc.Eliminar(context.Background(), creado.ID)
	assert.ErrorIs(t, err, domain.ErrStockNegativo)
	assert.Equal(t, int64(2), db.Productos["p1"].Stock)
	require.Len(t, db.Movimientos, 1, "el asiento debe seguir intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListarMovimientos_FiltraPorProducto(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 10, "20")
	agregarProducto(db, "p2", 10, "20")

	for _, pid := range []string{"p1", "p2", "p1"} {
		_, err := uc.Crear(context.Background(), empleadoID, dto.CrearMovimientoRequest{
			Tipo:       entity.TipoSalida,
			Origen:     entity.OrigenVenta,
			Cantidad:   1,
			Motivo:     "Venta",
			ProductoID: pid,
		})
		require.NoError(t, err)
	}

	todos, err := uc.Listar(context.Background(), "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, todos.Items, 3)

	soloP1, err := uc.Listar(context.Background(), "p1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, soloP1.Items, 2)
	for _, item := range soloP1.Items {
		assert.Equal(t, "p1", item.ProductoID)
	}
}
