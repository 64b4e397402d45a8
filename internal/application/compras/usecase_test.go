package compras_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendafacil/backoffice-api/internal/application/compras"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	empleadoID  = "emp-1"
	proveedorID = "prov-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nuevoEntorno(t *testing.T) (*testutil.MemDB, *compras.UseCase) {
	t.Helper()
	db := testutil.NewMemDB()
	db.Empleados[empleadoID] = &entity.Empleado{ID: empleadoID, Nombre: "Ana", Activo: true}
	db.Proveedores[proveedorID] = &entity.Proveedor{ID: proveedorID, Nombre: "Distribuidora Norte", Activo: true}
	uc := compras.NewUseCase(db.TxRunner(), db.ProveedorRepo(), db.EmpleadoRepo(), db.ProductoRepo(), db.CompraRepo())
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

func lineas(ls ...dto.CompraLineaRequest) []dto.CompraLineaRequest { return ls }

func linea(productoID string, cantidad int64, precio string) dto.CompraLineaRequest {
	return dto.CompraLineaRequest{ProductoID: productoID, Cantidad: cantidad, PrecioUnitario: d(precio)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

// Compra sobre producto sin stock: el costo promedio es el costo de la entrada.
func TestCrearCompra_ProductoNuevo(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	out, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID:   proveedorID,
		NumeroFactura: "F-001",
		Lineas:        lineas(linea("p1", 20, "50")),
	})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(d("1000")), "total = cantidad * precio unitario")
	require.Len(t, out.Lineas, 1)
	assert.True(t, out.Lineas[0].Subtotal.Equal(d("1000")))

	p := db.Productos["p1"]
	assert.Equal(t, int64(20), p.Stock)
	assert.True(t, p.Precio.Equal(d("50")), "precio esperado 50, obtuve %s", p.Precio)

	require.Len(t, db.Movimientos, 1, "cada línea deja un asiento en el libro")
	mov := db.Movimientos[0]
	assert.Equal(t, entity.TipoEntrada, mov.Tipo)
	assert.Equal(t, entity.OrigenCompra, mov.Origen)
	assert.Equal(t, int64(20), mov.Cantidad)
	assert.Equal(t, int64(20), mov.StockResultante)
	assert.Equal(t, "F-001", mov.Referencia)
	assert.Equal(t, empleadoID, mov.EmpleadoID)
}

// Caso canónico de promedio ponderado: 10 en stock a $100 más 5 a $130 → $110.
func TestCrearCompra_PromedioPonderado(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 10, "100")

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 5, "130")),
	})
	require.NoError(t, err)

	p := db.Productos["p1"]
	assert.Equal(t, int64(15), p.Stock)
	assert.True(t, p.Precio.Equal(d("110")), "precio esperado 110, obtuve %s", p.Precio)
}

// Dos líneas del mismo producto en la misma compra se mezclan en secuencia.
func TestCrearCompra_DosLineasMismoProducto(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 3, "10"), linea("p1", 1, "14")),
	})
	require.NoError(t, err)

	p := db.Productos["p1"]
	assert.Equal(t, int64(4), p.Stock)
	// (3*10 + 1*14) / 4 = 11
	assert.True(t, p.Precio.Equal(d("11")), "precio esperado 11, obtuve %s", p.Precio)
	assert.Len(t, db.Movimientos, 2)
}

func TestCrearCompra_ProveedorInexistente(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: "prov-fantasma",
		Lineas:      lineas(linea("p1", 1, "10")),
	})
	assert.ErrorIs(t, err, domain.ErrReferenciaInvalida)
	assert.Empty(t, db.Compras, "no debe persistir nada")
}

// La línea ofensora queda identificada por índice en el error.
func TestCrearCompra_LineaInvalida_IdentificaIndice(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 2, "10"), linea("p1", 0, "10")),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	var errLinea *domain.ErrorLinea
	require.ErrorAs(t, err, &errLinea)
	assert.Equal(t, 1, errLinea.Indice)
}

func TestCrearCompra_ProductoInexistente(t *testing.T) {
	_, uc := nuevoEntorno(t)

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p-fantasma", 1, "10")),
	})
	assert.ErrorIs(t, err, domain.ErrProductoNoEncontrado)
}

func TestCrearCompra_FechaInvalida(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	_, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		FechaCompra: "31/12/2025",
		Lineas:      lineas(linea("p1", 1, "10")),
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualizar
// ──────────────────────────────────────────────────────────────────────────────

// Las líneas nuevas reemplazan por completo a las anteriores: el efecto viejo
// se revierte y el nuevo se aplica desde cero.
func TestActualizarCompra_ReemplazaLineas(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	creada, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 10, "100")),
	})
	require.NoError(t, err)

	out, err := uc.Actualizar(context.Background(), creada.ID, empleadoID, dto.ActualizarCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 4, "80")),
	})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(d("320")))
	p := db.Productos["p1"]
	assert.Equal(t, int64(4), p.Stock)
	assert.True(t, p.Precio.Equal(d("80")), "precio esperado 80, obtuve %s", p.Precio)

	guardadas := db.Lineas[creada.ID]
	require.Len(t, guardadas, 1, "las líneas viejas no deben sobrevivir")
	assert.Equal(t, int64(4), guardadas[0].Cantidad)

	// Libro: entrada original + reversa + entrada nueva.
	require.Len(t, db.Movimientos, 3)
	assert.Equal(t, entity.TipoSalida, db.Movimientos[1].Tipo)
	assert.Equal(t, int64(-10), db.Movimientos[1].Cantidad)
	assert.Equal(t, entity.TipoEntrada, db.Movimientos[2].Tipo)
	assert.Equal(t, int64(4), db.Movimientos[2].Cantidad)
}

// Actualizar con exactamente las mismas líneas deja stock y precio como estaban.
func TestActualizarCompra_IdenticaEsIdempotente(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 10, "100")

	creada, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 5, "130")),
	})
	require.NoError(t, err)
	require.True(t, db.Productos["p1"].Precio.Equal(d("110")))

	_, err = uc.Actualizar(context.Background(), creada.ID, empleadoID, dto.ActualizarCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 5, "130")),
	})
	require.NoError(t, err)

	p := db.Productos["p1"]
	assert.Equal(t, int64(15), p.Stock)
	assert.True(t, p.Precio.Equal(d("110")), "revertir y reaplicar la misma línea no debe mover el precio, obtuve %s", p.Precio)
}

func TestActualizarCompra_NoExiste(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	_, err := uc.Actualizar(context.Background(), "compra-fantasma", empleadoID, dto.ActualizarCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 1, "10")),
	})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

// Si el stock de la compra original ya se consumió, revertirla dejaría el stock
// en negativo: la actualización se aborta sin tocar nada.
func TestActualizarCompra_StockConsumido_Falla(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	creada, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 5, "40")),
	})
	require.NoError(t, err)

	// Otras salidas consumieron parte del stock de la compra.
	db.Productos["p1"].Stock = 2

	_, err = uc.Actualizar(context.Background(), creada.ID, empleadoID, dto.ActualizarCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 3, "40")),
	})
	assert.ErrorIs(t, err, domain.ErrStockNegativo)
	assert.Equal(t, int64(2), db.Productos["p1"].Stock, "el rollback debe dejar el stock intacto")
	assert.Len(t, db.Lineas[creada.ID], 1, "las líneas originales deben sobrevivir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminar
// ──────────────────────────────────────────────────────────────────────────────

func TestEliminarCompra_RevierteEfecto(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	creada, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 5, "40")),
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), db.Productos["p1"].Stock)

	require.NoError(t, uc.Eliminar(context.Background(), creada.ID, empleadoID))

	assert.Equal(t, int64(0), db.Productos["p1"].Stock)
	assert.Empty(t, db.Compras)
	assert.Empty(t, db.Lineas[creada.ID])
	// El libro conserva la historia: entrada original + reversa.
	require.Len(t, db.Movimientos, 2)
	assert.Equal(t, int64(-5), db.Movimientos[1].Cantidad)
	assert.Equal(t, int64(0), db.Movimientos[1].StockResultante)
}

func TestEliminarCompra_StockConsumido_Falla(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	creada, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID: proveedorID,
		Lineas:      lineas(linea("p1", 5, "40")),
	})
	require.NoError(t, err)

	db.Productos["p1"].Stock = 2

	err = uc.Eliminar(context.Background(), creada.ID, empleadoID)
	assert.ErrorIs(t, err, domain.ErrStockNegativo)
	assert.Equal(t, int64(2), db.Productos["p1"].Stock)
	assert.Contains(t, db.Compras, creada.ID, "la compra debe seguir existiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestObtenerCompra_ConLineas(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	creada, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
		ProveedorID:   proveedorID,
		NumeroFactura: "F-002",
		Lineas:        lineas(linea("p1", 2, "15")),
	})
	require.NoError(t, err)

	out, err := uc.Obtener(context.Background(), creada.ID)
	require.NoError(t, err)
	assert.Equal(t, "F-002", out.NumeroFactura)
	require.Len(t, out.Lineas, 1)
	assert.True(t, out.Lineas[0].Subtotal.Equal(d("30")))
}

func TestObtenerCompra_NoExiste(t *testing.T) {
	_, uc := nuevoEntorno(t)
	_, err := uc.Obtener(context.Background(), "compra-fantasma")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestListarCompras(t *testing.T) {
	db, uc := nuevoEntorno(t)
	agregarProducto(db, "p1", 0, "0")

	for i := 0; i < 3; i++ {
		_, err := uc.Crear(context.Background(), empleadoID, dto.CrearCompraRequest{
			ProveedorID: proveedorID,
			Lineas:      lineas(linea("p1", 1, "10")),
		})
		require.NoError(t, err)
	}

	out, err := uc.Listar(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	for _, item := range out.Items {
		assert.Len(t, item.Lineas, 1)
	}
}
