package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/application/movimientos"
)

// InventarioHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type InventarioHandler struct {
	uc *movimientos.UseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *movimientos.UseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica el delta al stock del producto (rechaza stock negativo) y agrega el asiento al libro.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearMovimientoRequest  true  "tipo, origen, cantidad, motivo, producto_id"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(c.Context(), GetEmpleadoID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{id} [get]
func (h *InventarioHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Obtener(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Orden cronológico inverso. Con producto_id filtra el historial de un producto.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200          {object}  dto.MovimientoListResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventarioHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.Listar(c.Context(), c.Query("producto_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar movimiento
// @Description  Revierte el efecto original y aplica el nuevo en una sola transacción. El tipo es inmutable.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.ActualizarMovimientoRequest  true  "Campos nuevos"
// @Success      200   {object}  dto.MovimientoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{id} [put]
func (h *InventarioHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ActualizarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Context(), id, GetEmpleadoID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Revierte el efecto sobre el stock y borra el asiento. Devuelve el stock resultante del producto.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.EliminarMovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{id} [delete]
func (h *InventarioHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Eliminar(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
