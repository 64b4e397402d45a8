package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendafacil/backoffice-api/internal/application/compras"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
)

// CompraHandler maneja las peticiones HTTP para compras (protegido).
type CompraHandler struct {
	uc *compras.UseCase
}

// NewCompraHandler construye el handler.
func NewCompraHandler(uc *compras.UseCase) *CompraHandler {
	return &CompraHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Crea la compra con sus líneas, suma stock y recalcula el costo promedio de cada producto.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearCompraRequest  true  "Proveedor, factura y líneas"
// @Success      201   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *CompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearCompraRequest
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
// @Summary      Obtener compra por ID
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.CompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *CompraHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CompraListResponse
// @Router       /api/compras [get]
func (h *CompraHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.Listar(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar compra
// @Description  Reemplaza cabecera y líneas: revierte el efecto anterior sobre stock y costo promedio y aplica el nuevo en una sola transacción.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compra"
// @Param        body  body  dto.ActualizarCompraRequest  true  "Cabecera y líneas nuevas"
// @Success      200   {object}  dto.CompraResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [put]
func (h *CompraHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ActualizarCompraRequest
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
// @Summary      Eliminar compra
// @Description  Revierte el efecto de cada línea sobre stock y costo promedio y borra compra y líneas. Falla con 409 si algún stock quedaría negativo.
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [delete]
func (h *CompraHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Eliminar(c.Context(), id, GetEmpleadoID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
