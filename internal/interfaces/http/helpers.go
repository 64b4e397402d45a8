package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/domain"
)

// respondError traduce los errores de dominio a respuestas HTTP uniformes.
// Si el error viene envuelto en un ErrorLinea, la respuesta incluye el índice
// de la línea de compra que falló.
func respondError(c *fiber.Ctx, err error) error {
	var linea *int
	var errLinea *domain.ErrorLinea
	if errors.As(err, &errLinea) {
		idx := errLinea.Indice
		linea = &idx
	}

	status := fiber.StatusInternalServerError
	code := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNoEncontrado):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrProductoNoEncontrado):
		status, code = fiber.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicado):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrStockNegativo):
		status, code = fiber.StatusConflict, "NEGATIVE_STOCK"
	case errors.Is(err, domain.ErrReferenciaInvalida):
		status, code = fiber.StatusUnprocessableEntity, "INVALID_REFERENCE"
	case errors.Is(err, domain.ErrTipoInmutable):
		status, code = fiber.StatusUnprocessableEntity, "IMMUTABLE_TYPE"
	case errors.Is(err, domain.ErrCredenciales), errors.Is(err, domain.ErrNoAutorizado):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error(), Linea: linea})
}

// parsePage lee limit/offset de la query con defaults y topes.
func parsePage(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
