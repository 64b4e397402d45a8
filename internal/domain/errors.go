package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado         = errors.New("recurso no encontrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")
	ErrReferenciaInvalida   = errors.New("proveedor o empleado no existe")
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrStockNegativo        = errors.New("la operación dejaría el stock en negativo")
	ErrTipoInmutable        = errors.New("el tipo de movimiento no se puede modificar")
	ErrNoAutorizado         = errors.New("no autorizado")
	ErrCredenciales         = errors.New("credenciales inválidas")
)

// ErrorLinea identifica la línea de compra que causó el fallo de la operación.
// Envuelve el error de dominio original para que errors.Is siga funcionando.
type ErrorLinea struct {
	Indice     int    // posición de la línea en la solicitud (base 0)
	ProductoID string // producto referenciado por la línea
	Err        error
}

func (e *ErrorLinea) Error() string {
	return fmt.Sprintf("línea %d (producto %s): %v", e.Indice, e.ProductoID, e.Err)
}

func (e *ErrorLinea) Unwrap() error { return e.Err }

// NuevoErrorLinea construye el error de línea.
func NuevoErrorLinea(indice int, productoID string, err error) *ErrorLinea {
	return &ErrorLinea{Indice: indice, ProductoID: productoID, Err: err}
}
