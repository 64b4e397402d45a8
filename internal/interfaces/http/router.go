package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendafacil/backoffice-api/internal/application/auth"
	"github.com/tiendafacil/backoffice-api/internal/application/compras"
	"github.com/tiendafacil/backoffice-api/internal/application/movimientos"
	"github.com/tiendafacil/backoffice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductoUC    *usecase.ProductoUseCase
	ProveedorUC   *usecase.ProveedorUseCase
	CategoriaUC   *usecase.CategoriaUseCase
	CompraUC      *compras.UseCase
	MovimientosUC *movimientos.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/registrar", authHandler.Registrar)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (protegido)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", RequireRole("admin"), productoHandler.Delete)

	// Proveedores (protegido)
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", proveedorHandler.Update)
	proveedores.Delete("/:id", RequireRole("admin"), proveedorHandler.Delete)

	// Categorías (protegido)
	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias.Post("/", categoriaHandler.Create)
	categorias.Get("/", categoriaHandler.List)
	categorias.Get("/:id", categoriaHandler.GetByID)
	categorias.Put("/:id", categoriaHandler.Update)
	categorias.Delete("/:id", RequireRole("admin"), categoriaHandler.Delete)

	// Compras (protegido)
	comprasGroup := protected.Group("/compras")
	compraHandler := NewCompraHandler(deps.CompraUC)
	comprasGroup.Post("/", compraHandler.Create)
	comprasGroup.Get("/", compraHandler.List)
	comprasGroup.Get("/:id", compraHandler.GetByID)
	comprasGroup.Put("/:id", compraHandler.Update)
	comprasGroup.Delete("/:id", compraHandler.Delete)

	// Libro de inventario (protegido)
	invGroup := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.MovimientosUC)
	invGroup.Post("/movimientos", inventarioHandler.Create)
	invGroup.Get("/movimientos", inventarioHandler.List)
	invGroup.Get("/movimientos/:id", inventarioHandler.GetByID)
	invGroup.Put("/movimientos/:id", inventarioHandler.Update)
	invGroup.Delete("/movimientos/:id", inventarioHandler.Delete)
}
