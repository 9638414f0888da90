package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avendano/puntoventa-api/internal/application/sales"
	"github.com/avendano/puntoventa-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductoUC    *usecase.ProductoUseCase
	ClienteUC     *usecase.ClienteUseCase
	CrearVenta    *sales.CreateSaleUseCase
	EliminarVenta *sales.DeleteSaleUseCase
	VentaQueries  *sales.SaleQueryUseCase
	VentaEstado   *sales.UpdateEstadoUseCase
	Recibo        *sales.ReceiptUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token con negocio_id)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (protegido)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", productoHandler.Delete)

	// Clientes (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Delete)

	// Ventas (protegido)
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.CrearVenta, deps.EliminarVenta, deps.VentaQueries, deps.VentaEstado, deps.Recibo)
	ventas.Post("/", ventaHandler.Create)
	ventas.Get("/", ventaHandler.List)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Delete("/:id", ventaHandler.Delete)
	ventas.Patch("/:id/estado", ventaHandler.UpdateEstado)
	ventas.Get("/:id/recibo", ventaHandler.Recibo)
}
