package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VentaItemRequest línea de venta entrante: producto, cantidad y precio.
// PrecioUnitario en cero toma el precio de venta actual del producto.
type VentaItemRequest struct {
	ID             string          `json:"id" validate:"required"`
	Cantidad       int             `json:"cantidad" validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearVentaRequest entrada para crear una venta.
// ClienteID nulo indica cliente de mostrador; obligatorio con método "credito".
type CrearVentaRequest struct {
	ClienteID  *string            `json:"cliente_id"`
	MetodoPago string             `json:"metodo_pago" validate:"required"`
	Descuento  decimal.Decimal    `json:"descuento"`
	Productos  []VentaItemRequest `json:"productos" validate:"required,min=1"`
	FechaVenta *time.Time         `json:"fecha_venta"`
}

// ActualizarEstadoRequest entrada para mover la venta de estado.
type ActualizarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// VentaItemResponse línea de venta en respuestas.
type VentaItemResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// VentaResponse salida de una venta con sus líneas.
type VentaResponse struct {
	ID         string              `json:"id"`
	NegocioID  string              `json:"negocio_id"`
	ClienteID  *string             `json:"cliente_id,omitempty"`
	MetodoPago string              `json:"metodo_pago"`
	Estado     string              `json:"estado"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Descuento  decimal.Decimal     `json:"descuento"`
	Total      decimal.Decimal     `json:"total"`
	FechaVenta time.Time           `json:"fecha_venta"`
	Productos  []VentaItemResponse `json:"productos"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// VentaListResponse lista paginada de ventas (solo cabeceras).
type VentaListResponse struct {
	Items []VentaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
