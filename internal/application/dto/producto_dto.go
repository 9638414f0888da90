package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearProductoRequest entrada para crear un producto.
type CrearProductoRequest struct {
	Nombre       string          `json:"nombre" validate:"required,min=1,max=200"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	Stock        int             `json:"stock" validate:"min=0"`
	StockMinimo  int             `json:"stock_minimo" validate:"min=0"`
}

// ActualizarProductoRequest entrada para actualizar un producto.
// Stock no se edita por acá: se muta solo vía ventas o ajuste explícito.
type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	PrecioCompra *decimal.Decimal `json:"precio_compra"`
	StockMinimo  *int             `json:"stock_minimo"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID           string          `json:"id"`
	NegocioID    string          `json:"negocio_id"`
	Nombre       string          `json:"nombre"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	Stock        int             `json:"stock"`
	StockMinimo  int             `json:"stock_minimo"`
	BajoStock    bool            `json:"bajo_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
