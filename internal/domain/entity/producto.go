package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un artículo vendible de un negocio.
// Stock se muta únicamente como efecto de una venta (o su eliminación)
// y de ediciones manuales; nunca por fuera de esos flujos.
type Producto struct {
	ID           string
	NegocioID    string
	Nombre       string
	PrecioVenta  decimal.Decimal
	PrecioCompra decimal.Decimal
	Stock        int // invariante: >= 0 tras cualquier operación confirmada
	StockMinimo  int // umbral de alerta en UI, no bloquea ventas
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BajoStock indica si el producto está en o por debajo del umbral de alerta.
func (p *Producto) BajoStock() bool {
	return p.Stock <= p.StockMinimo
}
