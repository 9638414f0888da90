package entity

import "github.com/shopspring/decimal"

// VentaItem representa una línea de una venta: un producto, su cantidad
// y el precio unitario al momento de la venta.
type VentaItem struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       int // siempre > 0
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal // Cantidad * PrecioUnitario
}
