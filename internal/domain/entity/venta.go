package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTarjeta       = "tarjeta"
	MetodoTransferencia = "transferencia"
	MetodoCredito       = "credito"
)

// Estados de una venta.
const (
	EstadoPendiente  = "pendiente"
	EstadoEnProceso  = "en_proceso"
	EstadoCompletada = "completada"
	EstadoCancelada  = "cancelada"
)

// transiciones define el grafo de estados permitido.
// completada y cancelada son terminales.
var transiciones = map[string][]string{
	EstadoPendiente:  {EstadoEnProceso, EstadoCancelada},
	EstadoEnProceso:  {EstadoCompletada, EstadoCancelada},
	EstadoCompletada: {},
	EstadoCancelada:  {},
}

// Venta representa la cabecera de una venta. ClienteID nulo indica
// cliente de mostrador (venta sin cliente registrado).
type Venta struct {
	ID         string
	NegocioID  string
	ClienteID  *string
	MetodoPago string
	Estado     string
	Subtotal   decimal.Decimal
	Descuento  decimal.Decimal
	Total      decimal.Decimal
	FechaVenta time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MetodoPagoValido valida el método de pago.
func MetodoPagoValido(m string) bool {
	switch m {
	case MetodoEfectivo, MetodoTarjeta, MetodoTransferencia, MetodoCredito:
		return true
	}
	return false
}

// EstadoValido valida que el estado exista en el grafo.
func EstadoValido(e string) bool {
	_, ok := transiciones[e]
	return ok
}

// TransicionPermitida indica si la venta puede pasar de un estado a otro.
func TransicionPermitida(desde, hacia string) bool {
	for _, e := range transiciones[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

// TotalVenta calcula el total: subtotal menos descuento, con piso en cero.
func TotalVenta(subtotal, descuento decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(descuento)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
