package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cliente representa un cliente del negocio con cupo de crédito.
// CreditoDisponible es el saldo restante para ventas con método "credito";
// la reserva se descuenta dentro de la misma unidad de trabajo de la venta.
type Cliente struct {
	ID                string
	NegocioID         string
	Nombre            string
	CreditoDisponible decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
