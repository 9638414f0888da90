package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrStockInsuficiente     = errors.New("stock insuficiente")
	ErrCreditoInsuficiente   = errors.New("crédito insuficiente")
	ErrTransicionNoPermitida = errors.New("transición de estado no permitida")
)

// StockInsuficienteError detalla qué producto no alcanza para la venta.
type StockInsuficienteError struct {
	ProductoID string
	Nombre     string
	Stock      int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d",
		e.Nombre, e.Stock, e.Solicitado)
}

func (e *StockInsuficienteError) Unwrap() error { return ErrStockInsuficiente }

// CreditoInsuficienteError detalla el faltante al rechazar una venta a crédito.
type CreditoInsuficienteError struct {
	ClienteID  string
	Disponible decimal.Decimal
	Requerido  decimal.Decimal
}

func (e *CreditoInsuficienteError) Error() string {
	faltante := e.Requerido.Sub(e.Disponible)
	return fmt.Sprintf("crédito insuficiente: disponible %s, requerido %s (faltan %s)",
		e.Disponible.StringFixed(2), e.Requerido.StringFixed(2), faltante.StringFixed(2))
}

func (e *CreditoInsuficienteError) Unwrap() error { return ErrCreditoInsuficiente }
