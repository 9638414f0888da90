package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avendano/puntoventa-api/internal/domain/entity"
)

func TestMetodoPagoValido(t *testing.T) {
	for _, m := range []string{entity.MetodoEfectivo, entity.MetodoTarjeta, entity.MetodoTransferencia, entity.MetodoCredito} {
		assert.True(t, entity.MetodoPagoValido(m), m)
	}
	assert.False(t, entity.MetodoPagoValido("cheque"))
	assert.False(t, entity.MetodoPagoValido(""))
	assert.False(t, entity.MetodoPagoValido("Efectivo"), "sensible a mayúsculas")
}

func TestTransicionPermitida(t *testing.T) {
	assert.True(t, entity.TransicionPermitida(entity.EstadoPendiente, entity.EstadoEnProceso))
	assert.True(t, entity.TransicionPermitida(entity.EstadoPendiente, entity.EstadoCancelada))
	assert.True(t, entity.TransicionPermitida(entity.EstadoEnProceso, entity.EstadoCompletada))
	assert.True(t, entity.TransicionPermitida(entity.EstadoEnProceso, entity.EstadoCancelada))

	// Saltos y retrocesos fuera del grafo
	assert.False(t, entity.TransicionPermitida(entity.EstadoPendiente, entity.EstadoCompletada))
	assert.False(t, entity.TransicionPermitida(entity.EstadoEnProceso, entity.EstadoPendiente))

	// Terminales: nada sale de completada ni cancelada
	for _, hacia := range []string{entity.EstadoPendiente, entity.EstadoEnProceso, entity.EstadoCompletada, entity.EstadoCancelada} {
		assert.False(t, entity.TransicionPermitida(entity.EstadoCompletada, hacia))
		assert.False(t, entity.TransicionPermitida(entity.EstadoCancelada, hacia))
	}
}

func TestTotalVenta(t *testing.T) {
	casos := []struct {
		nombre    string
		subtotal  string
		descuento string
		esperado  string
	}{
		{"sin descuento", "100.00", "0", "100.00"},
		{"descuento parcial", "100.00", "25.50", "74.50"},
		{"descuento exacto", "100.00", "100.00", "0"},
		{"descuento mayor que subtotal", "50.00", "80.00", "0"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			total := entity.TotalVenta(
				decimal.RequireFromString(c.subtotal),
				decimal.RequireFromString(c.descuento),
			)
			assert.True(t, total.Equal(decimal.RequireFromString(c.esperado)),
				"esperado %s, obtenido %s", c.esperado, total)
		})
	}
}
