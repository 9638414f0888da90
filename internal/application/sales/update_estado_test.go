package sales_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avendano/puntoventa-api/internal/application/sales"
	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
)

func sembrarVenta(store *memStore, id, estado string) {
	store.ventas[id] = &entity.Venta{
		ID:         id,
		NegocioID:  testNegocioID,
		MetodoPago: entity.MetodoEfectivo,
		Estado:     estado,
	}
}

func armarEstadoUC(store *memStore) (*memNotifier, *sales.UpdateEstadoUseCase) {
	notifier := &memNotifier{}
	return notifier, sales.NewUpdateEstadoUseCase(&memVentaRepo{store}, notifier, zerolog.Nop())
}

func TestActualizarEstado_TransicionesValidas(t *testing.T) {
	casos := []struct{ desde, hacia string }{
		{entity.EstadoPendiente, entity.EstadoEnProceso},
		{entity.EstadoPendiente, entity.EstadoCancelada},
		{entity.EstadoEnProceso, entity.EstadoCompletada},
		{entity.EstadoEnProceso, entity.EstadoCancelada},
	}
	for _, c := range casos {
		t.Run(c.desde+"_a_"+c.hacia, func(t *testing.T) {
			store := newMemStore()
			sembrarVenta(store, "v1", c.desde)
			notifier, uc := armarEstadoUC(store)

			err := uc.ActualizarEstado(context.Background(), testNegocioID, "v1", c.hacia)
			require.NoError(t, err)
			assert.Equal(t, c.hacia, store.ventas["v1"].Estado)
			assert.Len(t, notifier.invalidaciones, 1)
		})
	}
}

// Los estados terminales no admiten ninguna transición.
func TestActualizarEstado_TerminalesRechazan(t *testing.T) {
	for _, terminal := range []string{entity.EstadoCompletada, entity.EstadoCancelada} {
		t.Run(terminal, func(t *testing.T) {
			store := newMemStore()
			sembrarVenta(store, "v1", terminal)
			notifier, uc := armarEstadoUC(store)

			err := uc.ActualizarEstado(context.Background(), testNegocioID, "v1", entity.EstadoPendiente)
			assert.ErrorIs(t, err, domain.ErrTransicionNoPermitida)
			assert.Equal(t, terminal, store.ventas["v1"].Estado, "el estado no debe mutar")
			assert.Empty(t, notifier.invalidaciones)
		})
	}
}

func TestActualizarEstado_EstadoDesconocido(t *testing.T) {
	store := newMemStore()
	sembrarVenta(store, "v1", entity.EstadoPendiente)
	_, uc := armarEstadoUC(store)

	err := uc.ActualizarEstado(context.Background(), testNegocioID, "v1", "archivada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestActualizarEstado_SaltoNoPermitido(t *testing.T) {
	store := newMemStore()
	sembrarVenta(store, "v1", entity.EstadoPendiente)
	_, uc := armarEstadoUC(store)

	// pendiente → completada salta en_proceso
	err := uc.ActualizarEstado(context.Background(), testNegocioID, "v1", entity.EstadoCompletada)
	assert.ErrorIs(t, err, domain.ErrTransicionNoPermitida)
}
