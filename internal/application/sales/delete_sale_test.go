package sales_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avendano/puntoventa-api/internal/application/dto"
	"github.com/avendano/puntoventa-api/internal/application/sales"
	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
)

// armarEntornoEliminar incluye ambos casos de uso para crear y luego eliminar.
func armarEntornoEliminar() (*memStore, *memNotifier, *sales.CreateSaleUseCase, *sales.DeleteSaleUseCase) {
	store := newMemStore()
	notifier := &memNotifier{}
	crear := sales.NewCreateSaleUseCase(
		&memTxRunner{store},
		&memProductoRepo{store},
		&memClienteRepo{store},
		notifier,
		zerolog.Nop(),
	)
	eliminar := sales.NewDeleteSaleUseCase(
		&memTxRunner{store},
		&memVentaRepo{store},
		notifier,
		zerolog.Nop(),
	)
	return store, notifier, crear, eliminar
}

// Eliminar una venta es la inversa exacta de crearla: el stock vuelve a su
// valor original y la cabecera y las líneas desaparecen.
func TestEliminarVenta_RestauraStock(t *testing.T) {
	store, notifier, crear, eliminar := armarEntornoEliminar()
	sembrarProducto(store, "p1", "10.00", 8)
	sembrarProducto(store, "p2", "5.00", 4)

	out, err := crear.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 3, PrecioUnitario: decimal.RequireFromString("10.00")},
			{ID: "p2", Cantidad: 4, PrecioUnitario: decimal.RequireFromString("5.00")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 5, store.productos["p1"].Stock)
	require.Equal(t, 0, store.productos["p2"].Stock)

	err = eliminar.EliminarVenta(context.Background(), testNegocioID, out.ID)
	require.NoError(t, err)

	assert.Equal(t, 8, store.productos["p1"].Stock, "stock restaurado a su valor original")
	assert.Equal(t, 4, store.productos["p2"].Stock)
	assert.NotContains(t, store.ventas, out.ID, "la cabecera debe borrarse")
	assert.Empty(t, store.items[out.ID], "las líneas deben borrarse")
	assert.Len(t, notifier.invalidaciones, 2, "una invalidación por la creación y otra por la eliminación")
}

// Eliminar una venta a crédito devuelve el monto reservado al cliente.
func TestEliminarVenta_LiberaCredito(t *testing.T) {
	store, _, crear, eliminar := armarEntornoEliminar()
	sembrarProducto(store, "p1", "60.00", 10)
	sembrarCliente(store, "c1", "100.00")
	clienteID := "c1"

	out, err := crear.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		ClienteID:  &clienteID,
		MetodoPago: entity.MetodoCredito,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("60.00")},
		},
	})
	require.NoError(t, err)
	require.True(t, store.clientes["c1"].CreditoDisponible.Equal(decimal.RequireFromString("40.00")))

	err = eliminar.EliminarVenta(context.Background(), testNegocioID, out.ID)
	require.NoError(t, err)

	assert.True(t, store.clientes["c1"].CreditoDisponible.Equal(decimal.RequireFromString("100.00")),
		"el crédito reservado debe liberarse completo")
	assert.Equal(t, 10, store.productos["p1"].Stock)
}

func TestEliminarVenta_NoExiste(t *testing.T) {
	_, notifier, _, eliminar := armarEntornoEliminar()

	err := eliminar.EliminarVenta(context.Background(), testNegocioID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, notifier.invalidaciones)
}

// Una venta de otro negocio no se puede eliminar desde este tenant.
func TestEliminarVenta_OtroNegocio(t *testing.T) {
	store, _, crear, eliminar := armarEntornoEliminar()
	sembrarProducto(store, "p1", "10.00", 5)

	out, err := crear.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)

	err = eliminar.EliminarVenta(context.Background(), otroNegocioID, out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, store.ventas, out.ID, "la venta debe seguir existiendo")
}
