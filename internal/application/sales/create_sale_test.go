package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avendano/puntoventa-api/internal/application/dto"
	"github.com/avendano/puntoventa-api/internal/application/sales"
	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
)

const (
	testNegocioID = "00000000-0000-0000-0000-0000000000aa"
	testUserID    = "00000000-0000-0000-0000-0000000000bb"
	otroNegocioID = "00000000-0000-0000-0000-0000000000cc"
)

// armarEntorno construye el almacén, los dobles y el caso de uso de creación.
func armarEntorno() (*memStore, *memNotifier, *sales.CreateSaleUseCase) {
	store := newMemStore()
	notifier := &memNotifier{}
	uc := sales.NewCreateSaleUseCase(
		&memTxRunner{store},
		&memProductoRepo{store},
		&memClienteRepo{store},
		notifier,
		zerolog.Nop(),
	)
	return store, notifier, uc
}

func sembrarProducto(store *memStore, id string, precio string, stock int) {
	store.productos[id] = &entity.Producto{
		ID:          id,
		NegocioID:   testNegocioID,
		Nombre:      "producto " + id,
		PrecioVenta: decimal.RequireFromString(precio),
		Stock:       stock,
	}
}

func sembrarCliente(store *memStore, id string, credito string) {
	store.clientes[id] = &entity.Cliente{
		ID:                id,
		NegocioID:         testNegocioID,
		Nombre:            "cliente " + id,
		CreditoDisponible: decimal.RequireFromString(credito),
	}
}

// Venta simple: el stock baja exactamente la cantidad vendida y la venta
// queda persistida en estado pendiente con sus líneas.
func TestCrearVenta_DescuentaStockYPersiste(t *testing.T) {
	store, notifier, uc := armarEntorno()
	sembrarProducto(store, "p1", "10.00", 5)

	out, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 5, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 0, store.productos["p1"].Stock, "el stock debe quedar en cero tras vender todo")
	assert.Equal(t, entity.EstadoPendiente, out.Estado)
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, out.Total.Equal(decimal.RequireFromString("50.00")))
	require.Len(t, out.Productos, 1)
	assert.Equal(t, 5, out.Productos[0].Cantidad)

	require.Contains(t, store.ventas, out.ID, "la cabecera debe quedar persistida")
	assert.Len(t, store.items[out.ID], 1, "la línea debe quedar persistida")
	assert.Equal(t, []string{testNegocioID}, notifier.invalidaciones, "una invalidación de dashboard tras el commit")
}

// Stock 5, pedido 6: rechazo con el detalle del faltante y cero efectos.
func TestCrearVenta_StockInsuficiente(t *testing.T) {
	store, notifier, uc := armarEntorno()
	sembrarProducto(store, "p1", "10.00", 5)

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 6, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Stock)
	assert.Equal(t, 6, stockErr.Solicitado)

	assert.Equal(t, 5, store.productos["p1"].Stock, "el stock no debe mutar en un rechazo")
	assert.Empty(t, store.ventas, "no debe persistirse ninguna venta")
	assert.Empty(t, notifier.invalidaciones, "sin commit no hay invalidación")
}

// Dos líneas: la primera alcanza, la segunda no. El rollback debe dejar
// también el primer producto con su stock original.
func TestCrearVenta_FalloParcialRevierteTodo(t *testing.T) {
	store, notifier, uc := armarEntorno()
	sembrarProducto(store, "p1", "10.00", 10)
	sembrarProducto(store, "p2", "20.00", 1)

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 3, PrecioUnitario: decimal.RequireFromString("10.00")},
			{ID: "p2", Cantidad: 2, PrecioUnitario: decimal.RequireFromString("20.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)

	assert.Equal(t, 10, store.productos["p1"].Stock, "la línea ya aplicada debe revertirse")
	assert.Equal(t, 1, store.productos["p2"].Stock)
	assert.Empty(t, store.ventas)
	assert.Empty(t, store.items)
	assert.Empty(t, notifier.invalidaciones)
}

// Crédito exacto: disponible 100, venta 100 → procede y el saldo queda en cero.
func TestCrearVenta_CreditoExacto(t *testing.T) {
	store, _, uc := armarEntorno()
	sembrarProducto(store, "p1", "100.00", 10)
	sembrarCliente(store, "c1", "100.00")
	clienteID := "c1"

	out, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		ClienteID:  &clienteID,
		MetodoPago: entity.MetodoCredito,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("100.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, store.clientes["c1"].CreditoDisponible.IsZero(), "el crédito debe quedar reservado por completo")
}

// Crédito 100, venta 150: rechazo con el faltante y saldo intacto.
func TestCrearVenta_CreditoInsuficiente(t *testing.T) {
	store, notifier, uc := armarEntorno()
	sembrarProducto(store, "p1", "150.00", 10)
	sembrarCliente(store, "c1", "100.00")
	clienteID := "c1"

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		ClienteID:  &clienteID,
		MetodoPago: entity.MetodoCredito,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("150.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrCreditoInsuficiente)

	var creditoErr *domain.CreditoInsuficienteError
	require.ErrorAs(t, err, &creditoErr)
	assert.True(t, creditoErr.Disponible.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, creditoErr.Requerido.Equal(decimal.RequireFromString("150.00")))

	assert.True(t, store.clientes["c1"].CreditoDisponible.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, 10, store.productos["p1"].Stock)
	assert.Empty(t, store.ventas)
	assert.Empty(t, notifier.invalidaciones)
}

// Método crédito sin cliente es error de validación, no rechazo de crédito.
func TestCrearVenta_CreditoSinCliente(t *testing.T) {
	store, _, uc := armarEntorno()
	sembrarProducto(store, "p1", "10.00", 5)

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoCredito,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrCreditoInsuficiente)
}

func TestCrearVenta_SinProductos(t *testing.T) {
	_, _, uc := armarEntorno()

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearVenta_MetodoPagoInvalido(t *testing.T) {
	store, _, uc := armarEntorno()
	sembrarProducto(store, "p1", "10.00", 5)

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: "cheque",
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Descuento mayor que el subtotal: el total queda en cero, nunca negativo.
func TestCrearVenta_DescuentoMayorQueSubtotal(t *testing.T) {
	store, _, uc := armarEntorno()
	sembrarProducto(store, "p1", "10.00", 5)

	out, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Descuento:  decimal.RequireFromString("100.00"),
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, out.Total.IsZero(), "el total tiene piso en cero")
}

func TestCrearVenta_FechaFutura(t *testing.T) {
	store, _, uc := armarEntorno()
	sembrarProducto(store, "p1", "10.00", 5)
	futura := time.Now().Add(48 * time.Hour)

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		FechaVenta: &futura,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Precio unitario en cero toma el precio de venta vigente del producto.
func TestCrearVenta_PrecioCeroTomaPrecioDelProducto(t *testing.T) {
	store, _, uc := armarEntorno()
	sembrarProducto(store, "p1", "12.50", 5)

	out, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Productos[0].PrecioUnitario.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, out.Total.Equal(decimal.RequireFromString("25.00")))
}

// Producto de otro negocio: el tenant del token manda.
func TestCrearVenta_ProductoDeOtroNegocio(t *testing.T) {
	store, _, uc := armarEntorno()
	sembrarProducto(store, "p1", "10.00", 5)
	store.productos["p1"].NegocioID = otroNegocioID

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Productos: []dto.VentaItemRequest{
			{ID: "p1", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCrearVenta_ProductoInexistente(t *testing.T) {
	_, _, uc := armarEntorno()

	_, err := uc.CrearVenta(context.Background(), testNegocioID, testUserID, dto.CrearVentaRequest{
		MetodoPago: entity.MetodoEfectivo,
		Productos: []dto.VentaItemRequest{
			{ID: "no-existe", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("10.00")},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
