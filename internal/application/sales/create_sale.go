package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avendano/puntoventa-api/internal/application/dto"
	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// CreateSaleUseCase crea una venta y descuenta el stock en una sola unidad
// de trabajo: reserva de crédito (si aplica), cabecera, líneas y ajuste de
// stock confirman o se descartan juntos.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	notifier     DashboardNotifier
	log          zerolog.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	notifier DashboardNotifier,
	log zerolog.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		notifier:     notifier,
		log:          log,
	}
}

// CrearVenta valida la petición, calcula totales y ejecuta la unidad de
// trabajo. El orden es precondición dura: cada paso solo corre si el
// anterior pasó, y nada persiste antes de entrar a la unidad de trabajo.
func (uc *CreateSaleUseCase) CrearVenta(ctx context.Context, negocioID, userID string, in dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if len(in.Productos) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.MetodoPagoValido(in.MetodoPago) {
		return nil, domain.ErrInvalidInput
	}
	if in.Descuento.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	fechaVenta := now
	if in.FechaVenta != nil {
		if in.FechaVenta.After(now) {
			return nil, domain.ErrInvalidInput
		}
		fechaVenta = *in.FechaVenta
	}

	// Venta a crédito sin cliente es error de validación, no rechazo de crédito.
	if in.MetodoPago == entity.MetodoCredito && (in.ClienteID == nil || *in.ClienteID == "") {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente y pertenencia al negocio
	if in.ClienteID != nil && *in.ClienteID != "" {
		cliente, err := uc.clienteRepo.GetByID(*in.ClienteID)
		if err != nil || cliente == nil {
			return nil, domain.ErrNotFound
		}
		if cliente.NegocioID != negocioID {
			return nil, domain.ErrForbidden
		}
	}

	// Validar productos y precios (fuera de la unidad de trabajo, solo lectura).
	// Precio unitario en cero toma el precio de venta actual del producto.
	productosPorID := make(map[string]*entity.Producto)
	for i := range in.Productos {
		item := &in.Productos[i]
		if item.ID == "" || item.Cantidad <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productoRepo.GetByID(item.ID)
		if err != nil || producto == nil {
			return nil, domain.ErrNotFound
		}
		if producto.NegocioID != negocioID {
			return nil, domain.ErrForbidden
		}
		productosPorID[item.ID] = producto
		if item.PrecioUnitario.IsZero() {
			in.Productos[i].PrecioUnitario = producto.PrecioVenta
		}
	}

	// Totales: subtotal siempre desde las líneas; total con piso en cero.
	var subtotal decimal.Decimal
	for _, item := range in.Productos {
		subtotal = subtotal.Add(item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))))
	}
	total := entity.TotalVenta(subtotal, in.Descuento)

	venta := &entity.Venta{
		ID:         uuid.New().String(),
		NegocioID:  negocioID,
		ClienteID:  in.ClienteID,
		MetodoPago: in.MetodoPago,
		Estado:     entity.EstadoPendiente,
		Subtotal:   subtotal,
		Descuento:  in.Descuento,
		Total:      total,
		FechaVenta: fechaVenta,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var items []*entity.VentaItem

	err := uc.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		clienteRepo repository.ClienteRepository,
		ventaRepo repository.VentaRepository,
	) error {
		// 1) Reserva de crédito: descuento atómico del saldo dentro de la
		// unidad de trabajo; el rollback la libera.
		if venta.MetodoPago == entity.MetodoCredito {
			if err := clienteRepo.ReservarCredito(*venta.ClienteID, total); err != nil {
				return err
			}
		}

		// 2) Cabecera
		if err := ventaRepo.Create(venta); err != nil {
			return err
		}

		// 3) Por cada línea: persistir el ítem y descontar stock. Si un
		// producto no alcanza, se retorna el error y nada sobrevive.
		for _, reqItem := range in.Productos {
			item := &entity.VentaItem{
				ID:             uuid.New().String(),
				VentaID:        venta.ID,
				ProductoID:     reqItem.ID,
				Cantidad:       reqItem.Cantidad,
				PrecioUnitario: reqItem.PrecioUnitario,
				Subtotal:       reqItem.PrecioUnitario.Mul(decimal.NewFromInt(int64(reqItem.Cantidad))),
			}
			if err := ventaRepo.CreateItem(item); err != nil {
				return err
			}
			if _, err := productoRepo.AjustarStock(reqItem.ID, -reqItem.Cantidad); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("venta_id", venta.ID).
		Str("negocio_id", negocioID).
		Str("usuario_id", userID).
		Str("metodo_pago", venta.MetodoPago).
		Str("total", total.StringFixed(2)).
		Msg("venta creada")

	// Señal de invalidación del dashboard: mejor esfuerzo, después del commit.
	uc.notifier.InvalidarDashboard(ctx, negocioID)

	return ventaToResponse(venta, items), nil
}

func ventaToResponse(venta *entity.Venta, items []*entity.VentaItem) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:         venta.ID,
		NegocioID:  venta.NegocioID,
		ClienteID:  venta.ClienteID,
		MetodoPago: venta.MetodoPago,
		Estado:     venta.Estado,
		Subtotal:   venta.Subtotal,
		Descuento:  venta.Descuento,
		Total:      venta.Total,
		FechaVenta: venta.FechaVenta,
		Productos:  make([]dto.VentaItemResponse, 0, len(items)),
		CreatedAt:  venta.CreatedAt,
		UpdatedAt:  venta.UpdatedAt,
	}
	for _, it := range items {
		resp.Productos = append(resp.Productos, dto.VentaItemResponse{
			ID:             it.ID,
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	return resp
}
