package sales

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// DeleteSaleUseCase elimina una venta restaurando el stock de cada línea
// y liberando el crédito reservado (ventas a crédito), todo en una sola
// unidad de trabajo.
type DeleteSaleUseCase struct {
	txRunner  TxRunner
	ventaRepo repository.VentaRepository
	notifier  DashboardNotifier
	log       zerolog.Logger
}

// NewDeleteSaleUseCase construye el caso de uso.
func NewDeleteSaleUseCase(
	txRunner TxRunner,
	ventaRepo repository.VentaRepository,
	notifier DashboardNotifier,
	log zerolog.Logger,
) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{
		txRunner:  txRunner,
		ventaRepo: ventaRepo,
		notifier:  notifier,
		log:       log,
	}
}

// EliminarVenta restaura el stock de cada producto (+cantidad), libera el
// crédito si la venta fue a crédito, borra las líneas y borra la cabecera.
// Una venta inexistente retorna domain.ErrNotFound sin efectos secundarios.
func (uc *DeleteSaleUseCase) EliminarVenta(ctx context.Context, negocioID, ventaID string) error {
	venta, err := uc.ventaRepo.GetByID(ventaID)
	if err != nil {
		return err
	}
	if venta == nil {
		return domain.ErrNotFound
	}
	if venta.NegocioID != negocioID {
		return domain.ErrForbidden
	}

	err = uc.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		clienteRepo repository.ClienteRepository,
		ventaRepo repository.VentaRepository,
	) error {
		items, err := ventaRepo.GetItemsByVentaID(ventaID)
		if err != nil {
			return err
		}
		// Restauración completa: stock_después == stock_antes + cantidad
		// por cada línea de la venta eliminada.
		for _, item := range items {
			if _, err := productoRepo.AjustarStock(item.ProductoID, item.Cantidad); err != nil {
				return err
			}
		}
		if venta.MetodoPago == entity.MetodoCredito && venta.ClienteID != nil {
			if err := clienteRepo.LiberarCredito(*venta.ClienteID, venta.Total); err != nil {
				return err
			}
		}
		if err := ventaRepo.DeleteItems(ventaID); err != nil {
			return err
		}
		return ventaRepo.Delete(ventaID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("venta_id", ventaID).
		Str("negocio_id", negocioID).
		Msg("venta eliminada, stock restaurado")

	uc.notifier.InvalidarDashboard(ctx, negocioID)
	return nil
}
