package sales

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// UpdateEstadoUseCase mueve una venta por su máquina de estados:
// pendiente → {en_proceso, cancelada}, en_proceso → {completada, cancelada};
// completada y cancelada son terminales.
type UpdateEstadoUseCase struct {
	ventaRepo repository.VentaRepository
	notifier  DashboardNotifier
	log       zerolog.Logger
}

// NewUpdateEstadoUseCase construye el caso de uso.
func NewUpdateEstadoUseCase(ventaRepo repository.VentaRepository, notifier DashboardNotifier, log zerolog.Logger) *UpdateEstadoUseCase {
	return &UpdateEstadoUseCase{ventaRepo: ventaRepo, notifier: notifier, log: log}
}

// ActualizarEstado valida la transición y persiste el nuevo estado.
// Un estado desconocido es error de validación; una transición fuera del
// grafo retorna domain.ErrTransicionNoPermitida.
func (uc *UpdateEstadoUseCase) ActualizarEstado(ctx context.Context, negocioID, ventaID, estado string) error {
	if !entity.EstadoValido(estado) {
		return domain.ErrInvalidInput
	}
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
	if !entity.TransicionPermitida(venta.Estado, estado) {
		return domain.ErrTransicionNoPermitida
	}
	if err := uc.ventaRepo.UpdateEstado(ventaID, estado); err != nil {
		return err
	}

	uc.log.Info().
		Str("venta_id", ventaID).
		Str("desde", venta.Estado).
		Str("hacia", estado).
		Msg("estado de venta actualizado")

	uc.notifier.InvalidarDashboard(ctx, negocioID)
	return nil
}
