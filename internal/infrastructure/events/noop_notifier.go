package events

import (
	"context"

	"github.com/avendano/puntoventa-api/internal/application/sales"
)

var _ sales.DashboardNotifier = (*NoopNotifier)(nil)

// NoopNotifier descarta las señales. Se usa cuando no hay Redis configurado.
type NoopNotifier struct{}

// NewNoopNotifier construye el notificador nulo.
func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

// InvalidarDashboard no hace nada.
func (*NoopNotifier) InvalidarDashboard(context.Context, string) {}
