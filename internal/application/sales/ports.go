package sales

import (
	"context"

	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando
// repositorios atados a esa unidad. El motor de ventas exige todo-o-nada:
// si fn retorna error, ninguna escritura hecha a través de los repos debe
// sobrevivir.
//
// La implementación PostgreSQL usa una transacción real (BEGIN/COMMIT/
// ROLLBACK). La implementación de documentos es de mejor esfuerzo: simula
// la atomicidad con un diario de intenciones y acciones compensatorias,
// y puede dejar estado parcial si una compensación también falla.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		clienteRepo repository.ClienteRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}

// DashboardNotifier avisa que los agregados del dashboard de un negocio
// quedaron desactualizados. Mejor esfuerzo: sin garantía de entrega, el
// error se registra y se descarta.
type DashboardNotifier interface {
	InvalidarDashboard(ctx context.Context, negocioID string)
}

// ReciboPDFGenerator genera la representación en PDF de una venta.
type ReciboPDFGenerator interface {
	GenerarReciboPDF(ctx context.Context, venta *entity.Venta, cliente *entity.Cliente, lineas []LineaRecibo) ([]byte, error)
}

// LineaRecibo línea de venta enriquecida con el nombre del producto para el recibo.
type LineaRecibo struct {
	Item           *entity.VentaItem
	NombreProducto string
}
