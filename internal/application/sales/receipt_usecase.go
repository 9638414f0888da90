package sales

import (
	"context"
	"fmt"

	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo en PDF de una venta.
type ReceiptUseCase struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	generator    ReciboPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	generator ReciboPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		ventaRepo:    ventaRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		generator:    generator,
	}
}

// DescargarReciboPDF arma los datos de la venta y genera el PDF.
// Retorna (pdfBytes, filename, nil), domain.ErrNotFound si la venta no
// existe o domain.ErrForbidden si no pertenece al negocio del token.
func (uc *ReceiptUseCase) DescargarReciboPDF(ctx context.Context, negocioID, ventaID string) ([]byte, string, error) {
	venta, err := uc.ventaRepo.GetByID(ventaID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if venta == nil {
		return nil, "", domain.ErrNotFound
	}
	if venta.NegocioID != negocioID {
		return nil, "", domain.ErrForbidden
	}

	items, err := uc.ventaRepo.GetItemsByVentaID(ventaID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener líneas: %w", err)
	}

	lineas := make([]LineaRecibo, 0, len(items))
	for _, item := range items {
		nombre := item.ProductoID
		if p, err := uc.productoRepo.GetByID(item.ProductoID); err == nil && p != nil {
			nombre = p.Nombre
		}
		lineas = append(lineas, LineaRecibo{Item: item, NombreProducto: nombre})
	}

	var cliente *entity.Cliente
	if venta.ClienteID != nil {
		cliente, _ = uc.clienteRepo.GetByID(*venta.ClienteID)
	}

	pdfBytes, err := uc.generator.GenerarReciboPDF(ctx, venta, cliente, lineas)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("recibo-%s.pdf", venta.ID)
	return pdfBytes, filename, nil
}
