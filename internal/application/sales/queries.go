package sales

import (
	"context"

	"github.com/avendano/puntoventa-api/internal/application/dto"
	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// SaleQueryUseCase lado de lectura de ventas: detalle y listado por negocio.
type SaleQueryUseCase struct {
	ventaRepo repository.VentaRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(ventaRepo repository.VentaRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{ventaRepo: ventaRepo}
}

// GetVenta obtiene una venta por ID con sus líneas.
func (uc *SaleQueryUseCase) GetVenta(ctx context.Context, negocioID, id string) (*dto.VentaResponse, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNotFound
	}
	if venta.NegocioID != negocioID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.ventaRepo.GetItemsByVentaID(id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(venta, items), nil
}

// ListVentas lista cabeceras de venta del negocio, paginadas.
func (uc *SaleQueryUseCase) ListVentas(ctx context.Context, negocioID string, page dto.PageRequest) (*dto.VentaListResponse, error) {
	page.DefaultPage()
	ventas, err := uc.ventaRepo.ListByNegocio(negocioID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.VentaListResponse{
		Items: make([]dto.VentaResponse, 0, len(ventas)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, v := range ventas {
		resp.Items = append(resp.Items, *ventaToResponse(v, nil))
	}
	return resp, nil
}
