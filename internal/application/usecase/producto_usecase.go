package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/avendano/puntoventa-api/internal/application/dto"
	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para productos. El stock se muta por
// ventas (y sus eliminaciones), no por el update genérico.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Create crea un nuevo producto con su stock inicial.
func (uc *ProductoUseCase) Create(negocioID string, in dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if in.Nombre == "" || in.Stock < 0 || in.StockMinimo < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PrecioVenta.IsNegative() || in.PrecioCompra.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:           uuid.New().String(),
		NegocioID:    negocioID,
		Nombre:       in.Nombre,
		PrecioVenta:  in.PrecioVenta,
		PrecioCompra: in.PrecioCompra,
		Stock:        in.Stock,
		StockMinimo:  in.StockMinimo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto del negocio.
func (uc *ProductoUseCase) GetByID(negocioID, id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if producto.NegocioID != negocioID {
		return nil, domain.ErrForbidden
	}
	return toProductoResponse(producto), nil
}

// Update actualiza nombre, precios y umbral de stock. No toca Stock.
func (uc *ProductoUseCase) Update(negocioID, id string, in dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if producto.NegocioID != negocioID {
		return nil, domain.ErrForbidden
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.PrecioVenta != nil {
		if in.PrecioVenta.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.PrecioVenta = *in.PrecioVenta
	}
	if in.PrecioCompra != nil {
		if in.PrecioCompra.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.PrecioCompra = *in.PrecioCompra
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.ErrInvalidInput
		}
		producto.StockMinimo = *in.StockMinimo
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// List lista productos del negocio con paginación.
func (uc *ProductoUseCase) List(negocioID string, page dto.PageRequest) (*dto.ProductoListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByNegocio(negocioID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductoListResponse{
		Items: make([]dto.ProductoResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list {
		resp.Items = append(resp.Items, *toProductoResponse(p))
	}
	return resp, nil
}

// Delete elimina un producto del negocio.
func (uc *ProductoUseCase) Delete(negocioID, id string) error {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	if producto.NegocioID != negocioID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID,
		NegocioID:    p.NegocioID,
		Nombre:       p.Nombre,
		PrecioVenta:  p.PrecioVenta,
		PrecioCompra: p.PrecioCompra,
		Stock:        p.Stock,
		StockMinimo:  p.StockMinimo,
		BajoStock:    p.BajoStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
