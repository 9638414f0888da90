package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/avendano/puntoventa-api/internal/application/dto"
	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// ClienteUseCase casos de uso CRUD para clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create crea un cliente con su cupo de crédito inicial.
func (uc *ClienteUseCase) Create(negocioID string, in dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if in.Nombre == "" || in.CreditoDisponible.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:                uuid.New().String(),
		NegocioID:         negocioID,
		Nombre:            in.Nombre,
		CreditoDisponible: in.CreditoDisponible,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// GetByID obtiene un cliente del negocio.
func (uc *ClienteUseCase) GetByID(negocioID, id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	if cliente.NegocioID != negocioID {
		return nil, domain.ErrForbidden
	}
	return toClienteResponse(cliente), nil
}

// Update actualiza nombre y cupo de crédito.
func (uc *ClienteUseCase) Update(negocioID, id string, in dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	if cliente.NegocioID != negocioID {
		return nil, domain.ErrForbidden
	}
	if in.Nombre != nil {
		cliente.Nombre = *in.Nombre
	}
	if in.CreditoDisponible != nil {
		if in.CreditoDisponible.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		cliente.CreditoDisponible = *in.CreditoDisponible
	}
	cliente.UpdatedAt = time.Now()
	if err := uc.repo.Update(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// List lista clientes del negocio con paginación.
func (uc *ClienteUseCase) List(negocioID string, page dto.PageRequest) (*dto.ClienteListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByNegocio(negocioID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ClienteListResponse{
		Items: make([]dto.ClienteResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range list {
		resp.Items = append(resp.Items, *toClienteResponse(c))
	}
	return resp, nil
}

// Delete elimina un cliente del negocio.
func (uc *ClienteUseCase) Delete(negocioID, id string) error {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cliente == nil {
		return domain.ErrNotFound
	}
	if cliente.NegocioID != negocioID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:                c.ID,
		NegocioID:         c.NegocioID,
		Nombre:            c.Nombre,
		CreditoDisponible: c.CreditoDisponible,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
