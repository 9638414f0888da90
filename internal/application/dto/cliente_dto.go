package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearClienteRequest entrada para crear un cliente.
type CrearClienteRequest struct {
	Nombre            string          `json:"nombre" validate:"required,min=1,max=200"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible"`
}

// ActualizarClienteRequest entrada para actualizar un cliente.
type ActualizarClienteRequest struct {
	Nombre            *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	CreditoDisponible *decimal.Decimal `json:"credito_disponible"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID                string          `json:"id"`
	NegocioID         string          `json:"negocio_id"`
	Nombre            string          `json:"nombre"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ClienteListResponse lista paginada de clientes.
type ClienteListResponse struct {
	Items []ClienteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
