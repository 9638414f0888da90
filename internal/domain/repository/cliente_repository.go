package repository

import (
	"github.com/shopspring/decimal"

	"github.com/avendano/puntoventa-api/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para Cliente.
//
// ReservarCredito descuenta monto de credito_disponible de forma atómica
// (lectura y comparación en la misma operación); si el saldo no alcanza
// retorna *domain.CreditoInsuficienteError sin mutar nada. La reserva se
// confirma junto con la unidad de trabajo de la venta; el rollback la
// libera. LiberarCredito devuelve el monto al eliminar una venta a crédito.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	ListByNegocio(negocioID string, limit, offset int) ([]*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	ReservarCredito(clienteID string, monto decimal.Decimal) error
	LiberarCredito(clienteID string, monto decimal.Decimal) error
	Delete(id string) error
}
