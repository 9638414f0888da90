package repository

import "github.com/avendano/puntoventa-api/internal/domain/entity"

// VentaRepository define el puerto de persistencia para Venta y sus líneas.
// La cabecera y las líneas se crean juntas y se eliminan juntas dentro de
// la unidad de trabajo del llamador.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	CreateItem(item *entity.VentaItem) error
	GetByID(id string) (*entity.Venta, error)
	GetItemsByVentaID(ventaID string) ([]*entity.VentaItem, error)
	ListByNegocio(negocioID string, limit, offset int) ([]*entity.Venta, error)
	UpdateEstado(id, estado string) error
	DeleteItems(ventaID string) error
	Delete(id string) error
}
