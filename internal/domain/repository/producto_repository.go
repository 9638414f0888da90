package repository

import "github.com/avendano/puntoventa-api/internal/domain/entity"

// ProductoRepository define el puerto de persistencia para Producto (DIP).
//
// AjustarStock es el libro mayor de stock: suma delta (negativo al vender,
// positivo al reponer o revertir) de forma atómica y devuelve el stock
// resultante. Un delta negativo que dejaría el stock por debajo de cero
// retorna domain.ErrStockInsuficiente sin mutar nada; un producto
// inexistente retorna domain.ErrNotFound. La escritura participa en la
// unidad de trabajo del llamador, nunca confirma por su cuenta.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	ListByNegocio(negocioID string, limit, offset int) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
	AjustarStock(productoID string, delta int) (int, error)
	Delete(id string) error
}
