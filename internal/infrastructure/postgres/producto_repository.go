package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (id, negocio_id, nombre, precio_venta, precio_compra, stock, stock_minimo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.NegocioID, producto.Nombre, producto.PrecioVenta,
		producto.PrecioCompra, producto.Stock, producto.StockMinimo,
		producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `
		SELECT id, negocio_id, nombre, precio_venta, precio_compra, stock, stock_minimo, created_at, updated_at
		FROM productos WHERE id = $1`
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.NegocioID, &p.Nombre, &p.PrecioVenta, &p.PrecioCompra,
		&p.Stock, &p.StockMinimo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// ListByNegocio lista productos por negocio con paginación.
func (r *ProductoRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Producto, error) {
	query := `
		SELECT id, negocio_id, nombre, precio_venta, precio_compra, stock, stock_minimo, created_at, updated_at
		FROM productos WHERE negocio_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, negocioID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.NegocioID, &p.Nombre, &p.PrecioVenta, &p.PrecioCompra,
			&p.Stock, &p.StockMinimo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza nombre, precios y umbral. No toca Stock (se maneja vía AjustarStock).
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, precio_venta = $3, precio_compra = $4, stock_minimo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Nombre, producto.PrecioVenta, producto.PrecioCompra,
		producto.StockMinimo, producto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// AjustarStock suma delta al stock en un solo UPDATE condicional: la guarda
// stock + delta >= 0 cierra la carrera de sobreventa a nivel de fila, sin
// SELECT FOR UPDATE. Cero filas afectadas significa stock insuficiente o
// producto inexistente; se distingue con una lectura posterior.
func (r *ProductoRepo) AjustarStock(productoID string, delta int) (int, error) {
	query := `
		UPDATE productos SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock`
	var nuevoStock int
	err := r.q.QueryRow(context.Background(), query, productoID, delta).Scan(&nuevoStock)
	if err == nil {
		return nuevoStock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("ajustar stock: %w", err)
	}

	producto, err := r.GetByID(productoID)
	if err != nil {
		return 0, err
	}
	if producto == nil {
		return 0, domain.ErrNotFound
	}
	return 0, &domain.StockInsuficienteError{
		ProductoID: productoID,
		Nombre:     producto.Nombre,
		Stock:      producto.Stock,
		Solicitado: -delta,
	}
}

// Delete elimina un producto por ID.
func (r *ProductoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}
