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

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (id, negocio_id, cliente_id, metodo_pago, estado, subtotal, descuento, total, fecha_venta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.NegocioID, venta.ClienteID, venta.MetodoPago, venta.Estado,
		venta.Subtotal, venta.Descuento, venta.Total, venta.FechaVenta,
		venta.CreatedAt, venta.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la venta.
func (r *VentaRepo) CreateItem(item *entity.VentaItem) error {
	query := `
		INSERT INTO venta_items (id, venta_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.VentaID, item.ProductoID, item.Cantidad, item.PrecioUnitario, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert venta item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta por ID.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `
		SELECT id, negocio_id, cliente_id, metodo_pago, estado, subtotal, descuento, total, fecha_venta, created_at, updated_at
		FROM ventas WHERE id = $1`
	var v entity.Venta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.NegocioID, &v.ClienteID, &v.MetodoPago, &v.Estado,
		&v.Subtotal, &v.Descuento, &v.Total, &v.FechaVenta, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &v, nil
}

// GetItemsByVentaID obtiene todas las líneas de una venta.
func (r *VentaRepo) GetItemsByVentaID(ventaID string) ([]*entity.VentaItem, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, subtotal
		FROM venta_items WHERE venta_id = $1`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list venta items: %w", err)
	}
	defer rows.Close()
	var items []*entity.VentaItem
	for rows.Next() {
		var it entity.VentaItem
		if err := rows.Scan(&it.ID, &it.VentaID, &it.ProductoID, &it.Cantidad,
			&it.PrecioUnitario, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan venta item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByNegocio lista cabeceras de venta por negocio, las más recientes primero.
func (r *VentaRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Venta, error) {
	query := `
		SELECT id, negocio_id, cliente_id, metodo_pago, estado, subtotal, descuento, total, fecha_venta, created_at, updated_at
		FROM ventas WHERE negocio_id = $1 ORDER BY fecha_venta DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, negocioID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(&v.ID, &v.NegocioID, &v.ClienteID, &v.MetodoPago, &v.Estado,
			&v.Subtotal, &v.Descuento, &v.Total, &v.FechaVenta, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// UpdateEstado persiste el nuevo estado de la venta.
func (r *VentaRepo) UpdateEstado(id, estado string) error {
	query := `UPDATE ventas SET estado = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, estado)
	if err != nil {
		return fmt.Errorf("update estado venta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems elimina todas las líneas de una venta.
func (r *VentaRepo) DeleteItems(ventaID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM venta_items WHERE venta_id = $1`, ventaID)
	if err != nil {
		return fmt.Errorf("delete venta items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una venta.
func (r *VentaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	return nil
}
