package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, negocio_id, nombre, credito_disponible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.NegocioID, cliente.Nombre, cliente.CreditoDisponible,
		cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	query := `
		SELECT id, negocio_id, nombre, credito_disponible, created_at, updated_at
		FROM clientes WHERE id = $1`
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.NegocioID, &c.Nombre, &c.CreditoDisponible, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// ListByNegocio lista clientes por negocio con paginación.
func (r *ClienteRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Cliente, error) {
	query := `
		SELECT id, negocio_id, nombre, credito_disponible, created_at, updated_at
		FROM clientes WHERE negocio_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, negocioID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.NegocioID, &c.Nombre, &c.CreditoDisponible,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente existente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombre = $2, credito_disponible = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombre, cliente.CreditoDisponible, cliente.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// ReservarCredito descuenta monto del saldo en un solo UPDATE condicional:
// lectura y comparación en la misma sentencia, sin ventana entre check y
// débito. Cero filas afectadas: saldo insuficiente o cliente inexistente.
func (r *ClienteRepo) ReservarCredito(clienteID string, monto decimal.Decimal) error {
	query := `
		UPDATE clientes SET credito_disponible = credito_disponible - $2, updated_at = now()
		WHERE id = $1 AND credito_disponible >= $2`
	cmd, err := r.q.Exec(context.Background(), query, clienteID, monto)
	if err != nil {
		return fmt.Errorf("reservar crédito: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	cliente, err := r.GetByID(clienteID)
	if err != nil {
		return err
	}
	if cliente == nil {
		return domain.ErrNotFound
	}
	return &domain.CreditoInsuficienteError{
		ClienteID:  clienteID,
		Disponible: cliente.CreditoDisponible,
		Requerido:  monto,
	}
}

// LiberarCredito devuelve monto al saldo del cliente.
func (r *ClienteRepo) LiberarCredito(clienteID string, monto decimal.Decimal) error {
	query := `
		UPDATE clientes SET credito_disponible = credito_disponible + $2, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, clienteID, monto)
	if err != nil {
		return fmt.Errorf("liberar crédito: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClienteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}
