package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const colClientes = "clientes"

type clienteDoc struct {
	ID                string               `bson:"_id"`
	NegocioID         string               `bson:"negocio_id"`
	Nombre            string               `bson:"nombre"`
	CreditoDisponible primitive.Decimal128 `bson:"credito_disponible"`
	CreatedAt         time.Time            `bson:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at"`
}

func (d *clienteDoc) toEntity() (*entity.Cliente, error) {
	credito, err := fromDecimal128(d.CreditoDisponible)
	if err != nil {
		return nil, err
	}
	return &entity.Cliente{
		ID:                d.ID,
		NegocioID:         d.NegocioID,
		Nombre:            d.Nombre,
		CreditoDisponible: credito,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

// ClienteRepo implementación de ClienteRepository sobre el almacén de documentos.
type ClienteRepo struct {
	col  *mongo.Collection
	comp *Compensator
}

// NewClienteRepository construye el adaptador. comp nil = fuera de unidad de trabajo.
func NewClienteRepository(db *mongo.Database, comp *Compensator) *ClienteRepo {
	return &ClienteRepo{col: db.Collection(colClientes), comp: comp}
}

// Create inserta el documento del cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	_, err := r.col.InsertOne(context.Background(), &clienteDoc{
		ID:                cliente.ID,
		NegocioID:         cliente.NegocioID,
		Nombre:            cliente.Nombre,
		CreditoDisponible: toDecimal128(cliente.CreditoDisponible),
		CreatedAt:         cliente.CreatedAt,
		UpdatedAt:         cliente.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	if r.comp != nil {
		id := cliente.ID
		r.comp.Registrar("crear cliente "+id, func(ctx context.Context) error {
			_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
			return err
		})
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	var doc clienteDoc
	err := r.col.FindOne(context.Background(), bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return doc.toEntity()
}

// ListByNegocio lista clientes del negocio con paginación.
func (r *ClienteRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Cliente, error) {
	ctx := context.Background()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := r.col.Find(ctx, bson.M{"negocio_id": negocioID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.Cliente
	for cur.Next(ctx) {
		var doc clienteDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode cliente: %w", err)
		}
		c, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, cur.Err()
}

// Update reemplaza nombre y cupo del cliente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	ctx := context.Background()
	var anterior clienteDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": cliente.ID},
		bson.M{"$set": bson.M{
			"nombre":             cliente.Nombre,
			"credito_disponible": toDecimal128(cliente.CreditoDisponible),
			"updated_at":         cliente.UpdatedAt,
		}},
	).Decode(&anterior)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if r.comp != nil {
		prev := anterior
		r.comp.Registrar("actualizar cliente "+cliente.ID, func(ctx context.Context) error {
			_, err := r.col.ReplaceOne(ctx, bson.M{"_id": prev.ID}, &prev)
			return err
		})
	}
	return nil
}

// ReservarCredito descuenta monto del saldo con guarda server-side
// (credito_disponible >= monto en el filtro): lectura y débito en una sola
// operación atómica por documento. La inversa ($inc +monto) queda en el
// compensador.
func (r *ClienteRepo) ReservarCredito(clienteID string, monto decimal.Decimal) error {
	ctx := context.Background()
	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"_id":                clienteID,
			"credito_disponible": bson.M{"$gte": toDecimal128(monto)},
		},
		bson.M{
			"$inc": bson.M{"credito_disponible": toDecimal128(monto.Neg())},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("reservar crédito: %w", err)
	}
	if res.ModifiedCount > 0 {
		if r.comp != nil {
			m := monto
			r.comp.Registrar("reservar crédito "+clienteID, func(ctx context.Context) error {
				_, err := r.col.UpdateByID(ctx, clienteID,
					bson.M{"$inc": bson.M{"credito_disponible": toDecimal128(m)}})
				return err
			})
		}
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
	ctx := context.Background()
	res, err := r.col.UpdateByID(ctx, clienteID, bson.M{
		"$inc": bson.M{"credito_disponible": toDecimal128(monto)},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("liberar crédito: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	if r.comp != nil {
		m := monto
		r.comp.Registrar("liberar crédito "+clienteID, func(ctx context.Context) error {
			_, err := r.col.UpdateByID(ctx, clienteID,
				bson.M{"$inc": bson.M{"credito_disponible": toDecimal128(m.Neg())}})
			return err
		})
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClienteRepo) Delete(id string) error {
	ctx := context.Background()
	var anterior clienteDoc
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&anterior)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return fmt.Errorf("delete cliente: %w", err)
	}
	if r.comp != nil {
		prev := anterior
		r.comp.Registrar("eliminar cliente "+id, func(ctx context.Context) error {
			_, err := r.col.InsertOne(ctx, &prev)
			return err
		})
	}
	return nil
}
