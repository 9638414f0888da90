package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

const (
	colVentas     = "ventas"
	colVentaItems = "venta_items"
)

type ventaDoc struct {
	ID         string               `bson:"_id"`
	NegocioID  string               `bson:"negocio_id"`
	ClienteID  *string              `bson:"cliente_id,omitempty"`
	MetodoPago string               `bson:"metodo_pago"`
	Estado     string               `bson:"estado"`
	Subtotal   primitive.Decimal128 `bson:"subtotal"`
	Descuento  primitive.Decimal128 `bson:"descuento"`
	Total      primitive.Decimal128 `bson:"total"`
	FechaVenta time.Time            `bson:"fecha_venta"`
	CreatedAt  time.Time            `bson:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at"`
}

type ventaItemDoc struct {
	ID             string               `bson:"_id"`
	VentaID        string               `bson:"venta_id"`
	ProductoID     string               `bson:"producto_id"`
	Cantidad       int                  `bson:"cantidad"`
	PrecioUnitario primitive.Decimal128 `bson:"precio_unitario"`
	Subtotal       primitive.Decimal128 `bson:"subtotal"`
}

func (d *ventaDoc) toEntity() (*entity.Venta, error) {
	subtotal, err := fromDecimal128(d.Subtotal)
	if err != nil {
		return nil, err
	}
	descuento, err := fromDecimal128(d.Descuento)
	if err != nil {
		return nil, err
	}
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return nil, err
	}
	return &entity.Venta{
		ID:         d.ID,
		NegocioID:  d.NegocioID,
		ClienteID:  d.ClienteID,
		MetodoPago: d.MetodoPago,
		Estado:     d.Estado,
		Subtotal:   subtotal,
		Descuento:  descuento,
		Total:      total,
		FechaVenta: d.FechaVenta,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

func (d *ventaItemDoc) toEntity() (*entity.VentaItem, error) {
	precio, err := fromDecimal128(d.PrecioUnitario)
	if err != nil {
		return nil, err
	}
	subtotal, err := fromDecimal128(d.Subtotal)
	if err != nil {
		return nil, err
	}
	return &entity.VentaItem{
		ID:             d.ID,
		VentaID:        d.VentaID,
		ProductoID:     d.ProductoID,
		Cantidad:       d.Cantidad,
		PrecioUnitario: precio,
		Subtotal:       subtotal,
	}, nil
}

// VentaRepo implementación de VentaRepository sobre el almacén de documentos.
// Cabecera y líneas viven en colecciones separadas; las escrituras entre
// ambas NO son atómicas entre sí (de ahí el compensador).
type VentaRepo struct {
	ventas *mongo.Collection
	items  *mongo.Collection
	comp   *Compensator
}

// NewVentaRepository construye el adaptador. comp nil = fuera de unidad de trabajo.
func NewVentaRepository(db *mongo.Database, comp *Compensator) *VentaRepo {
	return &VentaRepo{
		ventas: db.Collection(colVentas),
		items:  db.Collection(colVentaItems),
		comp:   comp,
	}
}

// Create inserta la cabecera de la venta.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	_, err := r.ventas.InsertOne(context.Background(), &ventaDoc{
		ID:         venta.ID,
		NegocioID:  venta.NegocioID,
		ClienteID:  venta.ClienteID,
		MetodoPago: venta.MetodoPago,
		Estado:     venta.Estado,
		Subtotal:   toDecimal128(venta.Subtotal),
		Descuento:  toDecimal128(venta.Descuento),
		Total:      toDecimal128(venta.Total),
		FechaVenta: venta.FechaVenta,
		CreatedAt:  venta.CreatedAt,
		UpdatedAt:  venta.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	if r.comp != nil {
		id := venta.ID
		r.comp.Registrar("crear venta "+id, func(ctx context.Context) error {
			_, err := r.ventas.DeleteOne(ctx, bson.M{"_id": id})
			return err
		})
	}
	return nil
}

// CreateItem inserta una línea de la venta.
func (r *VentaRepo) CreateItem(item *entity.VentaItem) error {
	_, err := r.items.InsertOne(context.Background(), &ventaItemDoc{
		ID:             item.ID,
		VentaID:        item.VentaID,
		ProductoID:     item.ProductoID,
		Cantidad:       item.Cantidad,
		PrecioUnitario: toDecimal128(item.PrecioUnitario),
		Subtotal:       toDecimal128(item.Subtotal),
	})
	if err != nil {
		return fmt.Errorf("insert venta item: %w", err)
	}
	if r.comp != nil {
		id := item.ID
		r.comp.Registrar("crear venta item "+id, func(ctx context.Context) error {
			_, err := r.items.DeleteOne(ctx, bson.M{"_id": id})
			return err
		})
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	var doc ventaDoc
	err := r.ventas.FindOne(context.Background(), bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return doc.toEntity()
}

// GetItemsByVentaID obtiene todas las líneas de una venta.
func (r *VentaRepo) GetItemsByVentaID(ventaID string) ([]*entity.VentaItem, error) {
	ctx := context.Background()
	cur, err := r.items.Find(ctx, bson.M{"venta_id": ventaID})
	if err != nil {
		return nil, fmt.Errorf("list venta items: %w", err)
	}
	defer cur.Close(ctx)
	var items []*entity.VentaItem
	for cur.Next(ctx) {
		var doc ventaItemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode venta item: %w", err)
		}
		it, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, cur.Err()
}

// ListByNegocio lista cabeceras del negocio, las más recientes primero.
func (r *VentaRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Venta, error) {
	ctx := context.Background()
	opts := options.Find().
		SetSort(bson.D{{Key: "fecha_venta", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := r.ventas.Find(ctx, bson.M{"negocio_id": negocioID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.Venta
	for cur.Next(ctx) {
		var doc ventaDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode venta: %w", err)
		}
		v, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, cur.Err()
}

// UpdateEstado persiste el nuevo estado y registra la vuelta al anterior.
func (r *VentaRepo) UpdateEstado(id, estado string) error {
	ctx := context.Background()
	var anterior ventaDoc
	err := r.ventas.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"estado": estado, "updated_at": time.Now()}},
	).Decode(&anterior)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update estado venta: %w", err)
	}
	if r.comp != nil {
		prevEstado := anterior.Estado
		r.comp.Registrar("actualizar estado venta "+id, func(ctx context.Context) error {
			_, err := r.ventas.UpdateByID(ctx, id, bson.M{"$set": bson.M{"estado": prevEstado}})
			return err
		})
	}
	return nil
}

// DeleteItems elimina todas las líneas de una venta, guardando copia para
// poder reinsertarlas si la unidad de trabajo se revierte.
func (r *VentaRepo) DeleteItems(ventaID string) error {
	ctx := context.Background()

	var copia []any
	if r.comp != nil {
		cur, err := r.items.Find(ctx, bson.M{"venta_id": ventaID})
		if err != nil {
			return fmt.Errorf("leer venta items a eliminar: %w", err)
		}
		for cur.Next(ctx) {
			var doc ventaItemDoc
			if err := cur.Decode(&doc); err != nil {
				cur.Close(ctx)
				return fmt.Errorf("decode venta item: %w", err)
			}
			copia = append(copia, doc)
		}
		cur.Close(ctx)
	}

	if _, err := r.items.DeleteMany(ctx, bson.M{"venta_id": ventaID}); err != nil {
		return fmt.Errorf("delete venta items: %w", err)
	}
	if r.comp != nil && len(copia) > 0 {
		docs := copia
		r.comp.Registrar("eliminar items de venta "+ventaID, func(ctx context.Context) error {
			_, err := r.items.InsertMany(ctx, docs)
			return err
		})
	}
	return nil
}

// Delete elimina la cabecera, guardando copia para la compensación.
func (r *VentaRepo) Delete(id string) error {
	ctx := context.Background()
	var anterior ventaDoc
	err := r.ventas.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&anterior)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return fmt.Errorf("delete venta: %w", err)
	}
	if r.comp != nil {
		prev := anterior
		r.comp.Registrar("eliminar venta "+id, func(ctx context.Context) error {
			_, err := r.ventas.InsertOne(ctx, &prev)
			return err
		})
	}
	return nil
}
