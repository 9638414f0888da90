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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const colProductos = "productos"

type productoDoc struct {
	ID           string               `bson:"_id"`
	NegocioID    string               `bson:"negocio_id"`
	Nombre       string               `bson:"nombre"`
	PrecioVenta  primitive.Decimal128 `bson:"precio_venta"`
	PrecioCompra primitive.Decimal128 `bson:"precio_compra"`
	Stock        int                  `bson:"stock"`
	StockMinimo  int                  `bson:"stock_minimo"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func (d *productoDoc) toEntity() (*entity.Producto, error) {
	pv, err := fromDecimal128(d.PrecioVenta)
	if err != nil {
		return nil, err
	}
	pc, err := fromDecimal128(d.PrecioCompra)
	if err != nil {
		return nil, err
	}
	return &entity.Producto{
		ID:           d.ID,
		NegocioID:    d.NegocioID,
		Nombre:       d.Nombre,
		PrecioVenta:  pv,
		PrecioCompra: pc,
		Stock:        d.Stock,
		StockMinimo:  d.StockMinimo,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func toProductoDoc(p *entity.Producto) *productoDoc {
	return &productoDoc{
		ID:           p.ID,
		NegocioID:    p.NegocioID,
		Nombre:       p.Nombre,
		PrecioVenta:  toDecimal128(p.PrecioVenta),
		PrecioCompra: toDecimal128(p.PrecioCompra),
		Stock:        p.Stock,
		StockMinimo:  p.StockMinimo,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductoRepo implementación de ProductoRepository sobre el almacén de
// documentos. Con comp distinto de nil, cada escritura exitosa registra su
// inversa para la unidad de trabajo de mejor esfuerzo.
type ProductoRepo struct {
	col  *mongo.Collection
	comp *Compensator
}

// NewProductoRepository construye el adaptador. comp nil = fuera de unidad de trabajo.
func NewProductoRepository(db *mongo.Database, comp *Compensator) *ProductoRepo {
	return &ProductoRepo{col: db.Collection(colProductos), comp: comp}
}

// Create inserta el documento del producto.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	ctx := context.Background()
	_, err := r.col.InsertOne(ctx, toProductoDoc(producto))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	if r.comp != nil {
		id := producto.ID
		r.comp.Registrar("crear producto "+id, func(ctx context.Context) error {
			_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
			return err
		})
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	var doc productoDoc
	err := r.col.FindOne(context.Background(), bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return doc.toEntity()
}

// ListByNegocio lista productos del negocio con paginación.
func (r *ProductoRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Producto, error) {
	ctx := context.Background()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := r.col.Find(ctx, bson.M{"negocio_id": negocioID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.Producto
	for cur.Next(ctx) {
		var doc productoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode producto: %w", err)
		}
		p, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, cur.Err()
}

// Update reemplaza los campos editables del producto. No toca Stock.
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	ctx := context.Background()
	var anterior productoDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": producto.ID},
		bson.M{"$set": bson.M{
			"nombre":        producto.Nombre,
			"precio_venta":  toDecimal128(producto.PrecioVenta),
			"precio_compra": toDecimal128(producto.PrecioCompra),
			"stock_minimo":  producto.StockMinimo,
			"updated_at":    producto.UpdatedAt,
		}},
	).Decode(&anterior)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if r.comp != nil {
		prev := anterior
		r.comp.Registrar("actualizar producto "+producto.ID, func(ctx context.Context) error {
			_, err := r.col.ReplaceOne(ctx, bson.M{"_id": prev.ID}, &prev)
			return err
		})
	}
	return nil
}

// AjustarStock suma delta en un FindOneAndUpdate con guarda stock >= -delta:
// la escritura es atómica a nivel de documento, así que dos ventas
// simultáneas de la última unidad no pueden pasar ambas. La inversa
// ($inc -delta) se registra en el compensador.
func (r *ProductoRepo) AjustarStock(productoID string, delta int) (int, error) {
	ctx := context.Background()
	filter := bson.M{"_id": productoID}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	var doc productoDoc
	err := r.col.FindOneAndUpdate(ctx,
		filter,
		bson.M{
			"$inc": bson.M{"stock": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		if r.comp != nil {
			inverso := -delta
			r.comp.Registrar(fmt.Sprintf("ajustar stock %s (%+d)", productoID, delta), func(ctx context.Context) error {
				_, err := r.col.UpdateByID(ctx, productoID, bson.M{"$inc": bson.M{"stock": inverso}})
				return err
			})
		}
		return doc.Stock, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
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
	ctx := context.Background()
	var anterior productoDoc
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&anterior)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return fmt.Errorf("delete producto: %w", err)
	}
	if r.comp != nil {
		prev := anterior
		r.comp.Registrar("eliminar producto "+id, func(ctx context.Context) error {
			_, err := r.col.InsertOne(ctx, &prev)
			return err
		})
	}
	return nil
}
