package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Estados de una entrada del diario de intenciones.
const (
	JournalPendiente        = "pendiente"
	JournalConfirmada       = "confirmada"
	JournalRevertida        = "revertida"
	JournalRevertidaParcial = "revertida_parcial" // al menos una compensación falló
)

const colJournal = "tx_journal"

// JournalRepo persiste intenciones write-ahead de las unidades de trabajo
// de mejor esfuerzo. Una entrada que queda en "pendiente" o
// "revertida_parcial" señala escrituras parciales a reparar manualmente.
type JournalRepo struct {
	col *mongo.Collection
}

// NewJournalRepo construye el repositorio del diario.
func NewJournalRepo(db *mongo.Database) *JournalRepo {
	return &JournalRepo{col: db.Collection(colJournal)}
}

// Abrir registra la intención antes de la primera escritura.
func (r *JournalRepo) Abrir(ctx context.Context, id, negocioID string) error {
	_, err := r.col.InsertOne(ctx, bson.M{
		"_id":         id,
		"negocio_id":  negocioID,
		"estado":      JournalPendiente,
		"iniciada_en": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("abrir intención: %w", err)
	}
	return nil
}

// Cerrar marca el desenlace de la unidad de trabajo y deja la lista de
// acciones aplicadas para diagnóstico.
func (r *JournalRepo) Cerrar(ctx context.Context, id, estado string, acciones []string) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"estado":      estado,
			"acciones":    acciones,
			"cerrada_en":  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("cerrar intención: %w", err)
	}
	return nil
}
