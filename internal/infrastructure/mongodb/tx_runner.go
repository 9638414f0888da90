package mongodb

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/avendano/puntoventa-api/internal/application/sales"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner es la unidad de trabajo de mejor esfuerzo sobre el almacén de
// documentos. No hay transacción multi-documento: antes de la primera
// escritura se registra una intención write-ahead en tx_journal, cada
// escritura exitosa deja su inversa en el compensador, y ante un fallo
// las compensaciones se reproducen en orden inverso.
//
// Modo explícitamente más débil que la ruta relacional: una compensación
// que falla deja estado parcial, marcado en el diario como
// "revertida_parcial" para reparación manual.
type TxRunner struct {
	db      *mongo.Database
	journal *JournalRepo
	log     zerolog.Logger
}

// NewTxRunner construye el runner.
func NewTxRunner(db *mongo.Database, log zerolog.Logger) *TxRunner {
	return &TxRunner{db: db, journal: NewJournalRepo(db), log: log}
}

// Run ejecuta fn con repositorios que registran compensaciones. Si fn falla,
// revierte lo aplicado (mejor esfuerzo) y propaga el error original.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	intentID := uuid.New().String()
	if err := r.journal.Abrir(ctx, intentID, ""); err != nil {
		// Sin intención registrada no hay rastro para reparar: abortar.
		return err
	}

	comp := NewCompensator(r.log)
	productoRepo := NewProductoRepository(r.db, comp)
	clienteRepo := NewClienteRepository(r.db, comp)
	ventaRepo := NewVentaRepository(r.db, comp)

	if err := fn(productoRepo, clienteRepo, ventaRepo); err != nil {
		estado := JournalRevertida
		if fallidas := comp.Revertir(ctx); fallidas > 0 {
			estado = JournalRevertidaParcial
		}
		if jerr := r.journal.Cerrar(ctx, intentID, estado, comp.Descripciones()); jerr != nil {
			r.log.Error().Err(jerr).Str("intent_id", intentID).Msg("cerrar intención")
		}
		return err
	}

	if err := r.journal.Cerrar(ctx, intentID, JournalConfirmada, comp.Descripciones()); err != nil {
		// Las escrituras ya quedaron aplicadas; solo falló el cierre del diario.
		r.log.Error().Err(err).Str("intent_id", intentID).Msg("cerrar intención confirmada")
	}
	return nil
}
