package mongodb

import (
	"context"

	"github.com/rs/zerolog"
)

// accion es una escritura ya aplicada con su inversa registrada.
type accion struct {
	descripcion string
	deshacer    func(ctx context.Context) error
}

// Compensator acumula acciones compensatorias durante una unidad de trabajo
// de mejor esfuerzo. Los repositorios registran la inversa de cada escritura
// exitosa; ante un fallo, Revertir las ejecuta en orden inverso.
//
// Esto NO es una transacción: una compensación que también falla deja estado
// parcial. El fallo se registra en el log y queda trazado en el diario de
// intenciones para reparación manual.
type Compensator struct {
	log      zerolog.Logger
	acciones []accion
}

// NewCompensator construye un compensador vacío.
func NewCompensator(log zerolog.Logger) *Compensator {
	return &Compensator{log: log}
}

// Registrar agrega la inversa de una escritura ya aplicada.
func (c *Compensator) Registrar(descripcion string, deshacer func(ctx context.Context) error) {
	c.acciones = append(c.acciones, accion{descripcion: descripcion, deshacer: deshacer})
}

// Revertir ejecuta las compensaciones en orden inverso al de registro.
// Continúa ante fallos individuales y devuelve cuántas compensaciones
// no pudieron aplicarse.
func (c *Compensator) Revertir(ctx context.Context) int {
	fallidas := 0
	for i := len(c.acciones) - 1; i >= 0; i-- {
		a := c.acciones[i]
		if err := a.deshacer(ctx); err != nil {
			fallidas++
			c.log.Error().
				Err(err).
				Str("accion", a.descripcion).
				Msg("compensación fallida, posible estado inconsistente")
		}
	}
	return fallidas
}

// Descripciones devuelve las acciones registradas, en orden de aplicación.
func (c *Compensator) Descripciones() []string {
	out := make([]string, 0, len(c.acciones))
	for _, a := range c.acciones {
		out = append(out, a.descripcion)
	}
	return out
}
