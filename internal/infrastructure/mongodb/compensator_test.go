package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// Las compensaciones deben deshacerse en orden inverso al de registro,
// igual que un rollback recorre el log de la transacción hacia atrás.
func TestCompensator_RevierteEnOrdenInverso(t *testing.T) {
	comp := NewCompensator(zerolog.Nop())

	var orden []string
	registrar := func(nombre string) {
		comp.Registrar(nombre, func(context.Context) error {
			orden = append(orden, nombre)
			return nil
		})
	}
	registrar("a")
	registrar("b")
	registrar("c")

	fallidas := comp.Revertir(context.Background())
	assert.Zero(t, fallidas)
	assert.Equal(t, []string{"c", "b", "a"}, orden)
}

// Una compensación fallida no detiene las demás: se cuenta y se continúa.
func TestCompensator_ContinuaAntefallos(t *testing.T) {
	comp := NewCompensator(zerolog.Nop())

	var orden []string
	comp.Registrar("a", func(context.Context) error {
		orden = append(orden, "a")
		return nil
	})
	comp.Registrar("b", func(context.Context) error {
		return errors.New("colección inaccesible")
	})
	comp.Registrar("c", func(context.Context) error {
		orden = append(orden, "c")
		return nil
	})

	fallidas := comp.Revertir(context.Background())
	assert.Equal(t, 1, fallidas)
	assert.Equal(t, []string{"c", "a"}, orden, "las compensaciones restantes deben aplicarse igual")
}

func TestCompensator_Vacio(t *testing.T) {
	comp := NewCompensator(zerolog.Nop())
	assert.Zero(t, comp.Revertir(context.Background()))
	assert.Empty(t, comp.Descripciones())
}

func TestCompensator_Descripciones(t *testing.T) {
	comp := NewCompensator(zerolog.Nop())
	comp.Registrar("crear venta v1", func(context.Context) error { return nil })
	comp.Registrar("ajustar stock p1 (-2)", func(context.Context) error { return nil })

	assert.Equal(t, []string{"crear venta v1", "ajustar stock p1 (-2)"}, comp.Descripciones())
}
