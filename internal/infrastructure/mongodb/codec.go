package mongodb

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Los montos se guardan como Decimal128 para que el servidor pueda
// compararlos ($gte) e incrementarlos ($inc) sin pérdida de precisión.

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// d.String() siempre es un decimal válido; esto no debería ocurrir.
		panic(fmt.Sprintf("decimal inválido %q: %v", d.String(), err))
	}
	return d128
}

func fromDecimal128(d128 primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(d128.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsear decimal128 %q: %w", d128.String(), err)
	}
	return d, nil
}
