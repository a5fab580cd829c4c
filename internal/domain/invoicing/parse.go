package invoicing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/pkg/money"
)

// ParseAmount importe tecleado; una entrada no numérica vale 0.
func ParseAmount(s string) decimal.Decimal {
	d, ok := money.Parse(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

// ParseRate porcentaje tecleado; una entrada no numérica vale 0.
func ParseRate(s string) decimal.Decimal {
	return ParseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// ParseDays plazo de pago; entradas vacías, no numéricas o negativas devuelven def.
func ParseDays(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return def
	}
	return n
}
