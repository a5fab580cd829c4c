// Package money agrupa la aritmética monetaria y el formato de importes en euros.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var hundred = decimal.NewFromInt(100)

// Hundred devuelve 100 como decimal (porcentajes).
func Hundred() decimal.Decimal { return hundred }

// Round2 redondea a 2 decimales, mitad alejándose de cero (convención de céntimos).
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

// Percent devuelve round2(base × rate / 100).
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(rate).Div(hundred))
}

// FormatEUR formatea en estilo de-DE: "3.890,00 €".
// Euros y céntimos se separan como enteros; no pasa por float64.
func FormatEUR(x decimal.Decimal) string {
	r := Round2(x)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	euros := r.Truncate(0)
	cents := r.Sub(euros).Shift(2).IntPart()

	p := message.NewPrinter(language.German)
	return fmt.Sprintf("%s%s,%02d €", sign, p.Sprintf("%v", number.Decimal(euros.IntPart())), cents)
}

// FormatRate muestra un porcentaje sin ceros finales y con coma decimal ("11", "7,5").
func FormatRate(x decimal.Decimal) string {
	return strings.Replace(x.String(), ".", ",", 1)
}

// Parse interpreta importes tecleados por el usuario: "1234.5", "1234,5" o "1.234,50".
// El segundo valor es false si la entrada no es un número.
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	switch {
	case strings.Contains(s, ","):
		// coma decimal; los puntos son separadores de miles
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
