package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/domain/invoicing"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Amount importe o porcentaje que acepta número JSON o texto tal como se teclea
// ("3.890,00", "11 %"). Un texto no numérico vale 0.
type Amount struct {
	decimal.Decimal
}

// NewAmount envuelve un decimal.
func NewAmount(d decimal.Decimal) *Amount { return &Amount{Decimal: d} }

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		a.Decimal = invoicing.ParseRate(s)
		return nil
	}
	if string(b) == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	return a.Decimal.UnmarshalJSON(b)
}

// Ptr devuelve el decimal como puntero (nil si a es nil).
func (a *Amount) Ptr() *decimal.Decimal {
	if a == nil {
		return nil
	}
	d := a.Decimal
	return &d
}

// Days plazo de pago que acepta número o texto; valores negativos o no numéricos
// se sustituyen por el plazo por defecto.
type Days int

func (d *Days) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Days(invoicing.ParseDays(s, invoicing.DefaultPaymentTermsDays))
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil || n < 0 {
		*d = Days(invoicing.DefaultPaymentTermsDays)
		return nil
	}
	*d = Days(int(n))
	return nil
}

// Ptr devuelve el plazo como *int (nil si d es nil).
func (d *Days) Ptr() *int {
	if d == nil {
		return nil
	}
	n := int(*d)
	return &n
}
