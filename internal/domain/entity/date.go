package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout formato ISO de las fechas de calendario (sin hora).
const DateLayout = "2006-01-02"

// Date fecha de calendario sin hora ni zona. El valor cero representa "sin fecha"
// y se serializa como cadena vacía.
type Date struct {
	t time.Time
}

// NewDate construye una fecha a partir de año, mes y día.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf toma la fecha de calendario de t.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate acepta "2006-01-02" y también marcas completas RFC 3339 (se descarta la hora).
// La cadena vacía devuelve la fecha cero sin error.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// MustParseDate como ParseDate pero entra en pánico; solo para datos fijos y tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero indica que no hay fecha.
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays suma días naturales (sin ajuste a días hábiles).
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Time devuelve la fecha a medianoche UTC.
func (d Date) Time() time.Time { return d.t }

// Equal compara dos fechas.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
