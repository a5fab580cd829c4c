package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Rechnungen-api/pkg/money"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound2(t *testing.T) {
	cases := map[string]string{
		"427.9":    "427.9",
		"1.005":    "1.01",
		"-1.005":   "-1.01",
		"2.344999": "2.34",
		"0":        "0",
	}
	for in, want := range cases {
		got := money.Round2(d(in))
		assert.True(t, got.Equal(d(want)), "round2(%s) = %s, esperado %s", in, got, want)
	}
}

func TestRound2_Idempotente(t *testing.T) {
	for _, s := range []string{"0.125", "19.995", "-3.3333", "1234567.891"} {
		once := money.Round2(d(s))
		assert.True(t, money.Round2(once).Equal(once), "round2 no es idempotente para %s", s)
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, money.Percent(d("3890"), d("11")).Equal(d("427.90")))
	assert.True(t, money.Percent(d("100"), d("0")).IsZero())
}

func TestFormatEUR(t *testing.T) {
	assert.Equal(t, "3.890,00 €", money.FormatEUR(d("3890")))
	assert.Equal(t, "427,90 €", money.FormatEUR(d("427.9")))
	assert.Equal(t, "0,00 €", money.FormatEUR(decimal.Zero))
	assert.Equal(t, "1.234.567,89 €", money.FormatEUR(d("1234567.891")))
	assert.Equal(t, "-5,00 €", money.FormatEUR(d("-5")))
	assert.Equal(t, "-0,05 €", money.FormatEUR(d("-0.05")))
}

func TestFormatEUR_ImportesGrandesSinPerderCentimos(t *testing.T) {
	assert.Equal(t, "90.071.992.547.409,93 €", money.FormatEUR(d("90071992547409.93")))
	assert.Equal(t, "1.234.567.890.123.456,78 €", money.FormatEUR(d("1234567890123456.78")))
	assert.Equal(t, "1.000,01 €", money.FormatEUR(d("1000.005")))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "11", money.FormatRate(d("11")))
	assert.Equal(t, "7,5", money.FormatRate(d("7.50")))
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1234.5", "1234.5", true},
		{"1234,5", "1234.5", true},
		{"1.234,50", "1234.5", true},
		{"3.890,00 €", "3890", true},
		{"1.000.000", "1000000", true},
		{"  42 ", "42", true},
		{"", "0", false},
		{"abc", "0", false},
	}
	for _, c := range cases {
		got, ok := money.Parse(c.in)
		assert.Equal(t, c.ok, ok, "ok para %q", c.in)
		assert.True(t, got.Equal(d(c.want)), "Parse(%q) = %s, esperado %s", c.in, got, c.want)
	}
}
