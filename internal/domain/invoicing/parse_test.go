package invoicing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Rechnungen-api/internal/domain/invoicing"
)

func TestParseAmount(t *testing.T) {
	assert.True(t, invoicing.ParseAmount("3.890,00").Equal(dec("3890")))
	assert.True(t, invoicing.ParseAmount("3890.5").Equal(dec("3890.5")))
	assert.True(t, invoicing.ParseAmount("drei").IsZero(), "entrada inválida vale 0")
}

func TestParseRate(t *testing.T) {
	assert.True(t, invoicing.ParseRate("11 %").Equal(dec("11")))
	assert.True(t, invoicing.ParseRate("7,5").Equal(dec("7.5")))
	assert.True(t, invoicing.ParseRate("").IsZero())
}

func TestParseDays(t *testing.T) {
	assert.Equal(t, 30, invoicing.ParseDays("30", 14))
	assert.Equal(t, 0, invoicing.ParseDays("0", 14), "0 días es un plazo válido")
	assert.Equal(t, 14, invoicing.ParseDays("", 14))
	assert.Equal(t, 14, invoicing.ParseDays("vierzehn", 14))
	assert.Equal(t, 14, invoicing.ParseDays("-3", 14))
}
