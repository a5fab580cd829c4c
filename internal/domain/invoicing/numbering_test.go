package invoicing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Rechnungen-api/internal/domain/invoicing"
)

func TestNextInvoiceNumber(t *testing.T) {
	assert.Equal(t, "RE-1341", invoicing.NextInvoiceNumber([]string{"RE-1335", "RE-1340"}))
	assert.Equal(t, "RE-1336", invoicing.NextInvoiceNumber(nil), "sin números se parte del mínimo 1335")
}

func TestNextInvoiceNumber_IgnoraFormatosAjenos(t *testing.T) {
	existing := []string{"RE-abc", "INV-9999", "RE-1400x", "", "RE-"}
	assert.Equal(t, "RE-1401", invoicing.NextInvoiceNumber(existing), "el sufijo numérico inicial cuenta")

	assert.Equal(t, "RE-1336", invoicing.NextInvoiceNumber([]string{"RE-abc", "X-1"}))
}

func TestNextInvoiceNumber_NoEsContador(t *testing.T) {
	numbers := []string{"RE-1336", "RE-1337"}
	assert.Equal(t, "RE-1338", invoicing.NextInvoiceNumber(numbers))

	// al borrar la más alta su número vuelve a quedar libre
	assert.Equal(t, "RE-1337", invoicing.NextInvoiceNumber(numbers[:1]))
}
