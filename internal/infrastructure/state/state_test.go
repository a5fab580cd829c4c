package state_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/state"
)

const legacyBlob = `{
  "version": 1,
  "state": {
    "filter": "offen",
    "partners": [{"id": "p1", "name": "Pflegepartner", "address": "A", "postalCode": "1", "city": "B", "country": "PL", "commissionRate": 11}],
    "customers": [{"id": "c1", "name": "Maria Schmidt"}],
    "invoices": [
      {"id": "a", "invoiceNumber": "RE-1336", "status": "offen", "deliveryDate": "2026-02-01",
       "agreedTotalAmount": 3890, "commissionRate": 11, "commissionAmount": 427.9,
       "invoiceDate": "2026-02-24", "dueDate": "", "subject": "", "headerText": "",
       "positions": [], "paymentTermsDays": 14, "isLocked": true,
       "createdAt": "2026-02-24", "updatedAt": "2026-02-24"},
      {"id": "b", "invoiceNumber": "RE-1337", "status": "entwurf", "deliveryDate": "2026-01-05",
       "performancePeriodFrom": "2026-01-01", "performancePeriodTo": "2026-01-31",
       "agreedTotalAmount": 1000, "commissionRate": 10, "commissionAmount": 100,
       "invoiceDate": "2026-02-01", "subject": "x", "headerText": "", "paymentTermsDays": 14,
       "createdAt": "2026-02-01", "updatedAt": ""}
    ]
  }
}`

func rawState(t *testing.T, blob string) (map[string]any, int) {
	t.Helper()
	var env struct {
		State   map[string]any `json:"state"`
		Version int            `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(blob), &env))
	return env.State, env.Version
}

func TestMigrate_DeliveryDateAPeriodo(t *testing.T) {
	raw, version := rawState(t, legacyBlob)

	require.True(t, state.Migrate(raw, version))

	invs := raw["invoices"].([]any)
	a := invs[0].(map[string]any)
	assert.Equal(t, "2026-02-01", a["performancePeriodFrom"])
	assert.Equal(t, "2026-02-01", a["performancePeriodTo"])
	assert.NotContains(t, a, "deliveryDate", "el campo legado se elimina")

	b := invs[1].(map[string]any)
	assert.Equal(t, "2026-01-01", b["performancePeriodFrom"], "un periodo existente no se toca")
	assert.Equal(t, "2026-01-31", b["performancePeriodTo"])
}

func TestMigrate_Idempotente(t *testing.T) {
	once, version := rawState(t, legacyBlob)
	state.Migrate(once, version)

	twice, _ := rawState(t, legacyBlob)
	state.Migrate(twice, version)
	state.Migrate(twice, version)

	assert.Equal(t, once, twice, "migrar dos veces equivale a migrar una")
}

func TestMigrate_VersionActualNoHaceNada(t *testing.T) {
	raw := map[string]any{"invoices": []any{map[string]any{"deliveryDate": "2026-02-01"}}}

	assert.False(t, state.Migrate(raw, state.CurrentVersion))
	assert.Contains(t, raw["invoices"].([]any)[0], "deliveryDate")
}

func TestDecode_Legacy(t *testing.T) {
	s, res, err := state.Decode([]byte(legacyBlob))
	require.NoError(t, err)

	assert.Equal(t, 1, res.StoredVersion)
	assert.True(t, res.Migrated)
	assert.Equal(t, entity.FilterOpen, s.Filter)
	require.Len(t, s.Invoices, 2)

	a := s.Invoices[0]
	assert.Equal(t, "2026-02-01", a.PerformancePeriodFrom.String())
	assert.Equal(t, "2026-02-01", a.PerformancePeriodTo.String())
	assert.True(t, a.CommissionAmount.Equal(decimal.RequireFromString("427.9")))
	assert.Equal(t, time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC), a.CreatedAt.UTC())
	assert.NotNil(t, s.Invoices[1].Positions)
	assert.True(t, s.Invoices[1].UpdatedAt.IsZero())
}

func TestEncodeDecode_VersionActual(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	seed := state.Seed(now)

	blob, err := state.Encode(seed)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(blob, &env))
	assert.EqualValues(t, state.CurrentVersion, env["version"])
	assert.Contains(t, env, "state")

	back, res, err := state.Decode(blob)
	require.NoError(t, err)
	assert.False(t, res.Migrated, "un blob actual no se migra")
	require.Len(t, back.Invoices, 1)
	assert.Equal(t, "RE-1341", back.Invoices[0].InvoiceNumber)
	assert.Equal(t, now, back.Invoices[0].CreatedAt.UTC())
}

func TestDecode_FiltroInvalido(t *testing.T) {
	s, _, err := state.Decode([]byte(`{"version":3,"state":{"filter":"bezahlt"}}`))
	require.NoError(t, err)
	assert.Equal(t, entity.FilterAll, s.Filter)
	assert.True(t, s.IsEmpty())
}

func TestDecode_BlobCorrupto(t *testing.T) {
	_, _, err := state.Decode([]byte(`{no es json`))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	s := state.Seed(time.Now())

	require.Len(t, s.Partners, 1)
	require.Len(t, s.Customers, 1)
	require.Len(t, s.Invoices, 1)

	inv := s.Invoices[0]
	assert.Equal(t, entity.StatusDraft, inv.Status)
	assert.False(t, inv.IsLocked)
	assert.True(t, inv.CommissionAmount.Equal(decimal.RequireFromString("427.90")))
	assert.Equal(t, "2026-03-10", inv.DueDate.String())
	assert.Equal(t, "Rechnung Nr. RE-1341 – Vermittlungsprovision", inv.Subject)
	assert.Contains(t, inv.HeaderText, "von Frau Maria Schmidt")
}

func TestClone_NoComparteRegistros(t *testing.T) {
	s := state.Seed(time.Now())
	c := s.Clone()

	c.Invoices[0].Subject = "otro"
	c.Partners[0].Name = "otro"
	*c.Invoices[0].PaidAmount = decimal.NewFromInt(5)

	assert.NotEqual(t, "otro", s.Invoices[0].Subject)
	assert.NotEqual(t, "otro", s.Partners[0].Name)
	assert.True(t, s.Invoices[0].PaidAmount.IsZero())
}
