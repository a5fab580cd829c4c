package billing_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rechnungen-api/internal/application/billing"
	"github.com/jhoicas/Rechnungen-api/internal/application/dto"
	"github.com/jhoicas/Rechnungen-api/internal/domain"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/pdf"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func str(s string) *string { return &s }

func amount(s string) *dto.Amount { return dto.NewAmount(decimal.RequireFromString(s)) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeSpool struct {
	mu    sync.Mutex
	stems []string
}

func (f *fakeSpool) Preview(_ context.Context, stem string, content []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stems = append(f.stems, stem)
	return "/tmp/" + stem + "-1.pdf", nil
}

type fixture struct {
	store     *memory.InvoiceStore
	invoices  *billing.InvoiceUseCase
	documents *billing.DocumentUseCase
	generator *pdf.MarotoPDFGenerator
	spool     *fakeSpool
}

// newFixture repositorio en memoria con los datos de ejemplo (p1, c1, RE-1341).
func newFixture(t *testing.T) fixture {
	t.Helper()
	store, err := memory.Open(context.Background(), nil, memory.WithClock(clock))
	require.NoError(t, err)

	gen := pdf.NewMarotoPDFGenerator(entity.Company{
		Name: "HelpCare HelpCare GmbH", Wordmark: "HelpCare", PrimaryColor: "#f58060",
		IBAN: "DE89 3704 0044 0532 0130 00", BIC: "COBADEFFXXX",
	})
	spool := &fakeSpool{}
	invoices := billing.NewInvoiceUseCase(store, store, store, clock)
	docs := billing.NewDocumentUseCase(store, store, store, invoices, gen, spool, zerolog.Nop())
	return fixture{store: store, invoices: invoices, documents: docs, generator: gen, spool: spool}
}

// ── Escenario completo ──────────────────────────────────────────────────────

func TestFacturaDeComision_DeBorradorAEmitida(t *testing.T) {
	f := newFixture(t)

	created, err := f.invoices.Create(dto.InvoiceRequest{
		PartnerID:         str("p1"),
		CustomerID:        str("c1"),
		AgreedTotalAmount: amount("3890"),
	})
	require.NoError(t, err)

	assert.Equal(t, "RE-1342", created.InvoiceNumber)
	assert.True(t, created.CommissionRate.Equal(dec("11")), "el tipo se toma del socio")
	assert.True(t, created.CommissionAmount.Equal(dec("427.90")))
	assert.Equal(t, entity.StatusDraft, created.Status)
	assert.False(t, created.IsLocked)
	assert.Equal(t, "2026-03-02", created.InvoiceDate.String())
	assert.Equal(t, "2026-03-16", created.DueDate.String())
	assert.Equal(t, "Rechnung Nr. RE-1342 – Vermittlungsprovision", created.Subject)
	assert.Equal(t, "Pflegepartner Sp. z o.o.", created.PartnerName)
	assert.Equal(t, "Maria Schmidt", created.CustomerName)
	assert.True(t, created.OpenAmount.Equal(dec("427.90")))

	opened, err := f.invoices.SetStatus(created.ID, entity.StatusOpen)
	require.NoError(t, err)
	assert.True(t, opened.IsLocked, "una factura emitida queda bloqueada")
	assert.Equal(t, "Offen", opened.StatusLabel)

	doc, err := f.documents.Render(context.Background(), created.ID, billing.ModeSave)
	require.NoError(t, err)
	assert.Equal(t, "Rechnung-RE-1342.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
	assert.Empty(t, doc.PreviewPath)

	layout, err := f.generator.Layout(context.Background(), pdf.RenderInput{Invoice: opened.Invoice})
	require.NoError(t, err)
	bar, ok := layout.Block("total-bar")
	require.True(t, ok)
	assert.Contains(t, bar.Texts, "427,90 €")
}

// ── InvoiceUseCase ──────────────────────────────────────────────────────────

func TestCreate_TipoExplicitoYValidacion(t *testing.T) {
	f := newFixture(t)

	created, err := f.invoices.Create(dto.InvoiceRequest{
		PartnerID:         str("p1"),
		AgreedTotalAmount: amount("1000"),
		CommissionRate:    amount("7.5"),
	})
	require.NoError(t, err)
	assert.True(t, created.CommissionAmount.Equal(dec("75")))

	_, err = f.invoices.Create(dto.InvoiceRequest{CommissionRate: amount("150")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.invoices.Create(dto.InvoiceRequest{InvoiceNumber: str("RE-1341")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_SoloCamposIndicados(t *testing.T) {
	f := newFixture(t)

	updated, err := f.invoices.Update("inv1", dto.InvoiceRequest{AgreedTotalAmount: amount("5000")})
	require.NoError(t, err)
	assert.True(t, updated.CommissionAmount.Equal(dec("550")))
	assert.Equal(t, "2026-03-10", updated.DueDate.String(), "la fecha de vencimiento no cambia")
	assert.Equal(t, fixedNow, updated.UpdatedAt)

	_, err = f.invoices.Update("no-existe", dto.InvoiceRequest{Subject: str("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := entity.Status("storniert")
	_, err = f.invoices.Update("inv1", dto.InvoiceRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.invoices.Get("inv1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, got.Status, "una petición inválida no modifica nada")
}

func TestSetStatus_Desconocido(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoices.SetStatus("inv1", "storniert")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegenerateHeader(t *testing.T) {
	f := newFixture(t)

	res, err := f.invoices.RegenerateHeader("inv1")
	require.NoError(t, err)
	assert.True(t, res.Regenerated)
	assert.Contains(t, res.Invoice.HeaderText, "Maria Schmidt")
	assert.Contains(t, res.Invoice.HeaderText, "427,90 €")

	sinCliente, err := f.invoices.Create(dto.InvoiceRequest{AgreedTotalAmount: amount("100")})
	require.NoError(t, err)
	res, err = f.invoices.RegenerateHeader(sinCliente.ID)
	require.NoError(t, err)
	assert.False(t, res.Regenerated, "sin cliente no se regenera")
	assert.Equal(t, sinCliente.HeaderText, res.Invoice.HeaderText)

	_, err = f.invoices.RegenerateHeader("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListYResumen(t *testing.T) {
	f := newFixture(t)

	second, err := f.invoices.Create(dto.InvoiceRequest{
		AgreedTotalAmount: amount("1000"),
		CommissionRate:    amount("10"),
		PaidAmount:        amount("40"),
	})
	require.NoError(t, err)
	_, err = f.invoices.SetStatus(second.ID, entity.StatusOpen)
	require.NoError(t, err)

	all, err := f.invoices.List("")
	require.NoError(t, err)
	assert.Equal(t, entity.FilterAll, all.Filter)
	assert.Len(t, all.Invoices, 2)
	assert.True(t, all.Summary.CommissionTotal.Equal(dec("527.90")))
	assert.True(t, all.Summary.OpenTotal.Equal(dec("487.90")))

	open, err := f.invoices.List(entity.FilterOpen)
	require.NoError(t, err)
	require.Len(t, open.Invoices, 1)
	assert.Equal(t, second.ID, open.Invoices[0].ID)
	assert.Equal(t, entity.FilterAll, f.invoices.Filter(), "el filtro de la consulta no se guarda")

	require.NoError(t, f.invoices.SetFilter(entity.FilterDraft))
	drafts, err := f.invoices.List("")
	require.NoError(t, err)
	assert.Equal(t, entity.FilterDraft, drafts.Filter)
	require.Len(t, drafts.Invoices, 1)
	assert.Equal(t, "inv1", drafts.Invoices[0].ID)

	_, err = f.invoices.List("bezahlt")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, f.invoices.SetFilter("x"), domain.ErrInvalidInput)

	sum := f.invoices.Summary()
	require.Len(t, sum.ByStatus, 5)
	assert.Equal(t, entity.StatusDraft, sum.ByStatus[0].Status)
	assert.Equal(t, 1, sum.ByStatus[0].Count)
	assert.Equal(t, "Offen", sum.ByStatus[1].Label)
	assert.True(t, sum.ByStatus[1].Open.Equal(dec("60")))
	assert.Zero(t, sum.ByStatus[3].Count)
	assert.Equal(t, 2, sum.Total.Count)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.invoices.Delete("inv1"))
	assert.ErrorIs(t, f.invoices.Delete("inv1"), domain.ErrNotFound)
	assert.Equal(t, "RE-1336", f.invoices.NextNumber(), "sin facturas se parte del suelo")
}

// ── DocumentUseCase ─────────────────────────────────────────────────────────

func TestRenderDraft_NoGuarda(t *testing.T) {
	f := newFixture(t)

	doc, err := f.documents.RenderDraft(context.Background(), dto.InvoiceRequest{
		PartnerID:         str("p1"),
		AgreedTotalAmount: amount("2000"),
	})
	require.NoError(t, err)
	assert.Equal(t, billing.ModePreview, doc.Mode)
	assert.Equal(t, "Rechnung-RE-1342.pdf", doc.Filename)
	assert.Equal(t, "/tmp/Rechnung-RE-1342-1.pdf", doc.PreviewPath)
	assert.Equal(t, []string{"Rechnung-RE-1342"}, f.spool.stems)
	assert.Len(t, f.store.ListInvoices(), 1, "la vista previa no crea la factura")
	assert.Equal(t, "RE-1342", f.invoices.NextNumber(), "el número no se reserva")
}

func TestRender_ModosYErrores(t *testing.T) {
	f := newFixture(t)

	doc, err := f.documents.Render(context.Background(), "inv1", billing.ModePreview)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/Rechnung-RE-1341-1.pdf", doc.PreviewPath)

	_, err = f.documents.Render(context.Background(), "no-existe", billing.ModeSave)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	m, err := billing.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, billing.ModeSave, m)
	_, err = billing.ParseMode("druck")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSendAndRender(t *testing.T) {
	f := newFixture(t)

	doc, inv, err := f.documents.SendAndRender(context.Background(), "inv1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOpen, inv.Status)
	assert.True(t, inv.IsLocked)
	assert.Equal(t, billing.ModeSave, doc.Mode)
	assert.Equal(t, "Rechnung-RE-1341.pdf", doc.Filename)
	assert.Empty(t, f.spool.stems)
}

func TestRender_ReferenciasColgantes(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoices.Update("inv1", dto.InvoiceRequest{PartnerID: str("borrado"), CustomerID: str("borrado")})
	require.NoError(t, err)

	doc, err := f.documents.Render(context.Background(), "inv1", billing.ModeSave)
	require.NoError(t, err, "un socio o cliente inexistente no es un error")
	assert.NotEmpty(t, doc.Content)
}
