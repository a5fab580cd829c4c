package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rechnungen-api/internal/application/billing"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Rechnungen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp aplicación Fiber con el repositorio en memoria sembrado (p1, c1, RE-1341).
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	now := func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	store, err := memory.Open(context.Background(), nil, memory.WithClock(now))
	require.NoError(t, err)

	gen := pdf.NewMarotoPDFGenerator(entity.Company{Name: "HelpCare HelpCare GmbH", PrimaryColor: "#f58060"})
	invoiceUC := billing.NewInvoiceUseCase(store, store, store, now)
	docUC := billing.NewDocumentUseCase(store, store, store, invoiceUC, gen, nil, zerolog.Nop())

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "rechnungen-test",
		InvoiceUC:   invoiceUC,
		DocumentUC:  docUC,
		PartnerUC:   billing.NewPartnerUseCase(store),
		CustomerUC:  billing.NewCustomerUseCase(store),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp)["status"])
}

func TestInvoices_CrearEmitirYDescargar(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/invoices",
		`{"partnerId":"p1","customerId":"c1","agreedTotalAmount":"3.890,00"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	assert.Equal(t, "RE-1342", created["invoiceNumber"])
	assert.Equal(t, "427.9", created["commissionAmount"])
	assert.Equal(t, "Entwurf", created["statusLabel"])
	assert.Equal(t, "Maria Schmidt", created["customerName"])
	id := created["id"].(string)

	resp = do(t, app, http.MethodPut, "/api/invoices/"+id+"/status", `{"status":"offen"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["isLocked"])

	resp = do(t, app, http.MethodGet, "/api/invoices/"+id+"/pdf", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Rechnung-RE-1342.pdf"`, resp.Header.Get("Content-Disposition"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = do(t, app, http.MethodGet, "/api/invoices/"+id+"/pdf?mode=preview", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "inline"))
}

func TestInvoices_ErroresMapeados(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/invoices/no-existe", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, resp)["code"])

	resp = do(t, app, http.MethodPut, "/api/invoices/inv1/status", `{"status":"storniert"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/invoices", `{"invoiceNumber":"RE-1341"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/invoices", `{"agreedTotalAmount":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode(t, resp)["code"])

	resp = do(t, app, http.MethodGet, "/api/invoices/inv1/pdf?mode=druck", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/invoices/inv1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = do(t, app, http.MethodDelete, "/api/invoices/inv1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvoices_PatchYTextoIntroductorio(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPatch, "/api/invoices/inv1", `{"commissionRate":"10","paymentTermsDays":"30"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	inv := decode(t, resp)
	assert.Equal(t, "389", inv["commissionAmount"])
	assert.Equal(t, "2026-03-26", inv["dueDate"])

	resp = do(t, app, http.MethodPost, "/api/invoices/inv1/header-text", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	res := decode(t, resp)
	assert.Equal(t, true, res["regenerated"])
	headerText := res["invoice"].(map[string]any)["headerText"].(string)
	assert.Contains(t, headerText, "389,00 €")
}

func TestInvoices_ListaFiltroYResumen(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/filter", "")
	assert.Equal(t, "alle", decode(t, resp)["filter"])

	resp = do(t, app, http.MethodPut, "/api/filter", `{"filter":"offen"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/invoices", "")
	list := decode(t, resp)
	assert.Equal(t, "offen", list["filter"])
	assert.Empty(t, list["invoices"])

	resp = do(t, app, http.MethodGet, "/api/invoices?status=entwurf", "")
	list = decode(t, resp)
	assert.Len(t, list["invoices"], 1)

	resp = do(t, app, http.MethodPut, "/api/filter", `{"filter":"bezahlt"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/invoices/summary", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sum := decode(t, resp)
	assert.Len(t, sum["byStatus"], 5)
	assert.Equal(t, float64(1), sum["total"].(map[string]any)["count"])
}

func TestInvoices_VistaPreviaDeBorrador(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/invoices/preview", `{"partnerId":"p1","agreedTotalAmount":1000}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `inline; filename="Rechnung-RE-1342.pdf"`, resp.Header.Get("Content-Disposition"))

	resp = do(t, app, http.MethodGet, "/api/invoices?status=alle", "")
	assert.Len(t, decode(t, resp)["invoices"], 1, "la vista previa no guarda la factura")
}

func TestInvoices_Enviar(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/invoices/inv1/send", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="Rechnung-RE-1341.pdf"`, resp.Header.Get("Content-Disposition"))

	resp = do(t, app, http.MethodGet, "/api/invoices/inv1", "")
	inv := decode(t, resp)
	assert.Equal(t, "offen", inv["status"])
	assert.Equal(t, true, inv["isLocked"])
}

func TestPartnersYCustomers(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/partners", `{"name":"Nowy Partner","commissionRate":"12,5","city":"Kraków"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	p := decode(t, resp)
	assert.Equal(t, "12.5", p["commissionRate"])
	pid := p["id"].(string)

	resp = do(t, app, http.MethodPatch, "/api/partners/"+pid, `{"city":"Gdańsk"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	p = decode(t, resp)
	assert.Equal(t, "Gdańsk", p["city"])
	assert.Equal(t, "Nowy Partner", p["name"])

	resp = do(t, app, http.MethodPost, "/api/partners", `{"commissionRate":"5"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/partners", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var partners []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&partners))
	assert.Len(t, partners, 2)

	resp = do(t, app, http.MethodPost, "/api/customers", `{"name":"Hans Müller"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodPatch, "/api/customers/no-existe", `{"name":"x"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/customers/c1", "")
	assert.Equal(t, "Maria Schmidt", decode(t, resp)["name"])
}
