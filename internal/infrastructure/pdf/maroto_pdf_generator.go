// Package pdf genera el documento PDF de una factura de comisión (Provisionsrechnung).
//
// Layout de la página A4 (márgenes de 20 mm):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo o marca         │  Empresa / dirección        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECHNUNG                                  RE-xxxx          │
//	│  RECHNUNGSEMPFÄNGER           │  RECHNUNGSDETAILS           │
//	│  PFLEGEBEDÜRFTIGER                                          │
//	│  Betreff + Einleitungstext                                  │
//	│  TABLA: Position | Betrag (3 filas fijas)                   │
//	│  ███ Rechnungsbetrag (Gesamt) ███████████████ 427,90 € ███  │
//	│  ZAHLUNGSINFORMATIONEN: IBAN / BIC / Verwendungszweck [QR]  │
//	│  FOOTER: datos legales + agradecimiento                     │
//	└─────────────────────────────────────────────────────────────┘
//
// Cada sección es un Step que devuelve un Block con sus filas y su altura; Compose los
// encadena. La cabecera nunca falla por el logo: si no se puede cargar se usa la marca en texto.
package pdf

import (
	"context"
	"errors"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company  entity.Company
	accent   *props.Color
	logos    *LogoChain
	giroCode bool
	log      zerolog.Logger
}

// GeneratorOption configura el generador.
type GeneratorOption func(*MarotoPDFGenerator)

// WithLogoChain orígenes del logo; sin cadena se usa siempre la marca en texto.
func WithLogoChain(c *LogoChain) GeneratorOption {
	return func(g *MarotoPDFGenerator) { g.logos = c }
}

// WithGiroCode añade el código QR EPC en el bloque de pago.
func WithGiroCode(enabled bool) GeneratorOption {
	return func(g *MarotoPDFGenerator) { g.giroCode = enabled }
}

// WithGeneratorLogger logger estructurado.
func WithGeneratorLogger(l zerolog.Logger) GeneratorOption {
	return func(g *MarotoPDFGenerator) { g.log = l }
}

// NewMarotoPDFGenerator construye el generador con el perfil de la empresa emisora.
func NewMarotoPDFGenerator(company entity.Company, opts ...GeneratorOption) *MarotoPDFGenerator {
	g := &MarotoPDFGenerator{company: company, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	accent, err := ParseHexColor(company.PrimaryColor)
	if err != nil {
		g.log.Warn().Err(err).Msg("color corporativo inválido; se usa el de por defecto")
		accent = defaultAccent
	}
	g.accent = accent
	return g
}

// Layout compone los bloques de la página sin generar el PDF.
// Trabaja sobre una copia de la factura: el original nunca se modifica.
func (g *MarotoPDFGenerator) Layout(ctx context.Context, in RenderInput) (Layout, error) {
	if in.Invoice == nil {
		return Layout{}, errors.New("pdf: factura nula")
	}
	in.Invoice = in.Invoice.Clone()

	c := composer{
		company:  g.company,
		accent:   g.accent,
		logo:     g.logos.Load(ctx),
		giroCode: g.giroCode,
	}
	if c.logo == nil {
		g.log.Debug().Str("invoice", in.Invoice.InvoiceNumber).Msg("cabecera con marca en texto")
	}
	return Compose(in, c.steps()...), nil
}

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(ctx context.Context, in RenderInput) ([]byte, error) {
	layout, err := g.Layout(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(PageMargin).WithRightMargin(PageMargin).
		WithTopMargin(PageMargin).WithBottomMargin(PageMargin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Rechnung "+in.Invoice.InvoiceNumber, true).
		WithAuthor(g.company.Name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(layout.Rows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateInvoicePDF adapta Render al puerto de la capa de aplicación.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	ctx context.Context,
	invoice *entity.Invoice,
	partner *entity.Partner,
	customer *entity.Customer,
) ([]byte, error) {
	return g.Render(ctx, RenderInput{Invoice: invoice, Partner: partner, Customer: customer})
}
