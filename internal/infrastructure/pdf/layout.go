package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/pkg/money"
)

// Medidas de página en mm (A4 con márgenes de 20).
const (
	PageMargin    = 20.0
	ContentWidth  = 210.0 - 2*PageMargin
	headerWrapLen = 95 // runas por línea del texto introductorio a 10 pt

	logoWidth       = 50.0 // ancho fijo del logo; el alto sale de su proporción
	headerMinHeight = 35.0
	headerMaxHeight = 60.0
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorLabel    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCompany  = &props.Color{Red: 80, Green: 80, Blue: 80}
	colorBody     = &props.Color{Red: 60, Green: 60, Blue: 60}
	colorFooter   = &props.Color{Red: 140, Green: 140, Blue: 140}
	colorRule     = &props.Color{Red: 230, Green: 230, Blue: 230}
	colorAltRow   = &props.Color{Red: 248, Green: 248, Blue: 248}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	defaultAccent = &props.Color{Red: 245, Green: 128, Blue: 96}
)

// RenderInput datos de una factura resuelta. Partner y Customer pueden faltar.
type RenderInput struct {
	Invoice  *entity.Invoice
	Partner  *entity.Partner
	Customer *entity.Customer
}

// Block fragmento vertical de la página. Height es la suma de las alturas de sus filas;
// Texts recoge las cadenas visibles en orden (para comprobar el contenido sin decodificar el PDF).
type Block struct {
	Name   string
	Rows   []core.Row
	Height float64
	Texts  []string
}

// Layout resultado de componer los bloques en orden.
type Layout struct {
	Blocks []Block
	Height float64
}

// Rows todas las filas en orden de página.
func (l Layout) Rows() []core.Row {
	var out []core.Row
	for _, b := range l.Blocks {
		out = append(out, b.Rows...)
	}
	return out
}

// Block busca un bloque por nombre.
func (l Layout) Block(name string) (Block, bool) {
	for _, b := range l.Blocks {
		if b.Name == name {
			return b, true
		}
	}
	return Block{}, false
}

// Texts todas las cadenas visibles de la página.
func (l Layout) Texts() []string {
	var out []string
	for _, b := range l.Blocks {
		out = append(out, b.Texts...)
	}
	return out
}

// Step produce un bloque a partir de la factura.
type Step func(in RenderInput) Block

// Compose ejecuta los pasos en orden y acumula la altura; los bloques vacíos se omiten.
func Compose(in RenderInput, steps ...Step) Layout {
	var l Layout
	for _, step := range steps {
		b := step(in)
		if len(b.Rows) == 0 {
			continue
		}
		l.Blocks = append(l.Blocks, b)
		l.Height += b.Height
	}
	return l
}

// ── Constructor de bloques ──────────────────────────────────────────────────

type blockBuilder struct {
	b Block
}

func newBlock(name string) *blockBuilder {
	return &blockBuilder{b: Block{Name: name}}
}

func (bb *blockBuilder) text(s string, p props.Text) core.Component {
	bb.b.Texts = append(bb.b.Texts, s)
	return text.New(s, p)
}

func (bb *blockBuilder) add(h float64, r core.Row) {
	bb.b.Rows = append(bb.b.Rows, r)
	bb.b.Height += h
}

func (bb *blockBuilder) row(h float64, cols ...core.Col) {
	bb.add(h, row.New(h).Add(cols...))
}

func (bb *blockBuilder) filledRow(h float64, fill *props.Color, cols ...core.Col) {
	bb.add(h, row.New(h).Add(cols...).WithStyle(&props.Cell{BackgroundColor: fill}))
}

func (bb *blockBuilder) rule(h float64, p props.Line) {
	bb.add(h, line.NewRow(h, p))
}

func (bb *blockBuilder) space(h float64) {
	bb.add(h, row.New(h))
}

func (bb *blockBuilder) build() Block { return bb.b }

// ── Secciones ─────────────────────────────────────────────────────────────────

type composer struct {
	company  entity.Company
	accent   *props.Color
	logo     *Logo
	giroCode bool
}

func (c composer) steps() []Step {
	return []Step{
		c.headerBlock,
		c.titleBlock,
		c.partiesBlock,
		c.careRecipientBlock,
		c.subjectBlock,
		c.headerTextBlock,
		c.summaryTableBlock,
		c.totalBarBlock,
		c.paymentBlock,
		c.footerBlock,
	}
}

// headerBlock: logo (o marca en texto) a la izquierda y dirección de la empresa a la derecha.
func (c composer) headerBlock(_ RenderInput) Block {
	bb := newBlock("header")

	height := headerMinHeight
	left := col.New(6)
	if c.logo != nil {
		// la fila crece con logos altos; por encima del máximo maroto reduce la imagen
		height = min(max(height, c.logo.HeightFor(logoWidth)), headerMaxHeight)
		left = left.Add(image.NewFromBytes(c.logo.Data, c.logo.Ext, props.Rect{Percent: 100 * logoWidth / (ContentWidth / 2)}))
	} else {
		left = left.Add(bb.text(nonEmpty(c.company.Wordmark, c.company.Name), props.Text{
			Style: fontstyle.Bold, Size: 14, Color: c.accent, Top: 5,
		}))
	}

	right := props.Text{Size: 9, Align: align.Right, Color: colorCompany}
	at := func(top float64) props.Text { p := right; p.Top = top; return p }
	bb.row(height,
		left,
		col.New(6).Add(
			bb.text(c.company.Name, at(2)),
			bb.text(c.company.Address, at(8)),
			bb.text(c.company.PostalCode+" "+c.company.City, at(14)),
			bb.text(c.company.Country, at(20)),
		),
	)
	return bb.build()
}

// titleBlock: línea de acento, "RECHNUNG" y número de factura.
func (c composer) titleBlock(in RenderInput) Block {
	bb := newBlock("title")
	bb.rule(1, props.Line{Color: c.accent, Thickness: 0.5})
	bb.space(11)
	bb.row(20,
		col.New(8).Add(bb.text("RECHNUNG", props.Text{Style: fontstyle.Bold, Size: 24, Color: c.accent})),
		col.New(4).Add(bb.text(in.Invoice.InvoiceNumber, props.Text{Size: 10, Align: align.Right, Top: 4})),
	)
	return bb.build()
}

// partiesBlock: destinatario (socio) a la izquierda y datos de la factura a la derecha.
func (c composer) partiesBlock(in RenderInput) Block {
	bb := newBlock("parties")
	inv := in.Invoice

	heading := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorLabel}
	bb.row(8,
		col.New(6).Add(bb.text("RECHNUNGSEMPFÄNGER", heading)),
		col.New(6).Add(bb.text("RECHNUNGSDETAILS", heading)),
	)

	body := func(top float64) props.Text { return props.Text{Size: 10, Top: top} }

	var partnerLines []string
	if p := in.Partner; p != nil {
		partnerLines = append(partnerLines, p.Name, p.Address)
		if p.AddressAddition != "" {
			partnerLines = append(partnerLines, p.AddressAddition)
		}
		partnerLines = append(partnerLines, p.PostalCode+" "+p.City, p.Country)
	} else {
		partnerLines = []string{"-"}
	}
	left := col.New(6)
	for i, s := range partnerLines {
		left = left.Add(bb.text(s, body(float64(i)*6)))
	}
	// la última línea del socio ocupa 4 mm, el resto 6
	partnerHeight := float64(len(partnerLines))*6 - 2

	type detail struct{ label, value string }
	details := []detail{
		{"Rechnungsnummer:", inv.InvoiceNumber},
		{"Rechnungsdatum:", inv.InvoiceDate.String()},
	}
	if inv.HasPerformancePeriod() {
		details = append(details, detail{"Leistungsraum:", inv.PerformancePeriodFrom.String() + " – " + inv.PerformancePeriodTo.String()})
	}
	details = append(details, detail{"Fällig am:", inv.DueDate.String()})
	if inv.ReferenceNumber != "" {
		details = append(details, detail{"Referenz:", inv.ReferenceNumber})
	}
	labels, values := col.New(2), col.New(4)
	for i, d := range details {
		labels = labels.Add(bb.text(d.label, body(float64(i)*6)))
		values = values.Add(bb.text(d.value, body(float64(i)*6)))
	}
	detailsHeight := float64(len(details)) * 6

	bb.row(max(partnerHeight, detailsHeight)+4, left, labels, values)
	return bb.build()
}

// careRecipientBlock: nombre de la persona atendida o "-".
func (c composer) careRecipientBlock(in RenderInput) Block {
	bb := newBlock("care-recipient")
	name := "-"
	if in.Customer != nil {
		name = nonEmpty(in.Customer.Name, "-")
	}
	bb.row(6, col.New(12).Add(bb.text("PFLEGEBEDÜRFTIGER", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorLabel})))
	bb.row(18, col.New(12).Add(bb.text(name, props.Text{Size: 10})))
	return bb.build()
}

func (c composer) subjectBlock(in RenderInput) Block {
	bb := newBlock("subject")
	if in.Invoice.Subject == "" {
		return bb.build()
	}
	bb.row(10, col.New(12).Add(bb.text(in.Invoice.Subject, props.Text{Style: fontstyle.Bold, Size: 11})))
	return bb.build()
}

// headerTextBlock: texto introductorio partido en líneas de 5,5 mm.
func (c composer) headerTextBlock(in RenderInput) Block {
	bb := newBlock("header-text")
	if in.Invoice.HeaderText == "" {
		return bb.build()
	}
	for _, l := range wrapText(in.Invoice.HeaderText, headerWrapLen) {
		if l == "" {
			bb.space(5.5)
			continue
		}
		bb.row(5.5, col.New(12).Add(bb.text(l, props.Text{Size: 10, Color: colorBody})))
	}
	bb.space(16)
	return bb.build()
}

// summaryTableBlock: tabla Position/Betrag con las tres filas fijas.
func (c composer) summaryTableBlock(in RenderInput) Block {
	bb := newBlock("summary-table")
	inv := in.Invoice

	head := props.Text{Style: fontstyle.Bold, Size: 10, Color: colorWhite, Top: 2, Left: 2, Right: 2}
	headRight := head
	headRight.Align = align.Right
	bb.filledRow(8, c.accent,
		col.New(8).Add(bb.text("Position", head)),
		col.New(4).Add(bb.text("Betrag", headRight)),
	)

	rows := [][2]string{
		{"Vereinbarter Gesamtbetrag (Partner – Kunde)", money.FormatEUR(inv.AgreedTotalAmount)},
		{"Provisionssatz", money.FormatRate(inv.CommissionRate) + " %"},
		{"Vermittlungsprovision (Rechnungsbetrag)", money.FormatEUR(inv.CommissionAmount)},
	}
	label := props.Text{Size: 10, Top: 2, Left: 2}
	value := props.Text{Size: 10, Top: 2, Right: 2, Style: fontstyle.Bold, Align: align.Right}
	for i, r := range rows {
		cols := []core.Col{
			col.New(8).Add(bb.text(r[0], label)),
			col.New(4).Add(bb.text(r[1], value)),
		}
		if i%2 == 1 {
			bb.filledRow(8, colorAltRow, cols...)
		} else {
			bb.row(8, cols...)
		}
	}
	bb.space(12)
	return bb.build()
}

// totalBarBlock: barra destacada con el importe de la factura.
func (c composer) totalBarBlock(in RenderInput) Block {
	bb := newBlock("total-bar")
	p := props.Text{Style: fontstyle.Bold, Size: 12, Color: colorWhite, Top: 4, Left: 8, Right: 8}
	pr := p
	pr.Align = align.Right
	bb.filledRow(14, c.accent,
		col.New(8).Add(bb.text("Rechnungsbetrag (Gesamt)", p)),
		col.New(4).Add(bb.text(money.FormatEUR(in.Invoice.CommissionAmount), pr)),
	)
	bb.space(19)
	return bb.build()
}

// paymentBlock: plazo, IBAN, BIC y Verwendungszweck; opcionalmente un GiroCode.
func (c composer) paymentBlock(in RenderInput) Block {
	bb := newBlock("payment")
	inv := in.Invoice

	bb.rule(1, props.Line{Color: colorRule, Thickness: 0.3})
	bb.space(11)
	bb.row(7, col.New(12).Add(bb.text("ZAHLUNGSINFORMATIONEN", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorCompany})))

	p := func(top float64) props.Text { return props.Text{Size: 9, Color: colorCompany, Top: top} }
	width := 12
	var qr core.Col
	if c.giroCode {
		if payload := GiroCodePayload(c.company, inv); payload != "" {
			width = 9
			qr = col.New(3).Add(code.NewQr(payload, props.Rect{Percent: 90, Center: true}))
		}
	}
	texts := col.New(width).Add(
		bb.text(fmt.Sprintf("Bitte überweisen Sie den Betrag innerhalb von %d Tagen auf folgendes Konto:", inv.PaymentTermsDays), p(0)),
		bb.text("IBAN: "+c.company.IBAN, p(7)),
		bb.text("BIC: "+c.company.BIC, p(12)),
		bb.text("Verwendungszweck: "+inv.InvoiceNumber, p(17)),
	)
	if qr != nil {
		bb.row(35, texts, qr)
	} else {
		bb.row(35, texts)
	}
	return bb.build()
}

// footerBlock: datos legales y agradecimiento.
func (c composer) footerBlock(_ RenderInput) Block {
	bb := newBlock("footer")
	p := props.Text{Size: 8, Color: colorFooter}
	co := c.company
	bb.row(5, col.New(12).Add(bb.text(fmt.Sprintf("%s | %s | %s %s | %s", co.Name, co.Address, co.PostalCode, co.City, co.Country), p)))
	bb.row(6, col.New(12).Add(bb.text(fmt.Sprintf("USt-IdNr.: %s | Steuernr.: %s", co.VATID, co.TaxID), p)))
	italic := p
	italic.Style = fontstyle.Italic
	bb.row(5, col.New(12).Add(bb.text("Vielen Dank für Ihr Vertrauen. Bei Fragen stehen wir Ihnen gerne zur Verfügung.", italic)))
	return bb.build()
}
