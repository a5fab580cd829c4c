package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Rechnungen-api/internal/application/dto"
	"github.com/jhoicas/Rechnungen-api/internal/domain"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/domain/invoicing"
	"github.com/jhoicas/Rechnungen-api/internal/domain/repository"
)

// Mode destino del documento generado.
type Mode string

const (
	ModeSave    Mode = "save"    // documento persistente Rechnung-<nº>.pdf
	ModePreview Mode = "preview" // temporal que se abre y se borra al rato
)

// ParseMode interpreta el modo; vacío es ModeSave.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSave:
		return ModeSave, nil
	case ModePreview:
		return ModePreview, nil
	}
	return "", fmt.Errorf("%w: modo desconocido %q", domain.ErrInvalidInput, s)
}

// Document PDF generado. PreviewPath solo se rellena si el spool guardó una vista previa.
type Document struct {
	Filename    string
	Content     []byte
	Mode        Mode
	PreviewPath string
}

// Filename nombre del documento de una factura.
func Filename(inv *entity.Invoice) string {
	return "Rechnung-" + inv.InvoiceNumber + ".pdf"
}

// DocumentUseCase genera el PDF de las facturas guardadas y de los borradores sin guardar.
type DocumentUseCase struct {
	invoices  repository.InvoiceRepository
	partners  repository.PartnerRepository
	customers repository.CustomerRepository
	drafts    *InvoiceUseCase
	generator InvoicePDFGenerator
	spool     PreviewSpool
	log       zerolog.Logger
}

// NewDocumentUseCase construye el caso de uso. spool puede ser nil (la vista previa
// solo devuelve los bytes, p. ej. en el servidor HTTP).
func NewDocumentUseCase(
	invoices repository.InvoiceRepository,
	partners repository.PartnerRepository,
	customers repository.CustomerRepository,
	drafts *InvoiceUseCase,
	generator InvoicePDFGenerator,
	spool PreviewSpool,
	log zerolog.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoices:  invoices,
		partners:  partners,
		customers: customers,
		drafts:    drafts,
		generator: generator,
		spool:     spool,
		log:       log,
	}
}

// Render genera el documento de una factura guardada.
func (uc *DocumentUseCase) Render(ctx context.Context, id string, mode Mode) (*Document, error) {
	inv, ok := uc.invoices.GetInvoice(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.render(ctx, inv, mode)
}

// RenderDraft vista previa de un formulario sin guardar. Si no trae número se usa el
// siguiente libre, sin reservarlo.
func (uc *DocumentUseCase) RenderDraft(ctx context.Context, in dto.InvoiceRequest) (*Document, error) {
	inv, err := uc.drafts.Draft(in)
	if err != nil {
		return nil, err
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = uc.invoices.NextInvoiceNumber()
		invoicing.ApplyDerived(inv)
	}
	return uc.render(ctx, inv, ModePreview)
}

// SendAndRender marca la factura como "offen" (queda bloqueada) y genera el documento
// en modo guardar.
func (uc *DocumentUseCase) SendAndRender(ctx context.Context, id string) (*Document, *dto.InvoiceResponse, error) {
	resp, err := uc.drafts.SetStatus(id, entity.StatusOpen)
	if err != nil {
		return nil, nil, err
	}
	doc, err := uc.render(ctx, resp.Invoice, ModeSave)
	if err != nil {
		return nil, nil, err
	}
	return doc, resp, nil
}

func (uc *DocumentUseCase) render(ctx context.Context, inv *entity.Invoice, mode Mode) (*Document, error) {
	partner, _ := uc.partners.GetPartner(inv.PartnerID)
	customer, _ := uc.customers.GetCustomer(inv.CustomerID)

	content, err := uc.generator.GenerateInvoicePDF(ctx, inv, partner, customer)
	if err != nil {
		return nil, fmt.Errorf("documento: generar PDF de %s: %w", inv.InvoiceNumber, err)
	}
	doc := &Document{Filename: Filename(inv), Content: content, Mode: mode}

	if mode == ModePreview && uc.spool != nil {
		path, err := uc.spool.Preview(ctx, "Rechnung-"+inv.InvoiceNumber, content)
		if err != nil {
			return nil, fmt.Errorf("documento: vista previa de %s: %w", inv.InvoiceNumber, err)
		}
		doc.PreviewPath = path
		uc.log.Info().Str("invoice", inv.InvoiceNumber).Str("path", path).Msg("vista previa generada")
	}
	return doc, nil
}
