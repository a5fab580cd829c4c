package billing

import (
	"context"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
)

// InvoicePDFGenerator genera el PDF de una factura. Partner y Customer pueden ser nil
// (referencias colgantes); el generador imprime "-" en su lugar.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, partner *entity.Partner, customer *entity.Customer) ([]byte, error)
}

// PreviewSpool guarda una vista previa efímera, la abre y la elimina pasado un tiempo.
// Devuelve la ruta del temporal.
type PreviewSpool interface {
	Preview(ctx context.Context, stem string, content []byte) (string, error)
}
