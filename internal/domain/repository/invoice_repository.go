package repository

import "github.com/jhoicas/Rechnungen-api/internal/domain/entity"

// InvoiceRepository define el puerto para facturas, el filtro de la lista y la numeración.
// Las búsquedas devuelven (nil, false) si no existe; no es un error.
type InvoiceRepository interface {
	ListFiltered() []*entity.Invoice
	ListInvoices() []*entity.Invoice
	GetInvoice(id string) (*entity.Invoice, bool)
	AddInvoice(inv *entity.Invoice) (*entity.Invoice, error)
	// UpdateInvoice devuelve (nil, nil) si el id no existe.
	UpdateInvoice(id string, patch entity.InvoicePatch) (*entity.Invoice, error)
	DeleteInvoice(id string) (bool, error)
	NextInvoiceNumber() string
	Filter() entity.InvoiceFilter
	SetFilter(f entity.InvoiceFilter) error
}
