package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/domain/invoicing"
)

// InvoiceRequest body para POST /api/invoices, PATCH /api/invoices/:id y la vista previa
// de un borrador. Los campos ausentes (nil) no se tocan.
type InvoiceRequest struct {
	InvoiceNumber         *string                   `json:"invoiceNumber,omitempty"`
	Status                *entity.Status            `json:"status,omitempty"`
	PartnerID             *string                   `json:"partnerId,omitempty"`
	CustomerID            *string                   `json:"customerId,omitempty"`
	AgreedTotalAmount     *Amount                   `json:"agreedTotalAmount,omitempty" swaggertype:"number"`
	CommissionRate        *Amount                   `json:"commissionRate,omitempty" swaggertype:"number"`
	InvoiceDate           *entity.Date              `json:"invoiceDate,omitempty" swaggertype:"string" format:"date"`
	PerformancePeriodFrom *entity.Date              `json:"performancePeriodFrom,omitempty" swaggertype:"string" format:"date"`
	PerformancePeriodTo   *entity.Date              `json:"performancePeriodTo,omitempty" swaggertype:"string" format:"date"`
	ReferenceNumber       *string                   `json:"referenceNumber,omitempty"`
	Subject               *string                   `json:"subject,omitempty"`
	HeaderText            *string                   `json:"headerText,omitempty"`
	Positions             *[]entity.InvoicePosition `json:"positions,omitempty"`
	PaymentTermsDays      *Days                     `json:"paymentTermsDays,omitempty"`
	PaidAmount            *Amount                   `json:"paidAmount,omitempty" swaggertype:"number"`
}

// Patch traduce la petición al patch de dominio.
func (r InvoiceRequest) Patch() entity.InvoicePatch {
	return entity.InvoicePatch{
		InvoiceNumber:         r.InvoiceNumber,
		Status:                r.Status,
		PartnerID:             r.PartnerID,
		CustomerID:            r.CustomerID,
		AgreedTotalAmount:     r.AgreedTotalAmount.Ptr(),
		CommissionRate:        r.CommissionRate.Ptr(),
		InvoiceDate:           r.InvoiceDate,
		PerformancePeriodFrom: r.PerformancePeriodFrom,
		PerformancePeriodTo:   r.PerformancePeriodTo,
		ReferenceNumber:       r.ReferenceNumber,
		Subject:               r.Subject,
		HeaderText:            r.HeaderText,
		Positions:             r.Positions,
		PaymentTermsDays:      r.PaymentTermsDays.Ptr(),
		PaidAmount:            r.PaidAmount.Ptr(),
	}
}

// StatusRequest body para PUT /api/invoices/:id/status.
type StatusRequest struct {
	Status entity.Status `json:"status"`
}

// FilterRequest body para PUT /api/filter.
type FilterRequest struct {
	Filter entity.InvoiceFilter `json:"filter"`
}

// FilterResponse filtro activo de la lista.
type FilterResponse struct {
	Filter entity.InvoiceFilter `json:"filter"`
}

// InvoiceResponse factura con los datos calculados para la lista y el detalle.
type InvoiceResponse struct {
	*entity.Invoice
	StatusLabel  string          `json:"statusLabel"`
	OpenAmount   decimal.Decimal `json:"openAmount" swaggertype:"number"`
	PartnerName  string          `json:"partnerName,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
}

// NewInvoiceResponse enriquece la factura; partner y customer pueden ser nil.
func NewInvoiceResponse(inv *entity.Invoice, partner *entity.Partner, customer *entity.Customer) *InvoiceResponse {
	r := &InvoiceResponse{
		Invoice:     inv,
		StatusLabel: inv.Status.Label(),
		OpenAmount:  invoicing.OpenAmount(inv),
	}
	if partner != nil {
		r.PartnerName = partner.Name
	}
	if customer != nil {
		r.CustomerName = customer.Name
	}
	return r
}

// ListSummary totales de la lista mostrada.
type ListSummary struct {
	Count           int             `json:"count"`
	CommissionTotal decimal.Decimal `json:"commissionTotal" swaggertype:"number"`
	OpenTotal       decimal.Decimal `json:"openTotal" swaggertype:"number"`
}

// InvoiceListResponse respuesta de GET /api/invoices.
type InvoiceListResponse struct {
	Filter   entity.InvoiceFilter `json:"filter"`
	Invoices []*InvoiceResponse   `json:"invoices"`
	Summary  ListSummary          `json:"summary"`
}

// StatusSummary totales por estado.
type StatusSummary struct {
	Status     entity.Status   `json:"status"`
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	Commission decimal.Decimal `json:"commission" swaggertype:"number"`
	Open       decimal.Decimal `json:"open" swaggertype:"number"`
}

// SummaryResponse respuesta de GET /api/invoices/summary.
type SummaryResponse struct {
	ByStatus []StatusSummary `json:"byStatus"`
	Total    ListSummary     `json:"total"`
}

// HeaderTextResponse resultado de regenerar el texto introductorio.
type HeaderTextResponse struct {
	Regenerated bool             `json:"regenerated"`
	Invoice     *InvoiceResponse `json:"invoice"`
}
