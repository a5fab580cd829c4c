package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status estado del ciclo de vida de una factura de comisión.
type Status string

// Estados de la factura (valores persistidos en alemán, tal como los ve el usuario).
const (
	StatusDraft     Status = "entwurf"         // borrador, editable
	StatusOpen      Status = "offen"           // emitida, pendiente de pago
	StatusOverdue   Status = "faellig"         // vencida
	StatusPaid      Status = "bezahlt"         // pagada
	StatusFinalized Status = "festgeschrieben" // cerrada contablemente
)

var statusLabels = map[Status]string{
	StatusDraft:     "Entwurf",
	StatusOpen:      "Offen",
	StatusOverdue:   "Fällig",
	StatusPaid:      "Bezahlt",
	StatusFinalized: "Festgeschrieben",
}

// Valid indica si s es uno de los estados conocidos.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label texto para mostrar al usuario.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// InvoiceFilter selector de la lista de facturas.
type InvoiceFilter string

const (
	FilterAll       InvoiceFilter = "alle"
	FilterDraft     InvoiceFilter = "entwurf"
	FilterOpen      InvoiceFilter = "offen"
	FilterOverdue   InvoiceFilter = "faellig"
	FilterFinalized InvoiceFilter = "festgeschrieben"
)

// Valid indica si f es un filtro admitido ("bezahlt" no es seleccionable).
func (f InvoiceFilter) Valid() bool {
	switch f {
	case FilterAll, FilterDraft, FilterOpen, FilterOverdue, FilterFinalized:
		return true
	}
	return false
}

// Matches indica si una factura con estado s entra en el filtro.
func (f InvoiceFilter) Matches(s Status) bool {
	return f == FilterAll || Status(f) == s
}

// DiscountType cómo se interpreta InvoicePosition.Discount.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// InvoicePosition línea detallada. El flujo principal no la usa; se conserva en el modelo.
type InvoicePosition struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity" swaggertype:"number"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unitPrice" swaggertype:"number"`
	TaxRate      decimal.Decimal `json:"taxRate" swaggertype:"number"`
	Discount     decimal.Decimal `json:"discount" swaggertype:"number"`
	DiscountType DiscountType    `json:"discountType"`
}

// Invoice factura de comisión (Vermittlungsprovision) emitida a un Partner.
// CommissionAmount, DueDate, IsLocked y el Subject por defecto son valores derivados
// que se congelan al guardar.
type Invoice struct {
	ID                    string            `json:"id"`
	InvoiceNumber         string            `json:"invoiceNumber"`
	Status                Status            `json:"status"`
	PartnerID             string            `json:"partnerId"`
	CustomerID            string            `json:"customerId"`
	AgreedTotalAmount     decimal.Decimal   `json:"agreedTotalAmount" swaggertype:"number"`
	CommissionRate        decimal.Decimal   `json:"commissionRate" swaggertype:"number"`
	CommissionAmount      decimal.Decimal   `json:"commissionAmount" swaggertype:"number"`
	InvoiceDate           Date              `json:"invoiceDate" swaggertype:"string" format:"date"`
	PerformancePeriodFrom Date              `json:"performancePeriodFrom" swaggertype:"string" format:"date"`
	PerformancePeriodTo   Date              `json:"performancePeriodTo" swaggertype:"string" format:"date"`
	DueDate               Date              `json:"dueDate" swaggertype:"string" format:"date"`
	ReferenceNumber       string            `json:"referenceNumber,omitempty"`
	Subject               string            `json:"subject"`
	HeaderText            string            `json:"headerText"`
	Positions             []InvoicePosition `json:"positions"`
	PaymentTermsDays      int               `json:"paymentTermsDays"`
	IsLocked              bool              `json:"isLocked"`
	PaidAmount            *decimal.Decimal  `json:"paidAmount,omitempty" swaggertype:"number"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}

// Clone copia profunda (posiciones y PaidAmount incluidos).
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Positions = append([]InvoicePosition(nil), inv.Positions...)
	if out.Positions == nil {
		out.Positions = []InvoicePosition{}
	}
	if inv.PaidAmount != nil {
		p := *inv.PaidAmount
		out.PaidAmount = &p
	}
	return &out
}

// HasPerformancePeriod ambos extremos del Leistungszeitraum informados.
func (inv *Invoice) HasPerformancePeriod() bool {
	return !inv.PerformancePeriodFrom.IsZero() && !inv.PerformancePeriodTo.IsZero()
}

// InvoicePatch actualización parcial; solo se aplican los campos no nil.
type InvoicePatch struct {
	InvoiceNumber         *string
	Status                *Status
	PartnerID             *string
	CustomerID            *string
	AgreedTotalAmount     *decimal.Decimal
	CommissionRate        *decimal.Decimal
	InvoiceDate           *Date
	PerformancePeriodFrom *Date
	PerformancePeriodTo   *Date
	ReferenceNumber       *string
	Subject               *string
	HeaderText            *string
	Positions             *[]InvoicePosition
	PaymentTermsDays      *int
	PaidAmount            *decimal.Decimal
}

// IsEmpty indica que el patch no trae ningún campo.
func (p InvoicePatch) IsEmpty() bool {
	return p == InvoicePatch{}
}
