package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/pkg/money"
)

// DefaultPaymentTermsDays plazo de pago cuando no se indica otro.
const DefaultPaymentTermsDays = 14

// DefaultHeaderText texto introductorio por defecto de una factura nueva.
const DefaultHeaderText = `Sehr geehrte Damen und Herren,

hiermit berechnen wir unsere Vermittlungsprovision für die 24-Stunden-Pflege.

Bitte entnehmen Sie die Details der nachfolgenden Aufstellung.`

// CommissionAmount round2(agreed × rate / 100).
func CommissionAmount(agreed, rate decimal.Decimal) decimal.Decimal {
	return money.Percent(agreed, rate)
}

// DueDate fecha de factura + días naturales.
func DueDate(invoiceDate entity.Date, days int) entity.Date {
	return invoiceDate.AddDays(days)
}

// DefaultSubject asunto por defecto a partir del número de factura.
func DefaultSubject(invoiceNumber string) string {
	return fmt.Sprintf("Rechnung Nr. %s – Vermittlungsprovision", invoiceNumber)
}

// BuildHeaderText párrafo narrativo con el nombre del cliente y los importes.
func BuildHeaderText(customerName string, agreed, rate, commission decimal.Decimal) string {
	return fmt.Sprintf(`Sehr geehrte Damen und Herren,

hiermit berechnen wir unsere Vermittlungsprovision für die 24-Stunden-Pflege von %s.

Vereinbarter Gesamtbetrag (Partner – Kunde): %s
Provisionssatz: %s %%
Rechnungsbetrag: %s`,
		customerName, money.FormatEUR(agreed), money.FormatRate(rate), money.FormatEUR(commission))
}

// RegenerateHeaderText reconstruye el texto solo si hay cliente y un importe acordado positivo.
// El segundo valor indica si se generó.
func RegenerateHeaderText(inv *entity.Invoice, customer *entity.Customer) (string, bool) {
	if customer == nil || !inv.AgreedTotalAmount.GreaterThan(decimal.Zero) {
		return "", false
	}
	commission := CommissionAmount(inv.AgreedTotalAmount, inv.CommissionRate)
	return BuildHeaderText(customer.Name, inv.AgreedTotalAmount, inv.CommissionRate, commission), true
}

// IsLocked una factura deja de ser editable en cuanto sale de borrador.
func IsLocked(s entity.Status) bool {
	return s != entity.StatusDraft
}

// ApplyDerived escribe en inv todos los valores derivados.
func ApplyDerived(inv *entity.Invoice) {
	inv.CommissionAmount = CommissionAmount(inv.AgreedTotalAmount, inv.CommissionRate)
	inv.DueDate = DueDate(inv.InvoiceDate, inv.PaymentTermsDays)
	inv.IsLocked = IsLocked(inv.Status)
	if strings.TrimSpace(inv.Subject) == "" && inv.InvoiceNumber != "" {
		inv.Subject = DefaultSubject(inv.InvoiceNumber)
	}
	if inv.Positions == nil {
		inv.Positions = []entity.InvoicePosition{}
	}
}

// ApplyPatch fusiona los campos presentes y recalcula solo los derivados que dependen de ellos.
// UpdatedAt se refresca siempre. Un asunto que sigue siendo el de por defecto
// acompaña al número cuando este cambia; uno escrito a mano se respeta.
func ApplyPatch(inv *entity.Invoice, p entity.InvoicePatch, now time.Time) {
	if p.InvoiceNumber != nil {
		prev := inv.InvoiceNumber
		inv.InvoiceNumber = *p.InvoiceNumber
		if p.Subject == nil && inv.InvoiceNumber != "" && isDefaultSubject(inv.Subject, prev) {
			inv.Subject = DefaultSubject(inv.InvoiceNumber)
		}
	}
	if p.Status != nil {
		inv.Status = *p.Status
		inv.IsLocked = IsLocked(inv.Status)
	}
	if p.PartnerID != nil {
		inv.PartnerID = *p.PartnerID
	}
	if p.CustomerID != nil {
		inv.CustomerID = *p.CustomerID
	}
	if p.AgreedTotalAmount != nil {
		inv.AgreedTotalAmount = *p.AgreedTotalAmount
	}
	if p.CommissionRate != nil {
		inv.CommissionRate = *p.CommissionRate
	}
	if p.AgreedTotalAmount != nil || p.CommissionRate != nil {
		inv.CommissionAmount = CommissionAmount(inv.AgreedTotalAmount, inv.CommissionRate)
	}
	if p.InvoiceDate != nil {
		inv.InvoiceDate = *p.InvoiceDate
	}
	if p.PaymentTermsDays != nil {
		inv.PaymentTermsDays = *p.PaymentTermsDays
	}
	if p.InvoiceDate != nil || p.PaymentTermsDays != nil {
		inv.DueDate = DueDate(inv.InvoiceDate, inv.PaymentTermsDays)
	}
	if p.PerformancePeriodFrom != nil {
		inv.PerformancePeriodFrom = *p.PerformancePeriodFrom
	}
	if p.PerformancePeriodTo != nil {
		inv.PerformancePeriodTo = *p.PerformancePeriodTo
	}
	if p.ReferenceNumber != nil {
		inv.ReferenceNumber = *p.ReferenceNumber
	}
	if p.Subject != nil {
		inv.Subject = *p.Subject
		if strings.TrimSpace(inv.Subject) == "" {
			inv.Subject = DefaultSubject(inv.InvoiceNumber)
		}
	}
	if p.HeaderText != nil {
		inv.HeaderText = *p.HeaderText
	}
	if p.Positions != nil {
		inv.Positions = append([]entity.InvoicePosition{}, (*p.Positions)...)
	}
	if p.PaidAmount != nil {
		paid := *p.PaidAmount
		inv.PaidAmount = &paid
	}
	inv.UpdatedAt = now
}

func isDefaultSubject(subject, invoiceNumber string) bool {
	return strings.TrimSpace(subject) == "" || subject == DefaultSubject(invoiceNumber)
}

// OpenAmount importe pendiente: 0 si está pagada, si no comisión − pagado.
func OpenAmount(inv *entity.Invoice) decimal.Decimal {
	if inv.Status == entity.StatusPaid {
		return decimal.Zero
	}
	paid := decimal.Zero
	if inv.PaidAmount != nil {
		paid = *inv.PaidAmount
	}
	return money.Round2(inv.CommissionAmount.Sub(paid))
}
