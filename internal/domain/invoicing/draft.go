package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
)

// NewInvoiceFromPartner borrador con los valores por defecto del formulario: fecha de hoy,
// plazo de 14 días, texto introductorio estándar y el tipo de comisión del socio (0 sin socio).
func NewInvoiceFromPartner(partner *entity.Partner, today entity.Date) *entity.Invoice {
	paid := decimal.Zero
	inv := &entity.Invoice{
		Status:           entity.StatusDraft,
		InvoiceDate:      today,
		PaymentTermsDays: DefaultPaymentTermsDays,
		HeaderText:       DefaultHeaderText,
		Positions:        []entity.InvoicePosition{},
		PaidAmount:       &paid,
	}
	if partner != nil {
		inv.PartnerID = partner.ID
		inv.CommissionRate = partner.CommissionRate
	}
	return inv
}
