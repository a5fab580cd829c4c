package state

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/domain/invoicing"
)

// Seed datos de ejemplo para un almacén vacío: un socio, un cliente y una factura en borrador.
func Seed(now time.Time) State {
	partner := &entity.Partner{
		ID:             "p1",
		Name:           "Pflegepartner Sp. z o.o.",
		Address:        "Al. Jana Pawla II 27",
		PostalCode:     "00-867",
		City:           "Warszawa",
		Country:        "Polska",
		Email:          "info@pflegepartner-direkt.de",
		CommissionRate: decimal.NewFromInt(11),
	}
	customer := &entity.Customer{ID: "c1", Name: "Maria Schmidt"}

	paid := decimal.Zero
	inv := &entity.Invoice{
		ID:                    "inv1",
		InvoiceNumber:         "RE-1341",
		Status:                entity.StatusDraft,
		PartnerID:             partner.ID,
		CustomerID:            customer.ID,
		AgreedTotalAmount:     decimal.NewFromInt(3890),
		CommissionRate:        decimal.NewFromInt(11),
		InvoiceDate:           entity.NewDate(2026, time.February, 24),
		PerformancePeriodFrom: entity.NewDate(2026, time.February, 1),
		PerformancePeriodTo:   entity.NewDate(2026, time.February, 28),
		PaymentTermsDays:      invoicing.DefaultPaymentTermsDays,
		PaidAmount:            &paid,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	invoicing.ApplyDerived(inv)
	inv.HeaderText = invoicing.BuildHeaderText("Frau "+customer.Name, inv.AgreedTotalAmount, inv.CommissionRate, inv.CommissionAmount)

	return State{
		Invoices:  []*entity.Invoice{inv},
		Partners:  []*entity.Partner{partner},
		Customers: []*entity.Customer{customer},
		Filter:    entity.FilterAll,
	}
}
