package invoicing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
)

var (
	// ErrInvalidPosition agrupa errores de validación de una posición.
	ErrInvalidPosition = errors.New("posición de factura inválida")
	// ErrInvalidInvoice agrupa errores de validación de una factura.
	ErrInvalidInvoice = errors.New("factura inválida")
)

var hundred = decimal.NewFromInt(100)

// ValidatePosition comprueba cantidad ≥ 0, tipo de impuesto en [0,100] y descuento ≥ 0.
// La calculadora no la invoca; es para quien quiera imponer las reglas al recibir datos.
func ValidatePosition(p entity.InvoicePosition) error {
	var errs []error
	if p.Quantity.IsNegative() {
		errs = append(errs, fmt.Errorf("cantidad negativa (%s)", p.Quantity))
	}
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(hundred) {
		errs = append(errs, fmt.Errorf("tipo de impuesto fuera de rango (%s)", p.TaxRate))
	}
	if p.Discount.IsNegative() {
		errs = append(errs, fmt.Errorf("descuento negativo (%s)", p.Discount))
	}
	switch p.DiscountType {
	case entity.DiscountPercent, entity.DiscountAmount, "":
	default:
		errs = append(errs, fmt.Errorf("tipo de descuento desconocido %q", p.DiscountType))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidPosition}, errs...)...)
	}
	return nil
}

// ValidateInvoice comprueba los datos de entrada de una factura (estado, importes, plazo y posiciones).
func ValidateInvoice(inv *entity.Invoice) error {
	if inv == nil {
		return fmt.Errorf("%w: factura nula", ErrInvalidInvoice)
	}
	var errs []error
	if inv.Status != "" && !inv.Status.Valid() {
		errs = append(errs, fmt.Errorf("estado desconocido %q", inv.Status))
	}
	if inv.AgreedTotalAmount.IsNegative() {
		errs = append(errs, fmt.Errorf("importe acordado negativo (%s)", inv.AgreedTotalAmount))
	}
	if inv.CommissionRate.IsNegative() || inv.CommissionRate.GreaterThan(hundred) {
		errs = append(errs, fmt.Errorf("tipo de comisión fuera de rango (%s)", inv.CommissionRate))
	}
	if inv.PaymentTermsDays < 0 {
		errs = append(errs, fmt.Errorf("plazo de pago negativo (%d)", inv.PaymentTermsDays))
	}
	for i, p := range inv.Positions {
		if err := ValidatePosition(p); err != nil {
			errs = append(errs, fmt.Errorf("posición %d: %w", i+1, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidInvoice}, errs...)...)
	}
	return nil
}
