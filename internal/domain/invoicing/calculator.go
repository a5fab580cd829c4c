// Package invoicing contiene las reglas de cálculo de las facturas de comisión:
// importes por línea, comisión, vencimiento, numeración y textos por defecto.
package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/pkg/money"
)

// Totals agregados de una lista de posiciones.
// TaxByRate agrupa el impuesto por tipo (clave: tipo en forma decimal canónica, ej. "19", "7").
type Totals struct {
	Net       decimal.Decimal
	Tax       decimal.Decimal
	Gross     decimal.Decimal
	TaxByRate map[string]decimal.Decimal
}

// PositionNet neto de una línea tras el descuento, redondeado a céntimos.
// No valida signos: cantidades o precios negativos producen el resultado aritmético.
func PositionNet(p entity.InvoicePosition) decimal.Decimal {
	base := p.Quantity.Mul(p.UnitPrice)
	if p.Discount.GreaterThan(decimal.Zero) {
		if p.DiscountType == entity.DiscountPercent {
			base = base.Mul(decimal.NewFromInt(1).Sub(p.Discount.Div(money.Hundred())))
		} else {
			base = base.Sub(p.Discount)
		}
	}
	return money.Round2(base)
}

// PositionTax impuesto de la línea sobre el neto ya redondeado.
func PositionTax(p entity.InvoicePosition) decimal.Decimal {
	return money.Percent(PositionNet(p), p.TaxRate)
}

// PositionGross neto + impuesto.
func PositionGross(p entity.InvoicePosition) decimal.Decimal {
	return money.Round2(PositionNet(p).Add(PositionTax(p)))
}

// CalculateTotals suma netos e impuestos por línea ya redondeados; el bruto sale de los totales.
func CalculateTotals(positions []entity.InvoicePosition) Totals {
	t := Totals{
		Net:       decimal.Zero,
		Tax:       decimal.Zero,
		Gross:     decimal.Zero,
		TaxByRate: make(map[string]decimal.Decimal),
	}
	for _, p := range positions {
		net := PositionNet(p)
		tax := PositionTax(p)
		t.Net = t.Net.Add(net)
		t.Tax = t.Tax.Add(tax)

		key := p.TaxRate.String()
		t.TaxByRate[key] = t.TaxByRate[key].Add(tax)
	}
	t.Net = money.Round2(t.Net)
	t.Tax = money.Round2(t.Tax)
	t.Gross = money.Round2(t.Net.Add(t.Tax))
	return t
}
