package entity

import "github.com/shopspring/decimal"

// Partner agencia de cooperación; es el destinatario de la factura de comisión.
type Partner struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	AddressAddition string          `json:"addressAddition,omitempty"`
	PostalCode      string          `json:"postalCode"`
	City            string          `json:"city"`
	Country         string          `json:"country"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	CommissionRate  decimal.Decimal `json:"commissionRate" swaggertype:"number"` // % por defecto para nuevas facturas
}

// PartnerPatch campos opcionales para una actualización parcial (nil = sin cambio).
type PartnerPatch struct {
	Name            *string
	Address         *string
	AddressAddition *string
	PostalCode      *string
	City            *string
	Country         *string
	Email           *string
	Phone           *string
	CommissionRate  *decimal.Decimal
}

// Apply copia sobre p los campos presentes en el patch.
func (pp PartnerPatch) Apply(p *Partner) {
	setString(&p.Name, pp.Name)
	setString(&p.Address, pp.Address)
	setString(&p.AddressAddition, pp.AddressAddition)
	setString(&p.PostalCode, pp.PostalCode)
	setString(&p.City, pp.City)
	setString(&p.Country, pp.Country)
	setString(&p.Email, pp.Email)
	setString(&p.Phone, pp.Phone)
	if pp.CommissionRate != nil {
		p.CommissionRate = *pp.CommissionRate
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
