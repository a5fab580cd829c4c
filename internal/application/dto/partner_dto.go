package dto

import "github.com/jhoicas/Rechnungen-api/internal/domain/entity"

// PartnerRequest body para POST/PATCH /api/partners.
type PartnerRequest struct {
	Name            *string `json:"name,omitempty"`
	Address         *string `json:"address,omitempty"`
	AddressAddition *string `json:"addressAddition,omitempty"`
	PostalCode      *string `json:"postalCode,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	CommissionRate  *Amount `json:"commissionRate,omitempty" swaggertype:"number"`
}

func (r PartnerRequest) Patch() entity.PartnerPatch {
	return entity.PartnerPatch{
		Name:            r.Name,
		Address:         r.Address,
		AddressAddition: r.AddressAddition,
		PostalCode:      r.PostalCode,
		City:            r.City,
		Country:         r.Country,
		Email:           r.Email,
		Phone:           r.Phone,
		CommissionRate:  r.CommissionRate.Ptr(),
	}
}

// CustomerRequest body para POST/PATCH /api/customers.
type CustomerRequest struct {
	Name       *string `json:"name,omitempty"`
	Address    *string `json:"address,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	City       *string `json:"city,omitempty"`
	Country    *string `json:"country,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

func (r CustomerRequest) Patch() entity.CustomerPatch {
	return entity.CustomerPatch{
		Name:       r.Name,
		Address:    r.Address,
		PostalCode: r.PostalCode,
		City:       r.City,
		Country:    r.Country,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}
