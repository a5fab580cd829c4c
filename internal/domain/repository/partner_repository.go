package repository

import "github.com/jhoicas/Rechnungen-api/internal/domain/entity"

// PartnerRepository define el puerto para socios de cooperación. No hay borrado.
type PartnerRepository interface {
	ListPartners() []*entity.Partner
	GetPartner(id string) (*entity.Partner, bool)
	AddPartner(p *entity.Partner) (*entity.Partner, error)
	// UpdatePartner devuelve (nil, nil) si el id no existe.
	UpdatePartner(id string, patch entity.PartnerPatch) (*entity.Partner, error)
}
