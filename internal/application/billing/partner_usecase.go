package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/application/dto"
	"github.com/jhoicas/Rechnungen-api/internal/domain"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/domain/repository"
)

// PartnerUseCase casos de uso para socios de cooperación.
type PartnerUseCase struct {
	repo repository.PartnerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

// Create da de alta un socio; nombre obligatorio y tipo de comisión en [0, 100].
func (uc *PartnerUseCase) Create(in dto.PartnerRequest) (*entity.Partner, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if err := validateRate(in.CommissionRate); err != nil {
		return nil, err
	}
	p := &entity.Partner{}
	in.Patch().Apply(p)
	return uc.repo.AddPartner(p)
}

// List lista los socios en orden de alta.
func (uc *PartnerUseCase) List() []*entity.Partner {
	return uc.repo.ListPartners()
}

// Get devuelve el socio o domain.ErrNotFound.
func (uc *PartnerUseCase) Get(id string) (*entity.Partner, error) {
	p, ok := uc.repo.GetPartner(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Update aplica los campos presentes. Las facturas existentes conservan su tipo.
func (uc *PartnerUseCase) Update(id string, in dto.PartnerRequest) (*entity.Partner, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
	}
	if err := validateRate(in.CommissionRate); err != nil {
		return nil, err
	}
	p, err := uc.repo.UpdatePartner(id, in.Patch())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func validateRate(rate *dto.Amount) error {
	if rate == nil {
		return nil
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tipo de comisión fuera de rango (%s)", domain.ErrInvalidInput, rate.String())
	}
	return nil
}
