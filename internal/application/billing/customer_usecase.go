package billing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Rechnungen-api/internal/application/dto"
	"github.com/jhoicas/Rechnungen-api/internal/domain"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (personas atendidas).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. El nombre es obligatorio.
func (uc *CustomerUseCase) Create(in dto.CustomerRequest) (*entity.Customer, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	c := &entity.Customer{}
	in.Patch().Apply(c)
	return uc.repo.AddCustomer(c)
}

// List lista los clientes en orden de alta.
func (uc *CustomerUseCase) List() []*entity.Customer {
	return uc.repo.ListCustomers()
}

// Get devuelve el cliente o domain.ErrNotFound.
func (uc *CustomerUseCase) Get(id string) (*entity.Customer, error) {
	c, ok := uc.repo.GetCustomer(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Update aplica los campos presentes.
func (uc *CustomerUseCase) Update(id string, in dto.CustomerRequest) (*entity.Customer, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
	}
	c, err := uc.repo.UpdateCustomer(id, in.Patch())
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
