package repository

import "github.com/jhoicas/Rechnungen-api/internal/domain/entity"

// CustomerRepository define el puerto para clientes (personas atendidas).
type CustomerRepository interface {
	ListCustomers() []*entity.Customer
	GetCustomer(id string) (*entity.Customer, bool)
	AddCustomer(c *entity.Customer) (*entity.Customer, error)
	// UpdateCustomer devuelve (nil, nil) si el id no existe.
	UpdateCustomer(id string, patch entity.CustomerPatch) (*entity.Customer, error)
}
