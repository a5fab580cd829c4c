package entity

// Customer persona atendida (pflegebedürftige Person) para la que se hizo la colocación.
type Customer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// CustomerPatch campos opcionales para una actualización parcial.
type CustomerPatch struct {
	Name       *string
	Address    *string
	PostalCode *string
	City       *string
	Country    *string
	Email      *string
	Phone      *string
}

// Apply copia sobre c los campos presentes en el patch.
func (cp CustomerPatch) Apply(c *Customer) {
	setString(&c.Name, cp.Name)
	setString(&c.Address, cp.Address)
	setString(&c.PostalCode, cp.PostalCode)
	setString(&c.City, cp.City)
	setString(&c.Country, cp.Country)
	setString(&c.Email, cp.Email)
	setString(&c.Phone, cp.Phone)
}
