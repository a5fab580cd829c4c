package entity

// Company perfil estático de la empresa emisora. No se persiste: llega desde la configuración
// y solo lo consume el generador de documentos.
type Company struct {
	Name         string
	Wordmark     string // texto de marca cuando no hay logo
	Address      string
	PostalCode   string
	City         string
	Country      string
	LogoPath     string
	LogoURL      string
	PrimaryColor string
	BankName     string
	IBAN         string
	BIC          string
	TaxID        string // Steuernummer
	VATID        string // USt-IdNr.
}
