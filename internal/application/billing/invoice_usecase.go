package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/application/dto"
	"github.com/jhoicas/Rechnungen-api/internal/domain"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/domain/invoicing"
	"github.com/jhoicas/Rechnungen-api/internal/domain/repository"
	"github.com/jhoicas/Rechnungen-api/pkg/money"
)

// InvoiceUseCase casos de uso de las facturas de comisión.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	partners  repository.PartnerRepository
	customers repository.CustomerRepository
	now       func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. now nil usa time.Now.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	partners repository.PartnerRepository,
	customers repository.CustomerRepository,
	now func() time.Time,
) *InvoiceUseCase {
	if now == nil {
		now = time.Now
	}
	return &InvoiceUseCase{invoices: invoices, partners: partners, customers: customers, now: now}
}

// Draft construye (sin guardar) la factura que resultaría de la petición: valores por defecto
// del formulario, tipo de comisión del socio si no se indica otro y valores derivados.
func (uc *InvoiceUseCase) Draft(in dto.InvoiceRequest) (*entity.Invoice, error) {
	now := uc.now()
	var partner *entity.Partner
	if in.PartnerID != nil {
		partner, _ = uc.partners.GetPartner(*in.PartnerID)
	}
	inv := invoicing.NewInvoiceFromPartner(partner, entity.DateOf(now))
	invoicing.ApplyPatch(inv, in.Patch(), now)
	invoicing.ApplyDerived(inv)

	if err := invoicing.ValidateInvoice(inv); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return inv, nil
}

// Create guarda una factura nueva. Si no trae número se asigna el siguiente.
func (uc *InvoiceUseCase) Create(in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.Draft(in)
	if err != nil {
		return nil, err
	}
	saved, err := uc.invoices.AddInvoice(inv)
	if err != nil {
		return nil, err
	}
	return uc.response(saved), nil
}

// Get devuelve la factura o domain.ErrNotFound.
func (uc *InvoiceUseCase) Get(id string) (*dto.InvoiceResponse, error) {
	inv, ok := uc.invoices.GetInvoice(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.response(inv), nil
}

// Update aplica los campos presentes. La petición se valida sobre una copia antes de guardar.
func (uc *InvoiceUseCase) Update(id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	current, ok := uc.invoices.GetInvoice(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch := in.Patch()
	if patch.IsEmpty() {
		return uc.response(current), nil
	}

	probe := current.Clone()
	invoicing.ApplyPatch(probe, patch, uc.now())
	if err := invoicing.ValidateInvoice(probe); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	updated, err := uc.invoices.UpdateInvoice(id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return uc.response(updated), nil
}

// SetStatus cambia el estado; cualquier estado distinto de "entwurf" bloquea la factura.
func (uc *InvoiceUseCase) SetStatus(id string, status entity.Status) (*dto.InvoiceResponse, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	return uc.Update(id, dto.InvoiceRequest{Status: &status})
}

// RegenerateHeader reconstruye el texto introductorio con el cliente y los importes actuales.
// Sin cliente o sin importe acordado la factura queda igual y regenerated es false.
func (uc *InvoiceUseCase) RegenerateHeader(id string) (*dto.HeaderTextResponse, error) {
	inv, ok := uc.invoices.GetInvoice(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	customer, _ := uc.customers.GetCustomer(inv.CustomerID)
	text, ok := invoicing.RegenerateHeaderText(inv, customer)
	if !ok {
		return &dto.HeaderTextResponse{Regenerated: false, Invoice: uc.response(inv)}, nil
	}
	updated, err := uc.Update(id, dto.InvoiceRequest{HeaderText: &text})
	if err != nil {
		return nil, err
	}
	return &dto.HeaderTextResponse{Regenerated: true, Invoice: updated}, nil
}

// Delete borra la factura; domain.ErrNotFound si no existe.
func (uc *InvoiceUseCase) Delete(id string) error {
	deleted, err := uc.invoices.DeleteInvoice(id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// List facturas del filtro indicado; vacío usa el filtro guardado. Incluye los totales.
func (uc *InvoiceUseCase) List(filter entity.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	var list []*entity.Invoice
	switch {
	case filter == "":
		filter = uc.invoices.Filter()
		list = uc.invoices.ListFiltered()
	case !filter.Valid():
		return nil, fmt.Errorf("%w: filtro desconocido %q", domain.ErrInvalidInput, filter)
	default:
		for _, inv := range uc.invoices.ListInvoices() {
			if filter.Matches(inv.Status) {
				list = append(list, inv)
			}
		}
	}

	out := &dto.InvoiceListResponse{
		Filter:   filter,
		Invoices: make([]*dto.InvoiceResponse, 0, len(list)),
	}
	for _, inv := range list {
		out.Invoices = append(out.Invoices, uc.response(inv))
	}
	out.Summary = summarize(out.Invoices)
	return out, nil
}

// Summary totales por estado sobre todas las facturas.
func (uc *InvoiceUseCase) Summary() *dto.SummaryResponse {
	all := uc.invoices.ListInvoices()
	order := []entity.Status{entity.StatusDraft, entity.StatusOpen, entity.StatusOverdue, entity.StatusPaid, entity.StatusFinalized}
	byStatus := make(map[entity.Status][]*dto.InvoiceResponse, len(order))
	rows := make([]*dto.InvoiceResponse, 0, len(all))
	for _, inv := range all {
		r := uc.response(inv)
		byStatus[inv.Status] = append(byStatus[inv.Status], r)
		rows = append(rows, r)
	}

	out := &dto.SummaryResponse{Total: summarize(rows)}
	for _, s := range order {
		sum := summarize(byStatus[s])
		out.ByStatus = append(out.ByStatus, dto.StatusSummary{
			Status:     s,
			Label:      s.Label(),
			Count:      sum.Count,
			Commission: sum.CommissionTotal,
			Open:       sum.OpenTotal,
		})
	}
	return out
}

// NextNumber número que recibiría la próxima factura.
func (uc *InvoiceUseCase) NextNumber() string {
	return uc.invoices.NextInvoiceNumber()
}

// Filter filtro guardado de la lista.
func (uc *InvoiceUseCase) Filter() entity.InvoiceFilter {
	return uc.invoices.Filter()
}

// SetFilter guarda el filtro de la lista.
func (uc *InvoiceUseCase) SetFilter(f entity.InvoiceFilter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: filtro desconocido %q", domain.ErrInvalidInput, f)
	}
	return uc.invoices.SetFilter(f)
}

func (uc *InvoiceUseCase) response(inv *entity.Invoice) *dto.InvoiceResponse {
	partner, _ := uc.partners.GetPartner(inv.PartnerID)
	customer, _ := uc.customers.GetCustomer(inv.CustomerID)
	return dto.NewInvoiceResponse(inv, partner, customer)
}

func summarize(rows []*dto.InvoiceResponse) dto.ListSummary {
	sum := dto.ListSummary{Count: len(rows), CommissionTotal: decimal.Zero, OpenTotal: decimal.Zero}
	for _, r := range rows {
		sum.CommissionTotal = sum.CommissionTotal.Add(r.CommissionAmount)
		sum.OpenTotal = sum.OpenTotal.Add(r.OpenAmount)
	}
	sum.CommissionTotal = money.Round2(sum.CommissionTotal)
	sum.OpenTotal = money.Round2(sum.OpenTotal)
	return sum
}
