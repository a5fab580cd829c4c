// Package memory implementa el repositorio en memoria de facturas, socios y clientes.
// Cada mutación efectiva serializa el estado completo y lo entrega al StateStore inyectado;
// el estado en memoria solo se sustituye si el guardado tuvo éxito.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Rechnungen-api/internal/domain"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/domain/invoicing"
	"github.com/jhoicas/Rechnungen-api/internal/domain/repository"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/state"
)

var (
	_ repository.InvoiceRepository  = (*InvoiceStore)(nil)
	_ repository.PartnerRepository  = (*InvoiceStore)(nil)
	_ repository.CustomerRepository = (*InvoiceStore)(nil)
)

const defaultSaveTimeout = 10 * time.Second

// InvoiceStore repositorio en memoria con persistencia write-through.
// Los registros guardados no se modifican nunca en sitio: una actualización sustituye el puntero.
type InvoiceStore struct {
	mu          sync.RWMutex
	st          state.State
	store       repository.StateStore
	key         string
	now         func() time.Time
	newID       func() string
	log         zerolog.Logger
	saveTimeout time.Duration
}

// Option configura el InvoiceStore.
type Option func(*InvoiceStore)

// WithClock reloj para createdAt/updatedAt (tests).
func WithClock(now func() time.Time) Option {
	return func(s *InvoiceStore) { s.now = now }
}

// WithIDGenerator generador de ids; por defecto UUID v4.
func WithIDGenerator(fn func() string) Option {
	return func(s *InvoiceStore) { s.newID = fn }
}

// WithLogger logger estructurado.
func WithLogger(l zerolog.Logger) Option {
	return func(s *InvoiceStore) { s.log = l }
}

// WithStorageKey clave bajo la que se guarda el estado.
func WithStorageKey(key string) Option {
	return func(s *InvoiceStore) { s.key = key }
}

// WithSaveTimeout plazo máximo de cada guardado.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *InvoiceStore) { s.saveTimeout = d }
}

// Open carga el estado desde store, lo migra si es antiguo y siembra los datos de ejemplo
// cuando no hay nada guardado. Con store nil el repositorio vive solo en memoria.
func Open(ctx context.Context, store repository.StateStore, opts ...Option) (*InvoiceStore, error) {
	s := &InvoiceStore{
		store:       store,
		key:         state.StorageKey,
		now:         time.Now,
		newID:       uuid.NewString,
		log:         zerolog.Nop(),
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if store == nil {
		s.st = state.Seed(s.now())
		return s, nil
	}

	blob, err := store.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("memory: cargar estado: %w: %w", domain.ErrPersistence, err)
	}

	if blob == nil {
		s.log.Info().Str("key", s.key).Msg("sin estado guardado; se cargan datos de ejemplo")
		seed := state.Seed(s.now())
		if err := s.save(ctx, seed); err != nil {
			return nil, err
		}
		s.st = seed
		return s, nil
	}

	st, res, err := state.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	s.log.Info().
		Str("key", s.key).
		Int("stored_version", res.StoredVersion).
		Int("invoices", len(st.Invoices)).
		Msg("estado cargado")

	if res.Migrated {
		s.log.Info().Int("from", res.StoredVersion).Int("to", state.CurrentVersion).Msg("estado migrado")
		if err := s.save(ctx, st); err != nil {
			return nil, err
		}
	}
	s.st = st
	return s, nil
}

// Flush vuelve a escribir el estado actual con la versión vigente.
func (s *InvoiceStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, s.st)
}

// Snapshot copia profunda del estado completo.
func (s *InvoiceStore) Snapshot() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.Clone()
}

func (s *InvoiceStore) save(ctx context.Context, st state.State) error {
	if s.store == nil {
		return nil
	}
	blob, err := state.Encode(st)
	if err != nil {
		return fmt.Errorf("memory: %w: %w", domain.ErrPersistence, err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()
	if err := s.store.Save(ctx, s.key, blob); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("no se pudo guardar el estado")
		return fmt.Errorf("memory: guardar estado: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// commit persiste next y, si todo fue bien, lo convierte en el estado vigente. Requiere s.mu.
func (s *InvoiceStore) commit(next state.State) error {
	if err := s.save(context.Background(), next); err != nil {
		return err
	}
	s.st = next
	return nil
}

// ── Facturas ────────────────────────────────────────────────────────────────

// Filter filtro actual de la lista.
func (s *InvoiceStore) Filter() entity.InvoiceFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.Filter
}

// SetFilter cambia el filtro; se persiste con el resto del estado.
func (s *InvoiceStore) SetFilter(f entity.InvoiceFilter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: filtro desconocido %q", domain.ErrInvalidInput, f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Filter == f {
		return nil
	}
	next := s.st
	next.Filter = f
	return s.commit(next)
}

// ListFiltered facturas que pasan el filtro actual, en orden de inserción.
func (s *InvoiceStore) ListFiltered() []*entity.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Invoice, 0, len(s.st.Invoices))
	for _, inv := range s.st.Invoices {
		if s.st.Filter.Matches(inv.Status) {
			out = append(out, inv.Clone())
		}
	}
	return out
}

// ListInvoices todas las facturas, en orden de inserción.
func (s *InvoiceStore) ListInvoices() []*entity.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Invoice, 0, len(s.st.Invoices))
	for _, inv := range s.st.Invoices {
		out = append(out, inv.Clone())
	}
	return out
}

// GetInvoice busca por id.
func (s *InvoiceStore) GetInvoice(id string) (*entity.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.invoiceIndex(id); i >= 0 {
		return s.st.Invoices[i].Clone(), true
	}
	return nil, false
}

// NextInvoiceNumber siguiente número libre según los números existentes.
func (s *InvoiceStore) NextInvoiceNumber() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return invoicing.NextInvoiceNumber(s.invoiceNumbers(""))
}

// AddInvoice da de alta la factura: número (si viene vacío), id, marcas de tiempo,
// estado por defecto "entwurf" y valores derivados.
func (s *InvoiceStore) AddInvoice(data *entity.Invoice) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := data.Clone()
	if rec.InvoiceNumber == "" {
		rec.InvoiceNumber = invoicing.NextInvoiceNumber(s.invoiceNumbers(""))
	} else if slices.Contains(s.invoiceNumbers(""), rec.InvoiceNumber) {
		return nil, fmt.Errorf("%w: número de factura %s ya existe", domain.ErrDuplicate, rec.InvoiceNumber)
	}
	if rec.Status == "" {
		rec.Status = entity.StatusDraft
	}
	now := s.now()
	rec.ID = s.newID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	invoicing.ApplyDerived(rec)

	next := s.st
	next.Invoices = append(slices.Clip(s.st.Invoices), rec)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	s.log.Debug().Str("invoice_id", rec.ID).Str("number", rec.InvoiceNumber).Msg("factura creada")
	return rec.Clone(), nil
}

// UpdateInvoice fusiona los campos del patch y recalcula los derivados afectados.
// Si el id no existe no hace nada y devuelve (nil, nil).
func (s *InvoiceStore) UpdateInvoice(id string, patch entity.InvoicePatch) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.invoiceIndex(id)
	if i < 0 {
		return nil, nil
	}
	if patch.InvoiceNumber != nil && slices.Contains(s.invoiceNumbers(id), *patch.InvoiceNumber) {
		return nil, fmt.Errorf("%w: número de factura %s ya existe", domain.ErrDuplicate, *patch.InvoiceNumber)
	}

	rec := s.st.Invoices[i].Clone()
	invoicing.ApplyPatch(rec, patch, s.now())

	next := s.st
	next.Invoices = slices.Clone(s.st.Invoices)
	next.Invoices[i] = rec
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// DeleteInvoice borra definitivamente. Devuelve false si el id no existía.
func (s *InvoiceStore) DeleteInvoice(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.invoiceIndex(id)
	if i < 0 {
		return false, nil
	}
	next := s.st
	next.Invoices = slices.Delete(slices.Clone(s.st.Invoices), i, i+1)
	if err := s.commit(next); err != nil {
		return false, err
	}
	s.log.Debug().Str("invoice_id", id).Msg("factura eliminada")
	return true, nil
}

func (s *InvoiceStore) invoiceIndex(id string) int {
	return slices.IndexFunc(s.st.Invoices, func(inv *entity.Invoice) bool { return inv.ID == id })
}

// invoiceNumbers números existentes, excepto el de la factura exceptID.
func (s *InvoiceStore) invoiceNumbers(exceptID string) []string {
	out := make([]string, 0, len(s.st.Invoices))
	for _, inv := range s.st.Invoices {
		if inv.ID != exceptID {
			out = append(out, inv.InvoiceNumber)
		}
	}
	return out
}

// ── Socios ──────────────────────────────────────────────────────────────────

// ListPartners socios en orden de alta.
func (s *InvoiceStore) ListPartners() []*entity.Partner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Partner, 0, len(s.st.Partners))
	for _, p := range s.st.Partners {
		cp := *p
		out = append(out, &cp)
	}
	return out
}

// GetPartner busca por id.
func (s *InvoiceStore) GetPartner(id string) (*entity.Partner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.st.Partners {
		if p.ID == id {
			cp := *p
			return &cp, true
		}
	}
	return nil, false
}

// AddPartner asigna un id nuevo y lo añade al final.
func (s *InvoiceStore) AddPartner(data *entity.Partner) (*entity.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *data
	rec.ID = s.newID()
	next := s.st
	next.Partners = append(slices.Clip(s.st.Partners), &rec)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	out := rec
	return &out, nil
}

// UpdatePartner aplica el patch; (nil, nil) si el id no existe.
func (s *InvoiceStore) UpdatePartner(id string, patch entity.PartnerPatch) (*entity.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.st.Partners, func(p *entity.Partner) bool { return p.ID == id })
	if i < 0 {
		return nil, nil
	}
	rec := *s.st.Partners[i]
	patch.Apply(&rec)

	next := s.st
	next.Partners = slices.Clone(s.st.Partners)
	next.Partners[i] = &rec
	if err := s.commit(next); err != nil {
		return nil, err
	}
	out := rec
	return &out, nil
}

// ── Clientes ────────────────────────────────────────────────────────────────

// ListCustomers clientes en orden de alta.
func (s *InvoiceStore) ListCustomers() []*entity.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Customer, 0, len(s.st.Customers))
	for _, c := range s.st.Customers {
		cc := *c
		out = append(out, &cc)
	}
	return out
}

// GetCustomer busca por id.
func (s *InvoiceStore) GetCustomer(id string) (*entity.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.st.Customers {
		if c.ID == id {
			cc := *c
			return &cc, true
		}
	}
	return nil, false
}

// AddCustomer asigna un id nuevo y lo añade al final.
func (s *InvoiceStore) AddCustomer(data *entity.Customer) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *data
	rec.ID = s.newID()
	next := s.st
	next.Customers = append(slices.Clip(s.st.Customers), &rec)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	out := rec
	return &out, nil
}

// UpdateCustomer aplica el patch; (nil, nil) si el id no existe.
func (s *InvoiceStore) UpdateCustomer(id string, patch entity.CustomerPatch) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.st.Customers, func(c *entity.Customer) bool { return c.ID == id })
	if i < 0 {
		return nil, nil
	}
	rec := *s.st.Customers[i]
	patch.Apply(&rec)

	next := s.st
	next.Customers = slices.Clone(s.st.Customers)
	next.Customers[i] = &rec
	if err := s.commit(next); err != nil {
		return nil, err
	}
	out := rec
	return &out, nil
}
