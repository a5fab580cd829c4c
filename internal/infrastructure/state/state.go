// Package state define el documento persistido (facturas, socios, clientes y filtro),
// su sobre versionado y la cadena de migraciones que se aplica al cargarlo.
package state

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
)

// Versión actual del esquema y clave fija bajo la que se guarda el estado.
const (
	CurrentVersion = 3
	StorageKey     = "rechnungs-24h-pflege-v2"
)

// State conjunto completo de datos de la aplicación.
type State struct {
	Invoices  []*entity.Invoice    `json:"invoices"`
	Partners  []*entity.Partner    `json:"partners"`
	Customers []*entity.Customer   `json:"customers"`
	Filter    entity.InvoiceFilter `json:"filter"`
}

// Empty estado sin registros y con el filtro "alle".
func Empty() State {
	return State{
		Invoices:  []*entity.Invoice{},
		Partners:  []*entity.Partner{},
		Customers: []*entity.Customer{},
		Filter:    entity.FilterAll,
	}
}

// IsEmpty no hay ningún registro guardado.
func (s State) IsEmpty() bool {
	return len(s.Invoices) == 0 && len(s.Partners) == 0 && len(s.Customers) == 0
}

// Clone copia profunda; el almacén en memoria trabaja siempre sobre copias.
func (s State) Clone() State {
	out := State{
		Invoices:  make([]*entity.Invoice, 0, len(s.Invoices)),
		Partners:  make([]*entity.Partner, 0, len(s.Partners)),
		Customers: make([]*entity.Customer, 0, len(s.Customers)),
		Filter:    s.Filter,
	}
	for _, inv := range s.Invoices {
		out.Invoices = append(out.Invoices, inv.Clone())
	}
	for _, p := range s.Partners {
		cp := *p
		out.Partners = append(out.Partners, &cp)
	}
	for _, c := range s.Customers {
		cc := *c
		out.Customers = append(out.Customers, &cc)
	}
	return out
}

type envelope struct {
	State   any `json:"state"`
	Version int `json:"version"`
}

type rawEnvelope struct {
	State   map[string]any `json:"state"`
	Version int            `json:"version"`
}

// Encode serializa el estado con la versión actual.
func Encode(s State) ([]byte, error) {
	b, err := json.Marshal(envelope{State: s, Version: CurrentVersion})
	if err != nil {
		return nil, fmt.Errorf("state: encode: %w", err)
	}
	return b, nil
}

// DecodeResult describe lo ocurrido al decodificar.
type DecodeResult struct {
	StoredVersion int
	Migrated      bool
}

// Decode interpreta un blob guardado, aplica las migraciones pendientes y devuelve el estado tipado.
func Decode(blob []byte) (State, DecodeResult, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(blob, &raw); err != nil {
		return State{}, DecodeResult{}, fmt.Errorf("state: decode envelope: %w", err)
	}
	res := DecodeResult{StoredVersion: raw.Version}
	if raw.State == nil {
		raw.State = map[string]any{}
	}

	res.Migrated = Migrate(raw.State, raw.Version)

	b, err := json.Marshal(raw.State)
	if err != nil {
		return State{}, res, fmt.Errorf("state: re-encode: %w", err)
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, res, fmt.Errorf("state: decode state: %w", err)
	}
	normalize(&s)
	return s, res, nil
}

func normalize(s *State) {
	if s.Invoices == nil {
		s.Invoices = []*entity.Invoice{}
	}
	if s.Partners == nil {
		s.Partners = []*entity.Partner{}
	}
	if s.Customers == nil {
		s.Customers = []*entity.Customer{}
	}
	for _, inv := range s.Invoices {
		if inv.Positions == nil {
			inv.Positions = []entity.InvoicePosition{}
		}
	}
	if !s.Filter.Valid() {
		s.Filter = entity.FilterAll
	}
}
