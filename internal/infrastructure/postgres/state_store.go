package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rechnungen-api/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// StateStore guarda el blob versionado en la tabla app_state (una fila por clave).
type StateStore struct {
	q Querier
}

// NewStateStore construye el adaptador. Pasar pool o tx (Querier).
func NewStateStore(q Querier) *StateStore {
	return &StateStore{q: q}
}

// EnsureSchema crea la tabla si no existe.
func (s *StateStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create app_state: %w", err)
	}
	return nil
}

// Load devuelve (nil, nil) si no hay fila para la clave.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := s.q.QueryRow(ctx, `SELECT payload::text FROM app_state WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if hasCode(err, codeUndefinedTable) {
			return nil, fmt.Errorf("load state: falta la tabla app_state (ejecute migrate): %w", err)
		}
		return nil, fmt.Errorf("load state: %w", err)
	}
	return []byte(payload), nil
}

// Save inserta o reemplaza el blob de la clave.
func (s *StateStore) Save(ctx context.Context, key string, blob []byte) error {
	query := `
		INSERT INTO app_state (key, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := s.q.Exec(ctx, query, key, string(blob)); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// StatusTotal suma de comisiones por estado, calculada en SQL sobre el documento guardado.
type StatusTotal struct {
	Status     string
	Count      int
	Commission decimal.Decimal
}

// TotalsByStatus informe agregado directamente sobre el JSONB (NUMERIC -> decimal vía pgxdecimal).
func (s *StateStore) TotalsByStatus(ctx context.Context, key string) ([]StatusTotal, error) {
	query := `
		SELECT inv->>'status' AS status,
		       COUNT(*) AS n,
		       COALESCE(SUM((inv->>'commissionAmount')::numeric), 0) AS commission
		FROM app_state,
		     jsonb_array_elements(payload->'state'->'invoices') AS inv
		WHERE key = $1
		GROUP BY inv->>'status'
		ORDER BY 1`
	rows, err := s.q.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("totals by status: %w", err)
	}
	defer rows.Close()

	var out []StatusTotal
	for rows.Next() {
		var t StatusTotal
		if err := rows.Scan(&t.Status, &t.Count, &t.Commission); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("totals rows: %w", err)
	}
	return out, nil
}
