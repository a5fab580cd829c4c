package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/postgres"
)

// fakeQuerier guarda los blobs en un mapa y registra las sentencias ejecutadas.
type fakeQuerier struct {
	rows    map[string]string
	execs   []string
	failRow error
}

type fakeRow struct {
	val string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.val
	return nil
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	if strings.Contains(sql, "INSERT INTO app_state") {
		q.rows[args[0].(string)] = args[1].(string)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no soportado")
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if q.failRow != nil {
		return fakeRow{err: q.failRow}
	}
	v, ok := q.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{val: v}
}

func TestStateStore_GuardarYCargar(t *testing.T) {
	q := &fakeQuerier{rows: map[string]string{}}
	s := postgres.NewStateStore(q)
	ctx := context.Background()

	require.NoError(t, s.EnsureSchema(ctx))
	assert.Contains(t, q.execs[0], "CREATE TABLE IF NOT EXISTS app_state")

	blob, err := s.Load(ctx, "rechnungs-24h-pflege-v2")
	require.NoError(t, err)
	assert.Nil(t, blob, "sin fila no hay estado y no es error")

	require.NoError(t, s.Save(ctx, "rechnungs-24h-pflege-v2", []byte(`{"version":3}`)))
	blob, err = s.Load(ctx, "rechnungs-24h-pflege-v2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":3}`, string(blob))
}

func TestStateStore_TablaInexistente(t *testing.T) {
	q := &fakeQuerier{rows: map[string]string{}, failRow: &pgconn.PgError{Code: "42P01"}}
	s := postgres.NewStateStore(q)

	_, err := s.Load(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate")

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr), "el error original se conserva")
}
