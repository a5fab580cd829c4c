package filestore_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/filestore"
)

func TestStateStore_LoadSinFichero(t *testing.T) {
	s := filestore.New(afero.NewMemMapFs(), "/data")

	blob, err := s.Load(context.Background(), "rechnungs-24h-pflege-v2")
	require.NoError(t, err)
	assert.Nil(t, blob, "sin fichero no hay estado")
}

func TestStateStore_GuardaYCarga(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := filestore.New(fs, "/data")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k", []byte(`{"version":3}`)))
	require.NoError(t, s.Save(ctx, "k", []byte(`{"version":3,"state":{}}`)))

	blob, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":3,"state":{}}`, string(blob))

	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1, "no quedan temporales")
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestStateStore_ContextoCancelado(t *testing.T) {
	s := filestore.New(afero.NewMemMapFs(), "/data")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, "k", []byte("{}")), context.Canceled)
	_, err := s.Load(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
