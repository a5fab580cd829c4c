package preview_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/preview"
)

type recordingOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (o *recordingOpener) Open(_ context.Context, path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.opened = append(o.opened, path)
	return nil
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	return ok
}

func TestSpool_EscribeAbreYLibera(t *testing.T) {
	fs := afero.NewMemMapFs()
	opener := &recordingOpener{}
	s := preview.New(fs, preview.WithDir("/tmp/vistas"), preview.WithTTL(30*time.Millisecond), preview.WithOpener(opener))

	path, err := s.Preview(context.Background(), "Rechnung-RE-1341", []byte("%PDF-1.3"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/vistas", filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "Rechnung-RE-1341-"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))
	assert.Equal(t, []string{path}, opener.opened)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
	assert.Equal(t, 1, s.Pending())

	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, 5*time.Millisecond,
		"la vista previa debe liberarse tras el TTL")
	assert.False(t, exists(t, fs, path), "el temporal debe borrarse")
}

func TestSpool_VistasSimultaneasNoSePisan(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := preview.New(fs, preview.WithDir("/tmp"), preview.WithOpener(preview.NopOpener{}))
	defer s.Close()

	const n = 10
	paths := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Preview(context.Background(), "Rechnung-RE-1341", []byte{byte(i)})
			assert.NoError(t, err)
			paths[i] = p
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for i, p := range paths {
		require.False(t, seen[p], "ruta repetida %s", p)
		seen[p] = true
		data, err := afero.ReadFile(fs, p)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, data)
	}
	assert.Equal(t, n, s.Pending())
}

func TestSpool_ErrorAlAbrirBorraElFichero(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := preview.New(fs, preview.WithDir("/tmp"), preview.WithOpener(&recordingOpener{err: errors.New("sin visor")}))

	_, err := s.Preview(context.Background(), "Rechnung-RE-1", []byte("x"))
	require.Error(t, err)

	entries, err := afero.ReadDir(fs, "/tmp")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, s.Pending())
}

func TestSpool_CloseEliminaPendientes(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := preview.New(fs, preview.WithDir("/tmp"), preview.WithTTL(time.Hour), preview.WithOpener(preview.NopOpener{}))

	a, err := s.Preview(context.Background(), "a", []byte("1"))
	require.NoError(t, err)
	b, err := s.Preview(context.Background(), "b/c", []byte("2"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp", filepath.Dir(b), "las barras del nombre no crean subdirectorios")

	require.NoError(t, s.Close())
	assert.False(t, exists(t, fs, a))
	assert.False(t, exists(t, fs, b))
	assert.Zero(t, s.Pending())

	_, err = s.Preview(context.Background(), "c", []byte("3"))
	assert.ErrorIs(t, err, preview.ErrClosed)
}

func TestSpool_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := preview.New(afero.NewMemMapFs(), preview.WithDir("/tmp"), preview.WithOpener(preview.NopOpener{}))
	_, err := s.Preview(ctx, "x", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
