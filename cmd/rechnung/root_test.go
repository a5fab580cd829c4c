package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("STORAGE_PATH", dir)
	t.Setenv("COMPANY_LOGO_PATH", filepath.Join(dir, "no-existe.png"))
	t.Setenv("COMPANY_LOGO_URL", "http://127.0.0.1:1/logo.png")
	t.Setenv("RENDER_LOGO_RETRIES", "0")
	t.Setenv("RENDER_LOGO_TIMEOUT", "200ms")
	t.Setenv("RENDER_PREVIEW_DIR", t.TempDir())
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(args, &out, &errOut)
	return out.String(), err
}

func TestCLI_NextNumberYList(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "next-number")
	require.NoError(t, err)
	assert.Equal(t, "RE-1342\n", out)

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "RE-1341")
	assert.Contains(t, out, "Entwurf")
	assert.Contains(t, out, "427,90 €")
	assert.Contains(t, out, "1 Rechnungen")
}

func TestCLI_StatusPersiste(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "status", "inv1", "offen")
	require.NoError(t, err)
	assert.Contains(t, out, "RE-1341: Offen (gesperrt: ja)")

	out, err = run(t, "list", "--status", "offen")
	require.NoError(t, err)
	assert.Contains(t, out, "RE-1341", "el cambio de estado debe sobrevivir entre ejecuciones")

	out, err = run(t, "list", "--status", "entwurf")
	require.NoError(t, err)
	assert.NotContains(t, out, "RE-1341")
}

func TestCLI_StatusInvalido(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "status", "inv1", "storniert")
	assert.Error(t, err)

	_, err = run(t, "status", "nope", "offen")
	assert.Error(t, err)
}

func TestCLI_PDFGuardaFichero(t *testing.T) {
	setupEnv(t)
	outDir := filepath.Join(t.TempDir(), "pdf")

	out, err := run(t, "pdf", "inv1", "--out", outDir)
	require.NoError(t, err)

	path := filepath.Join(outDir, "Rechnung-RE-1341.pdf")
	assert.Contains(t, out, path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestCLI_MigrateYReport(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Version 3")
	assert.FileExists(t, filepath.Join(dir, "rechnungs-24h-pflege-v2.json"))

	out, err = run(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Entwurf")
	assert.Contains(t, out, "427,90 €")
}

func TestCLI_ArgumentosIncorrectos(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "pdf")
	assert.Error(t, err)
}
