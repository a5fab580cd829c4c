package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rechnungen-api/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "rechnungs-24h-pflege-v2", cfg.Storage.Key)
	assert.Equal(t, "HelpCare HelpCare GmbH", cfg.Company.Name)
	assert.Equal(t, "#f58060", cfg.Company.PrimaryColor)
	assert.Equal(t, 60*time.Second, cfg.Render.PreviewTTL, "la vista previa se libera al minuto por defecto")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "./docs/swagger.json", cfg.HTTP.DocsFile)
	assert.Equal(t, time.Minute, cfg.Render.LogoRetryAfter)
}

func TestFromViper_Sobrescribe(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Postgres")
	v.Set("HTTP_PORT", "9090")
	v.Set("COMPANY_IBAN", "DE02 1203 0000 0000 2020 51")
	v.Set("RENDER_GIROCODE", true)
	v.Set("RENDER_LOGO_RETRY_AFTER", "5m")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "DE02 1203 0000 0000 2020 51", cfg.Company.IBAN)
	assert.True(t, cfg.Render.GiroCode)
	assert.Equal(t, 5*time.Minute, cfg.Render.LogoRetryAfter)
}

func TestFromViper_PuertoInvalidoUsaDefecto(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "ocho")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "redis")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "rechnungen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/rechnungen?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
