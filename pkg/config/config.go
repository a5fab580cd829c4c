package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	Company CompanyConfig
	Render  RenderConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host     string
	Port     int
	DocsFile string // swagger.json generado por swag; si no existe no se monta /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Drivers de almacenamiento admitidos.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// StorageConfig dónde se guarda el estado completo (facturas, socios, clientes, filtro).
// Driver "file" escribe un JSON en FilePath; "postgres" usa la tabla app_state.
type StorageConfig struct {
	Driver   string
	FilePath string // directorio para el driver file
	Key      string // clave fija del blob versionado
}

// DBConfig configuración de PostgreSQL (solo con STORAGE_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// CompanyConfig perfil estático de la empresa emisora (cabecera, pie y datos bancarios del PDF).
type CompanyConfig struct {
	Name         string
	Wordmark     string // texto de marca si no se puede cargar el logo
	Address      string
	PostalCode   string
	City         string
	Country      string
	LogoPath     string
	LogoURL      string
	PrimaryColor string // hex, ej. #f58060
	BankName     string
	IBAN         string
	BIC          string
	TaxID        string
	VATID        string
}

// RenderConfig opciones del generador de documentos.
type RenderConfig struct {
	LogoTimeout    time.Duration
	LogoRetries    int
	LogoRetryAfter time.Duration // tras un fallo de todos los orígenes no se reintenta antes de este plazo
	PreviewTTL     time.Duration // tras este plazo se borra el fichero temporal de la vista previa
	PreviewDir     string
	OutputDir      string
	GiroCode       bool // código QR EPC (GiroCode) en el bloque de pago
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_DRIVER, COMPANY_IBAN, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya preparada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "rechnungen-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:     getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:     getInt(v, "HTTP_PORT", 8080),
			DocsFile: getString(v, "HTTP_DOCS_FILE", "./docs/swagger.json"),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getString(v, "STORAGE_DRIVER", "file")),
			FilePath: getString(v, "STORAGE_PATH", "./data"),
			Key:      getString(v, "STORAGE_KEY", "rechnungs-24h-pflege-v2"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "rechnungen"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		// Valores por defecto: perfil de HelpCare; reemplazar los datos bancarios en producción.
		Company: CompanyConfig{
			Name:         getString(v, "COMPANY_NAME", "HelpCare HelpCare GmbH"),
			Wordmark:     getString(v, "COMPANY_WORDMARK", "HelpCare"),
			Address:      getString(v, "COMPANY_ADDRESS", "Kurfürstendamm 14"),
			PostalCode:   getString(v, "COMPANY_POSTAL_CODE", "10719"),
			City:         getString(v, "COMPANY_CITY", "Berlin"),
			Country:      getString(v, "COMPANY_COUNTRY", "Deutschland"),
			LogoPath:     getString(v, "COMPANY_LOGO_PATH", "./assets/logo-helpcare.png"),
			LogoURL:      getString(v, "COMPANY_LOGO_URL", "https://helpcare.de/wp-content/uploads/2025/08/logo-HC-footer.png"),
			PrimaryColor: getString(v, "COMPANY_PRIMARY_COLOR", "#f58060"),
			BankName:     getString(v, "COMPANY_BANK_NAME", "Bankname"),
			IBAN:         getString(v, "COMPANY_IBAN", "DE89 3704 0044 0532 0130 00"),
			BIC:          getString(v, "COMPANY_BIC", "COBADEFFXXX"),
			TaxID:        getString(v, "COMPANY_TAX_ID", "DE123456789"),
			VATID:        getString(v, "COMPANY_VAT_ID", "DE123456789"),
		},
		Render: RenderConfig{
			LogoTimeout:    getDuration(v, "RENDER_LOGO_TIMEOUT", 5*time.Second),
			LogoRetries:    getInt(v, "RENDER_LOGO_RETRIES", 2),
			LogoRetryAfter: getDuration(v, "RENDER_LOGO_RETRY_AFTER", time.Minute),
			PreviewTTL:     getDuration(v, "RENDER_PREVIEW_TTL", 60*time.Second),
			PreviewDir:     getString(v, "RENDER_PREVIEW_DIR", ""),
			OutputDir:      getString(v, "RENDER_OUTPUT_DIR", "."),
			GiroCode:       getBool(v, "RENDER_GIROCODE", false),
		},
	}

	switch cfg.Storage.Driver {
	case DriverFile, DriverPostgres:
	default:
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido %q (file|postgres)", cfg.Storage.Driver)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	d := v.GetDuration(key)
	if d <= 0 {
		return def
	}
	return d
}
