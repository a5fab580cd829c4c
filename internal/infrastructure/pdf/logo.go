package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // registra el decodificador JPEG para image.DecodeConfig
	_ "image/png"  // registra el decodificador PNG
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Logo imagen lista para insertar en la cabecera.
type Logo struct {
	Data        []byte
	Ext         extension.Type
	AspectRatio float64 // alto / ancho
}

// LogoSource un origen posible del logo.
type LogoSource interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// ── Fichero local ───────────────────────────────────────────────────────────

// FileLogoSource lee el logo de un fichero.
type FileLogoSource struct {
	fs   afero.Fs
	path string
}

// NewFileLogoSource construye el origen local.
func NewFileLogoSource(fs afero.Fs, path string) *FileLogoSource {
	return &FileLogoSource{fs: fs, path: path}
}

func (s *FileLogoSource) Name() string { return "file:" + s.path }

func (s *FileLogoSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, errors.New("ruta de logo vacía")
	}
	return afero.ReadFile(s.fs, s.path)
}

// ── URL remota ──────────────────────────────────────────────────────────────

// URLLogoSource descarga el logo por HTTP con reintentos exponenciales.
type URLLogoSource struct {
	client  *http.Client
	url     string
	retries int
}

// NewURLLogoSource construye el origen remoto. timeout limita cada intento.
func NewURLLogoSource(url string, timeout time.Duration, retries int) *URLLogoSource {
	return &URLLogoSource{
		client:  &http.Client{Timeout: timeout},
		url:     url,
		retries: retries,
	}
}

func (s *URLLogoSource) Name() string { return "url:" + s.url }

func (s *URLLogoSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.url == "" {
		return nil, errors.New("URL de logo vacía")
	}
	var data []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			_, _ = io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		data, err = io.ReadAll(io.LimitReader(resp.Body, 5<<20))
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 10 * time.Second
	retries := s.retries
	if retries < 0 {
		retries = 0
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)); err != nil {
		return nil, err
	}
	return data, nil
}

// ── Cadena de orígenes ──────────────────────────────────────────────────────

// DefaultLogoRetryAfter tiempo durante el que se recuerda que ningún origen dio logo.
const DefaultLogoRetryAfter = time.Minute

// LogoChain prueba los orígenes en orden y se queda con el primero que produce una imagen válida.
// Nunca devuelve error: si todos fallan, Load devuelve nil y la cabecera usa la marca en texto.
type LogoChain struct {
	sources    []LogoSource
	log        zerolog.Logger
	retryAfter time.Duration

	mu       sync.Mutex
	cached   *Logo
	failedAt time.Time
}

// NewLogoChain construye la cadena.
func NewLogoChain(log zerolog.Logger, sources ...LogoSource) *LogoChain {
	return &LogoChain{sources: sources, log: log, retryAfter: DefaultLogoRetryAfter}
}

// RetryAfter cambia cuánto tiempo se usa la marca en texto sin volver a consultar
// los orígenes tras un fallo completo. Con d <= 0 se reintenta en cada carga.
func (c *LogoChain) RetryAfter(d time.Duration) *LogoChain {
	c.retryAfter = d
	return c
}

// Load devuelve el logo o nil. Un logo cargado se reutiliza siempre; un fallo de todos
// los orígenes se recuerda durante retryAfter.
func (c *LogoChain) Load(ctx context.Context) *Logo {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	cached, failedAt := c.cached, c.failedAt
	c.mu.Unlock()
	if cached != nil {
		return cached
	}
	if !failedAt.IsZero() && time.Since(failedAt) < c.retryAfter {
		return nil
	}

	for _, src := range c.sources {
		if ctx.Err() != nil {
			c.log.Warn().Err(ctx.Err()).Msg("carga de logo cancelada")
			return nil
		}
		data, err := src.Fetch(ctx)
		if err != nil {
			c.log.Warn().Err(err).Str("source", src.Name()).Msg("logo no disponible")
			continue
		}
		logo, err := DecodeLogo(data)
		if err != nil {
			c.log.Warn().Err(err).Str("source", src.Name()).Msg("logo no válido")
			continue
		}
		c.mu.Lock()
		c.cached = logo
		c.failedAt = time.Time{}
		c.mu.Unlock()
		return logo
	}

	// una cancelación no cuenta como fallo de los orígenes
	if ctx.Err() == nil {
		c.mu.Lock()
		c.failedAt = time.Now()
		c.mu.Unlock()
		c.log.Info().Dur("retry_after", c.retryAfter).Msg("sin logo, se usa la marca en texto")
	}
	return nil
}

// HeightFor alto en mm del logo dibujado con el ancho indicado.
func (l *Logo) HeightFor(width float64) float64 {
	return width * l.AspectRatio
}

// DecodeLogo identifica el formato (PNG o JPEG) y la proporción de la imagen.
func DecodeLogo(data []byte) (*Logo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decodificar logo: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, errors.New("logo sin dimensiones")
	}
	var ext extension.Type
	switch format {
	case "png":
		ext = extension.Png
	case "jpeg":
		ext = extension.Jpg
	default:
		return nil, fmt.Errorf("formato de logo no soportado: %s", format)
	}
	return &Logo{
		Data:        data,
		Ext:         ext,
		AspectRatio: float64(cfg.Height) / float64(cfg.Width),
	}, nil
}
