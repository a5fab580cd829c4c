// Package preview guarda vistas previas de PDF en ficheros temporales, las abre con el
// visor del sistema y las elimina pasado un tiempo.
package preview

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultTTL tiempo que vive un fichero de vista previa antes de borrarse.
const DefaultTTL = 60 * time.Second

// ErrClosed el spool ya no acepta vistas previas.
var ErrClosed = errors.New("preview: spool cerrado")

// Opener abre un fichero con la aplicación asociada.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// SystemOpener usa el visor del sistema operativo (xdg-open, open o rundll32).
type SystemOpener struct{}

func (SystemOpener) Open(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("abrir visor: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// NopOpener no abre nada; para servidores sin escritorio.
type NopOpener struct{}

func (NopOpener) Open(context.Context, string) error { return nil }

// ── Spool ────────────────────────────────────────────────────────────────────

// Spool cada vista previa obtiene su propio fichero temporal, de modo que dos vistas
// simultáneas de la misma factura no se pisan.
type Spool struct {
	fs     afero.Fs
	dir    string
	ttl    time.Duration
	opener Opener
	log    zerolog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
}

// Option configura el spool.
type Option func(*Spool)

// WithDir directorio de los temporales; vacío usa el del sistema.
func WithDir(dir string) Option { return func(s *Spool) { s.dir = dir } }

// WithTTL retraso hasta el borrado; valores <= 0 usan DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Spool) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithOpener(o Opener) Option { return func(s *Spool) { s.opener = o } }

func WithLogger(l zerolog.Logger) Option { return func(s *Spool) { s.log = l } }

// New construye el spool sobre fs.
func New(fs afero.Fs, opts ...Option) *Spool {
	s := &Spool{
		fs:      fs,
		ttl:     DefaultTTL,
		opener:  SystemOpener{},
		log:     zerolog.Nop(),
		pending: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dir == "" {
		s.dir = afero.GetTempDir(fs, "rechnungen")
	}
	return s
}

// Preview escribe content en un temporal "<stem>-*.pdf", lo abre y programa su borrado.
// Devuelve la ruta del fichero. Si no se puede abrir, el fichero se borra en el acto.
func (s *Spool) Preview(ctx context.Context, stem string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", ErrClosed
	}

	path, err := s.write(stem, content)
	if err != nil {
		return "", err
	}

	if err := s.opener.Open(ctx, path); err != nil {
		_ = s.fs.Remove(path)
		return "", fmt.Errorf("preview: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		_ = s.fs.Remove(path)
		return "", ErrClosed
	}
	s.pending[path] = time.AfterFunc(s.ttl, func() { s.release(path) })
	s.log.Debug().Str("path", path).Dur("ttl", s.ttl).Msg("vista previa abierta")
	return path, nil
}

func (s *Spool) write(stem string, content []byte) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("preview: crear directorio: %w", err)
	}
	f, err := afero.TempFile(s.fs, s.dir, sanitizeStem(stem)+"-*.pdf")
	if err != nil {
		return "", fmt.Errorf("preview: crear temporal: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(path)
		return "", fmt.Errorf("preview: escribir: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(path)
		return "", fmt.Errorf("preview: cerrar: %w", err)
	}
	return path, nil
}

func (s *Spool) release(path string) {
	s.mu.Lock()
	delete(s.pending, path)
	s.mu.Unlock()

	if err := s.fs.Remove(path); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("no se pudo borrar la vista previa")
		return
	}
	s.log.Debug().Str("path", path).Msg("vista previa liberada")
}

// Pending número de vistas previas aún no liberadas.
func (s *Spool) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close cancela los borrados programados y elimina ya los temporales pendientes.
func (s *Spool) Close() error {
	s.mu.Lock()
	s.closed = true
	paths := make([]string, 0, len(s.pending))
	for path, t := range s.pending {
		t.Stop()
		paths = append(paths, path)
	}
	clear(s.pending)
	s.mu.Unlock()

	var errs []error
	for _, path := range paths {
		if err := s.fs.Remove(path); err != nil && !errors.Is(err, afero.ErrFileNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// sanitizeStem evita separadores de ruta en el nombre del temporal.
func sanitizeStem(stem string) string {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "Rechnung"
	}
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '*' {
			return '_'
		}
		return r
	}, stem)
}
