// Package filestore guarda el estado de la aplicación como un fichero JSON por clave.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/Rechnungen-api/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

// StateStore implementa repository.StateStore sobre un sistema de ficheros afero
// (OsFs en producción, MemMapFs en tests).
type StateStore struct {
	fs  afero.Fs
	dir string
}

// New construye el adaptador; dir se crea en el primer guardado.
func New(fs afero.Fs, dir string) *StateStore {
	return &StateStore{fs: fs, dir: dir}
}

// NewOS atajo para el sistema de ficheros real.
func NewOS(dir string) *StateStore {
	return New(afero.NewOsFs(), dir)
}

// Path ruta del fichero de una clave.
func (s *StateStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load devuelve (nil, nil) si el fichero no existe.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(s.fs, s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("filestore: leer %s: %w", key, err)
	}
	return b, nil
}

// Save escribe en un temporal del mismo directorio y lo renombra, para no dejar un JSON a medias.
func (s *StateStore) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("filestore: crear directorio: %w", err)
	}
	tmp, err := afero.TempFile(s.fs, s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("filestore: escribir %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("filestore: cerrar %s: %w", key, err)
	}
	if err := s.fs.Rename(tmpName, s.Path(key)); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("filestore: renombrar %s: %w", key, err)
	}
	return nil
}
