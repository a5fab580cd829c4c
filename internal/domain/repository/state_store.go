package repository

import "context"

// StateStore persiste el estado completo serializado bajo una clave fija.
// Load devuelve (nil, nil) si aún no hay nada guardado.
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}
