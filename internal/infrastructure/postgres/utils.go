package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE relevantes.
const (
	codeUndefinedTable = "42P01"
)

// hasCode verifica si err es un error de PostgreSQL con el SQLSTATE indicado.
func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
