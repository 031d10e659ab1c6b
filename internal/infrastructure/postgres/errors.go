package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stockflow-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// translate traduce los SQLSTATE conocidos a errores de dominio; el resto se envuelve con op.
// Una FK rota en escritura significa que el padre no existe.
func translate(err error, op string) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return domain.ErrNotFound
	case codeCheckViolation:
		return domain.ErrInsufficientStock
	}
	return fmt.Errorf("%s: %w", op, err)
}

// translateDelete igual que translate, pero una FK rota al borrar significa que otra fila referencia la borrada.
func translateDelete(err error, op string) error {
	if pgCode(err) == codeForeignKeyViolation {
		return domain.ErrRestricted
	}
	return translate(err, op)
}
