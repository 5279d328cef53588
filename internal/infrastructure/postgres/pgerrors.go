package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Existencias-api/internal/domain"
)

// Códigos SQLSTATE relevantes para el mapeo de errores de constraint.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// mapConstraintError traduce violaciones de constraint de PostgreSQL al
// taxónomo de dominio, preservando el tipo en la cadena de errores para que
// el caller lo distinga con errors.Is tras el rollback:
//   - 23505 (unique)      -> ErrConflict  (carrera perdida contra otro insert)
//   - 23503 (foreign key) -> ErrIntegrity (referencia colgante)
//   - 23514 (check)       -> ErrInvariant (p. ej. quantity >= 0)
func mapConstraintError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s (%s): %w", op, pgErr.ConstraintName, domain.ErrConflict)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s (%s): %w", op, pgErr.ConstraintName, domain.ErrIntegrity)
		case codeCheckViolation:
			return fmt.Errorf("%s (%s): %w", op, pgErr.ConstraintName, domain.ErrInvariant)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
