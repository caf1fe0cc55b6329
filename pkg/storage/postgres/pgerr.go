package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	// UniqueViolationCode indicates a unique constraint violation.
	UniqueViolationCode = "23505"
	// NotNullViolationCode indicates a NOT NULL constraint violation.
	NotNullViolationCode = "23502"
	// CheckViolationCode indicates a check constraint violation.
	CheckViolationCode = "23514"
	// UndefinedTableCode indicates the relation does not exist.
	UndefinedTableCode = "42P01"
)

func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// errorFields extracts log fields from a server-side error
func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	if pe, ok := AsPgError(err); ok {
		fields = append(fields, zap.String("sqlstate", pe.Code))
		if pe.ConstraintName != "" {
			fields = append(fields, zap.String("constraint", pe.ConstraintName))
		}
		if pe.TableName != "" {
			fields = append(fields, zap.String("table", pe.TableName))
		}
	}
	return fields
}
