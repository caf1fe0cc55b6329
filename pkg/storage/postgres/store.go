package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/adfharrison1/employees-api/pkg/domain"
	"github.com/adfharrison1/employees-api/pkg/metrics"
)

// matchID compares the key against an opaque id. Only ids that read as an
// integer are cast, so anything else matches no row instead of failing the
// cast, and the comparison stays on the bare column for the primary key index.
const matchID = `employee_id = CASE WHEN @id::text ~ '^\s*[+-]?[0-9]{1,18}\s*$' THEN @id::text::bigint END`

const (
	listEmployeesSQL  = `SELECT * FROM employees`
	getEmployeeSQL    = `SELECT * FROM employees WHERE ` + matchID
	createEmployeeSQL = `INSERT INTO employees (first_name, last_name, email, hire_date)
VALUES (@first_name, @last_name, @email, CURRENT_DATE)
RETURNING employee_id`
	updateEmployeeSQL = `UPDATE employees
SET first_name = @first_name, last_name = @last_name, email = @email
WHERE ` + matchID
	deleteEmployeeSQL = `DELETE FROM employees WHERE ` + matchID
)

// Store implements domain.EmployeeStore
type Store struct {
	source       SessionSource
	logger       *zap.Logger
	queryTimeout time.Duration
}

type StoreOption func(*Store)

func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithQueryTimeout bounds each session scope, connection included. Zero
// disables the bound.
func WithQueryTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.queryTimeout = d
	}
}

func NewStore(source SessionSource, opts ...StoreOption) *Store {
	s := &Store{
		source: source,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ domain.EmployeeStore = (*Store)(nil)

// withSession opens a session, runs fn and closes the session on every path.
// Close failures are logged and never replace fn's result.
func (s *Store) withSession(ctx context.Context, op string, fn func(ctx context.Context, sess Session) error) error {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		metrics.DBStatementDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	mode := s.source.Mode()
	sess, err := s.source.Open(ctx)
	if err != nil {
		metrics.DBSessionsTotal.WithLabelValues(mode, "error").Inc()
		s.logger.Debug("failed to open session", append(errorFields(err), zap.String("op", op))...)
		return domain.DataAccess(op, err)
	}
	metrics.DBSessionsTotal.WithLabelValues(mode, "ok").Inc()
	s.logger.Debug("session opened", zap.String("op", op), zap.String("mode", mode))

	defer func() {
		if cerr := sess.Close(context.WithoutCancel(ctx)); cerr != nil {
			s.logger.Warn("failed to close session", zap.String("op", op), zap.Error(cerr))
			return
		}
		s.logger.Debug("session closed", zap.String("op", op))
	}()

	return fn(ctx, sess)
}

func (s *Store) List(ctx context.Context) ([]domain.Record, error) {
	const op = "list employees"

	records := make([]domain.Record, 0)
	err := s.withSession(ctx, op, func(ctx context.Context, sess Session) error {
		rows, err := sess.Query(ctx, listEmployeesSQL)
		if err != nil {
			return s.dataAccess(op, err)
		}
		maps, err := pgx.CollectRows(rows, pgx.RowToMap)
		if err != nil {
			return s.dataAccess(op, err)
		}
		for _, m := range maps {
			records = append(records, domain.Record(m))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (domain.Record, error) {
	const op = "get employee"

	var record domain.Record
	err := s.withSession(ctx, op, func(ctx context.Context, sess Session) error {
		rows, err := sess.Query(ctx, getEmployeeSQL, pgx.NamedArgs{"id": id})
		if err != nil {
			return s.dataAccess(op, err)
		}
		m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound(op)
		}
		if err != nil {
			return s.dataAccess(op, err)
		}
		record = domain.Record(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create inserts the employee and returns the generated key through the
// statement's RETURNING clause.
func (s *Store) Create(ctx context.Context, in domain.EmployeeInput) (int64, error) {
	const op = "create employee"

	parts := in.Parts()
	var id int64
	err := s.withSession(ctx, op, func(ctx context.Context, sess Session) error {
		err := sess.QueryRow(ctx, createEmployeeSQL, pgx.NamedArgs{
			"first_name": parts.First,
			"last_name":  parts.Last,
			"email":      in.Email,
		}).Scan(&id)
		if err != nil {
			return s.dataAccess(op, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateByID overwrites name and email. Matching no row is not an error.
func (s *Store) UpdateByID(ctx context.Context, id string, in domain.EmployeeInput) error {
	const op = "update employee"

	parts := in.Parts()
	return s.withSession(ctx, op, func(ctx context.Context, sess Session) error {
		tag, err := sess.Exec(ctx, updateEmployeeSQL, pgx.NamedArgs{
			"first_name": parts.First,
			"last_name":  parts.Last,
			"email":      in.Email,
			"id":         id,
		})
		if err != nil {
			return s.dataAccess(op, err)
		}
		s.logger.Debug("employee updated", zap.String("id", id), zap.Int64("rows", tag.RowsAffected()))
		return nil
	})
}

// DeleteByID removes the row. Matching no row is not an error.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	const op = "delete employee"

	return s.withSession(ctx, op, func(ctx context.Context, sess Session) error {
		tag, err := sess.Exec(ctx, deleteEmployeeSQL, pgx.NamedArgs{"id": id})
		if err != nil {
			return s.dataAccess(op, err)
		}
		s.logger.Debug("employee deleted", zap.String("id", id), zap.Int64("rows", tag.RowsAffected()))
		return nil
	})
}

func (s *Store) Ping(ctx context.Context) error {
	const op = "ping"

	return s.withSession(ctx, op, func(ctx context.Context, sess Session) error {
		if err := sess.Ping(ctx); err != nil {
			return s.dataAccess(op, err)
		}
		return nil
	})
}

func (s *Store) dataAccess(op string, err error) error {
	s.logger.Debug("statement failed", append(errorFields(err), zap.String("op", op))...)
	return domain.DataAccess(op, err)
}
