package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session is a database connection held for the duration of one store call
type Session interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// SessionSource hands out sessions
type SessionSource interface {
	Open(ctx context.Context) (Session, error)
	// Mode names the source for logs and metrics
	Mode() string
	Close()
}

type PoolOptions struct {
	MaxConns int32
}

// PoolSource acquires sessions from a shared pgxpool.Pool
type PoolSource struct {
	pool *pgxpool.Pool
}

// NewPoolSource connects a pool and verifies it with a ping
func NewPoolSource(ctx context.Context, dsn string, opts PoolOptions) (*PoolSource, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PoolSource{pool: p}, nil
}

func (s *PoolSource) Open(ctx context.Context) (Session, error) {
	c, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return pooledSession{c}, nil
}

func (s *PoolSource) Mode() string { return "pooled" }

func (s *PoolSource) Close() { s.pool.Close() }

// Pool exposes the underlying pool
func (s *PoolSource) Pool() *pgxpool.Pool { return s.pool }

type pooledSession struct {
	*pgxpool.Conn
}

// Close returns the connection to the pool
func (s pooledSession) Close(context.Context) error {
	s.Release()
	return nil
}

// ConnSource opens a dedicated connection for every session and closes it
// afterwards
type ConnSource struct {
	cfg *pgx.ConnConfig
}

func NewConnSource(dsn string) (*ConnSource, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	return &ConnSource{cfg: cfg}, nil
}

func (s *ConnSource) Open(ctx context.Context) (Session, error) {
	conn, err := pgx.ConnectConfig(ctx, s.cfg.Copy())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return conn, nil
}

func (s *ConnSource) Mode() string { return "direct" }

func (s *ConnSource) Close() {}

// NewSource picks the pooled or per-request source
func NewSource(ctx context.Context, dsn string, pooled bool, opts PoolOptions) (SessionSource, error) {
	if pooled {
		return NewPoolSource(ctx, dsn, opts)
	}
	src, err := NewConnSource(dsn)
	if err != nil {
		return nil, err
	}
	// Fail fast on bad credentials the same way the pool does.
	sess, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	if err := sess.Close(ctx); err != nil {
		return nil, fmt.Errorf("close startup connection: %w", err)
	}
	return src, nil
}
