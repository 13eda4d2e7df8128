package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the set of statement methods repositories run SQL through.
// It is satisfied by *pgxpool.Pool, *pgxpool.Conn, *pgx.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Session is a database handle scoped to a single unit of work, normally one
// HTTP request. Release must be called exactly once when the work is done.
// *pgxpool.Conn satisfies it.
type Session interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Release()
}

// SessionProvider hands out scoped sessions.
type SessionProvider interface {
	// Acquire blocks until a session is available or ctx is done.
	Acquire(ctx context.Context) (Session, error)
}

// poolSessionProvider implements SessionProvider on top of a pgx pool.
type poolSessionProvider struct {
	pool *pgxpool.Pool
}

// NewSessionProvider returns a provider whose sessions are pooled connections.
func NewSessionProvider(pool *pgxpool.Pool) SessionProvider {
	return &poolSessionProvider{pool: pool}
}

// Acquire checks a connection out of the pool.
func (p *poolSessionProvider) Acquire(ctx context.Context) (Session, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire database session: %w", err)
	}
	return conn, nil
}
