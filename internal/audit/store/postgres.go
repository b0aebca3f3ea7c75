package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quotagate/quotagate/internal/audit"
)

// Postgres persists denial events to PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed audit store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// SaveRequestDenied inserts one denial event. Redelivered events with a
// known ID are ignored.
func (p *Postgres) SaveRequestDenied(ctx context.Context, event *audit.RequestDeniedEvent) error {
	query := `
		INSERT INTO rate_limit_denials
			(id, endpoint, client_ip, user_agent, request_limit, window_seconds, request_count, instance, denied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.Endpoint,
		event.ClientIP,
		nullableString(event.UserAgent),
		event.Limit,
		event.WindowSeconds,
		event.Count,
		nullableString(event.Instance),
		event.DeniedAt,
	)

	return err
}

// Shutdown closes the connection pool.
func (p *Postgres) Shutdown() error {
	p.pool.Close()

	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
