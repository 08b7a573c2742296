package dedup

import (
	"context"
	"fmt"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the sent-job set in a sent_jobs table, for
// deployments where runs have no durable filesystem (CI runners).
//
//	CREATE TABLE sent_jobs (
//	    job_id   TEXT PRIMARY KEY,
//	    sent_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	db      *pgxpool.Pool
	mu      sync.Mutex
	ids     mapset.Set[string]
	pending []string
}

func ConnectPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MaxConnLifetime = time.Hour

	// Connection poolers in transaction mode (PgBouncer) choke on the
	// statement cache, so force simple exec mode.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PostgresStore{
		db:  pool,
		ids: mapset.NewSet[string](),
	}, nil
}

func (s *PostgresStore) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Load reads all previously sent job ids into memory.
func (s *PostgresStore) Load(ctx context.Context) error {
	rows, err := s.db.Query(ctx, "SELECT job_id FROM sent_jobs")
	if err != nil {
		return fmt.Errorf("query sent_jobs: %w", err)
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan sent_jobs: %w", err)
		}
		s.ids.Add(id)
	}
	return rows.Err()
}

func (s *PostgresStore) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.Contains(id)
}

func (s *PostgresStore) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids.Add(id) {
		s.pending = append(s.pending, id)
	}
}

func (s *PostgresStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.Cardinality()
}

// Save inserts ids added since the last save. ON CONFLICT DO NOTHING
// keeps the operation idempotent if a previous run half-finished.
func (s *PostgresStore) Save(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for i, id := range pending {
		_, err := s.db.Exec(ctx,
			"INSERT INTO sent_jobs (job_id) VALUES ($1) ON CONFLICT (job_id) DO NOTHING", id)
		if err != nil {
			// put the unsaved tail back so a retry can pick it up
			s.mu.Lock()
			s.pending = append(pending[i:], s.pending...)
			s.mu.Unlock()
			return fmt.Errorf("failed to insert sent job %s: %w", id, err)
		}
	}
	return nil
}
