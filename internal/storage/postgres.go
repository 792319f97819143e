package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const notifyChannel = "client_state"

// PostgresStore keeps client state in a shared PostgreSQL table so that
// several terminals (for example the kitchen screen and the counter) see
// each other's writes.
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
	logger    zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed store for one namespace.
func NewPostgresStore(pool *pgxpool.Pool, namespace string, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		pool:      pool,
		namespace: namespace,
		logger:    logger.With().Str("component", "postgres-store").Str("namespace", namespace).Logger(),
	}
}

// EnsureSchema creates the state table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS client_state (
			namespace  VARCHAR(100) NOT NULL,
			key        VARCHAR(100) NOT NULL,
			value      JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		)
	`

	if _, err := s.pool.Exec(ctx, query); err != nil {
		s.logger.Error().Err(err).Msg("failed to create client_state table")
		return fmt.Errorf("failed to create client_state table: %w", err)
	}
	return nil
}

// Get retrieves the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM client_state
		WHERE namespace = $1 AND key = $2
	`

	var value []byte
	err := s.pool.QueryRow(ctx, query, s.namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to query client state")
		return nil, fmt.Errorf("failed to query %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value and notifies listeners in the same transaction.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO client_state (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	return s.withNotify(ctx, key, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, s.namespace, key, value, time.Now())
		return err
	})
}

// Delete removes the value and notifies listeners.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM client_state WHERE namespace = $1 AND key = $2`

	return s.withNotify(ctx, key, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, s.namespace, key)
		return err
	})
}

func (s *PostgresStore) withNotify(ctx context.Context, key string, write func(pgx.Tx) error) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = write(tx); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write client state")
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if _, err = tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, s.namespace+":"+key); err != nil {
		return fmt.Errorf("failed to notify %s: %w", key, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// Watch listens for changes in this namespace on a dedicated connection.
func (s *PostgresStore) Watch(ctx context.Context) (<-chan string, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire listen connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen on %s: %w", notifyChannel, err)
	}

	out := make(chan string, 16)
	prefix := s.namespace + ":"

	go func() {
		defer close(out)
		defer conn.Release()

		for {
			n, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Warn().Err(err).Msg("stopped listening for client state changes")
				}
				return
			}
			if !strings.HasPrefix(n.Payload, prefix) {
				continue
			}
			select {
			case out <- strings.TrimPrefix(n.Payload, prefix):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
