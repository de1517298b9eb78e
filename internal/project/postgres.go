package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS row_parameters (
	file TEXT NOT NULL,
	row_id BIGINT NOT NULL,
	payload JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (file, row_id)
)`

// PostgresStore keeps the project table in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create row_parameters table: %w", err)
	}

	log.Info().Msg("Connected to PostgreSQL")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) WriteParameters(ctx context.Context, file string, rowID int, params []row.Parameter) error {
	if err := checkRowID(rowID); err != nil {
		return err
	}
	payload, err := encodeParameters(params)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO row_parameters (file, row_id, payload)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (file, row_id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = now()
	`, file, rowID, string(payload))
	if err != nil {
		return fmt.Errorf("upsert row parameters: %w", err)
	}
	return nil
}

func (s *PostgresStore) ReadParameters(ctx context.Context, file string, rowID int) ([]row.Parameter, bool, error) {
	if err := checkRowID(rowID); err != nil {
		return nil, false, err
	}
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload::text FROM row_parameters WHERE file = $1 AND row_id = $2`, file, rowID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select row parameters: %w", err)
	}
	params, err := decodeParameters(payload)
	if err != nil {
		return nil, false, err
	}
	return params, true, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
