package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStore keeps the project table in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the project table at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "translator_project.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS row_parameters (
		file TEXT NOT NULL,
		row_id INTEGER NOT NULL,
		payload BLOB NOT NULL,
		PRIMARY KEY (file, row_id)
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create row_parameters table: %w", err)
	}

	log.Debug().Str("path", path).Msg("Opened SQLite project table")
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) WriteParameters(ctx context.Context, file string, rowID int, params []row.Parameter) error {
	if err := checkRowID(rowID); err != nil {
		return err
	}
	payload, err := encodeParameters(params)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO row_parameters (file, row_id, payload) VALUES (?, ?, ?)
		ON CONFLICT (file, row_id) DO UPDATE SET payload = excluded.payload`, file, rowID, payload)
	if err != nil {
		return fmt.Errorf("upsert row parameters: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ReadParameters(ctx context.Context, file string, rowID int) ([]row.Parameter, bool, error) {
	if err := checkRowID(rowID); err != nil {
		return nil, false, err
	}
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM row_parameters WHERE file = ? AND row_id = ?`, file, rowID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
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

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
