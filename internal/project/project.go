// Package project holds the project table that propagated row parameters are
// written back to, keyed by file name and row id.
package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/config"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"

	"github.com/rs/zerolog/log"
)

// ErrInvalidRowID is returned for negative row ids.
var ErrInvalidRowID = errors.New("invalid row id")

// Store is a project table backend. Writes overwrite any earlier value.
type Store interface {
	WriteParameters(ctx context.Context, file string, rowID int, params []row.Parameter) error
	// ReadParameters reports found=false when nothing was written for the key.
	ReadParameters(ctx context.Context, file string, rowID int) (params []row.Parameter, found bool, err error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Open connects the backend selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Store {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendSQLite:
		store, err = NewSQLiteStore(cfg.SQLitePath)
	case BackendPostgres:
		store, err = NewPostgresStore(ctx, cfg.DatabaseURL)
	case BackendRedis:
		store, err = NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, WithPrefix(cfg.RedisPrefix))
	default:
		return nil, fmt.Errorf("unknown project store %q", cfg.Store)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().Str("backend", cfg.Store).Msg("Project store opened")
	return store, nil
}

func checkRowID(rowID int) error {
	if rowID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRowID, rowID)
	}
	return nil
}

func encodeParameters(params []row.Parameter) ([]byte, error) {
	if params == nil {
		params = []row.Parameter{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode parameters: %w", err)
	}
	return data, nil
}

func decodeParameters(data []byte) ([]row.Parameter, error) {
	var params []row.Parameter
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("decode parameters: %w", err)
	}
	if params == nil {
		params = []row.Parameter{}
	}
	return params, nil
}
