package project

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"

	backend "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultRedisPrefix = "rpgm:project:"

// RedisStore keeps one hash per project file, with a field per row id.
type RedisStore struct {
	client *backend.Client
	prefix string
}

type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix. An empty prefix keeps the default.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore connects to address and verifies the connection.
func NewRedisStore(ctx context.Context, address, password string, db int, opts ...RedisOption) (*RedisStore, error) {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().Str("addr", address).Msg("Connected to Redis")
	return NewRedisStoreFromClient(client, opts...), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(file string) string {
	return s.prefix + file
}

func (s *RedisStore) WriteParameters(ctx context.Context, file string, rowID int, params []row.Parameter) error {
	if err := checkRowID(rowID); err != nil {
		return err
	}
	payload, err := encodeParameters(params)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.key(file), strconv.Itoa(rowID), payload).Err(); err != nil {
		return fmt.Errorf("hset row parameters: %w", err)
	}
	return nil
}

func (s *RedisStore) ReadParameters(ctx context.Context, file string, rowID int) ([]row.Parameter, bool, error) {
	if err := checkRowID(rowID); err != nil {
		return nil, false, err
	}
	val, err := s.client.HGet(ctx, s.key(file), strconv.Itoa(rowID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("hget row parameters: %w", err)
	}
	params, err := decodeParameters(val)
	if err != nil {
		return nil, false, err
	}
	return params, true, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
