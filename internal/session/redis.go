package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/interview"
)

const pingTimeout = 5 * time.Second

// RedisStore keeps each report as a JSON string and indexes ids in a sorted set
// scored by creation time.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(ctx context.Context, cfg RedisConfig, log *zap.Logger) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, &PersistenceError{Op: "open", Cause: errors.New("redis address is required")}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	store, err := NewRedisStoreWithClient(ctx, client, cfg.Prefix, cfg.TTL, log)
	if err != nil {
		client.Close()
		return nil, err
	}
	return store, nil
}

// NewRedisStoreWithClient wraps an existing client and checks that it is reachable.
func NewRedisStoreWithClient(ctx context.Context, client *redis.Client, prefix string, ttl time.Duration, log *zap.Logger) (*RedisStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, &PersistenceError{Op: "open", Cause: fmt.Errorf("ping redis: %w", err)}
	}

	return &RedisStore{client: client, prefix: prefix, ttl: ttl, logger: log}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + "session:" + id
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "sessions"
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Save(ctx context.Context, report *interview.Report) (string, error) {
	data, err := prepare(report)
	if err != nil {
		return "", err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(report.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), redis.Z{
		Score:  float64(report.CreatedAt.UnixNano()),
		Member: report.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", &PersistenceError{Op: "save", ID: report.ID, Cause: err}
	}

	s.logger.Debug("session saved", zap.String("id", report.ID), zap.String("key", s.key(report.ID)))
	return report.ID, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*interview.Report, error) {
	if err := checkID(id); err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: ErrNotFound}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}

	return decode(id, data)
}

// List drops index members whose documents have expired.
func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, &PersistenceError{Op: "list", Cause: err}
	}

	entries := make([]Entry, 0, len(ids))
	var stale []any
	for _, id := range ids {
		report, err := s.Load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			s.logger.Warn("skipping unreadable session", zap.String("id", id), zap.Error(err))
			continue
		}
		entries = append(entries, entryOf(report))
	}

	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			s.logger.Warn("failed to prune expired sessions", zap.Error(err))
		}
	}

	sortEntries(entries)
	return entries, nil
}
