package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

// ErrNoPendingLogin is returned when a handle is unknown, expired, or already
// consumed.
var ErrNoPendingLogin = errors.New("no pending login")

// PendingLoginStore bridges the two steps of a two-factor login: the password
// step parks the candidate identity under an opaque handle, the code step looks
// it up and consumes it. Records expire on their own after the configured TTL.
type PendingLoginStore interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Get(ctx context.Context, handle string) (uuid.UUID, error)
	// Delete invalidates the handle; called once the login completes.
	Delete(ctx context.Context, handle string) error
}

type pendingLoginStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewPendingLoginStore(log *logger.Logger, ttl time.Duration) (PendingLoginStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &pendingLoginStore{
		log: log.With("service", "PendingLoginStore"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (s *pendingLoginStore) key(handle string) string {
	return "pending_login:" + handle
}

func (s *pendingLoginStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	handle := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(handle), userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store pending login: %w", err)
	}
	return handle, nil
}

func (s *pendingLoginStore) Get(ctx context.Context, handle string) (uuid.UUID, error) {
	val, err := s.rdb.Get(ctx, s.key(handle)).Result()
	if errors.Is(err, goredis.Nil) {
		return uuid.Nil, ErrNoPendingLogin
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("load pending login: %w", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt pending login record: %w", err)
	}
	return userID, nil
}

func (s *pendingLoginStore) Delete(ctx context.Context, handle string) error {
	return s.rdb.Del(ctx, s.key(handle)).Err()
}
