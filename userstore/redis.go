package userstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/credgate/credgate"
)

const (
	redisUserKeyPrefix = "cu:user:"
	redisUsernameSet   = "cu:usernames"
)

// ErrStoreUnavailable wraps Redis failures so callers can tell an outage
// apart from a domain result.
var ErrStoreUnavailable = errors.New("user store unavailable")

type redisRecord struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordDigest string    `json:"digest"`
	Email          string    `json:"email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Redis is a user repository backed by Redis. Each record is one JSON value
// under "cu:user:<username>"; a companion set carries the usernames for
// listing. Uniqueness is enforced by SETNX, so concurrent registrations of
// one username resolve at the store.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis wraps client as a user repository.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// FindByUsername implements credgate.UserRepository.
func (r *Redis) FindByUsername(ctx context.Context, username string) (*credgate.UserRecord, error) {
	raw, err := r.client.Get(ctx, redisUserKeyPrefix+username).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, credgate.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: corrupt record", ErrStoreUnavailable)
	}

	return &credgate.UserRecord{
		Username:       rec.Username,
		PasswordDigest: rec.PasswordDigest,
		Email:          rec.Email,
		CreatedAt:      rec.CreatedAt,
	}, nil
}

// Save implements credgate.UserRepository. SETNX claims the username; a
// losing writer gets credgate.ErrDuplicateUser and mutates nothing.
func (r *Redis) Save(ctx context.Context, record credgate.UserRecord) error {
	rec := redisRecord{
		ID:             uuid.NewString(),
		Username:       record.Username,
		PasswordDigest: record.PasswordDigest,
		Email:          record.Email,
		CreatedAt:      record.CreatedAt,
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode record: %v", ErrStoreUnavailable, err)
	}

	claimed, err := r.client.SetNX(ctx, redisUserKeyPrefix+record.Username, raw, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !claimed {
		return credgate.ErrDuplicateUser
	}

	if err := r.client.SAdd(ctx, redisUsernameSet, record.Username).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// ListUsernames implements credgate.UserRepository. Output is sorted for
// stable responses.
func (r *Redis) ListUsernames(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, redisUsernameSet).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	sort.Strings(names)
	return names, nil
}
