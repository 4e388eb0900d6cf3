package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Key layout: one hash per identity plus plain-string secondary indexes so
// token and email lookups stay O(1).
const (
	redisIdentityPrefix = "identity:"
	redisEmailPrefix    = "identity:email:"
	redisSessionPrefix  = "identity:session:"
	redisResetPrefix    = "identity:reset:"

	// redisUpdateRetries bounds optimistic-lock retries on contended updates.
	redisUpdateRetries = 5
)

// RedisStore implements Store on a Redis instance. Inserts claim the email
// index with SETNX; updates run under WATCH so a concurrent write to the same
// identity aborts and retries instead of losing fields.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("identity: nil redis client")
	}
	return &RedisStore{client: client}
}

// Find returns the identity matching the filter.
func (s *RedisStore) Find(ctx context.Context, filter Filter) (*Identity, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var id string
	switch {
	case filter.id != nil:
		id = filter.id.String()
	case filter.email != nil:
		resolved, err := s.client.Get(ctx, redisEmailPrefix+*filter.email).Result()
		if err != nil {
			return nil, translateRedisErr(err)
		}
		id = resolved
	case filter.sessionToken != nil:
		resolved, err := s.client.Get(ctx, redisSessionPrefix+*filter.sessionToken).Result()
		if err != nil {
			return nil, translateRedisErr(err)
		}
		id = resolved
	case filter.resetToken != nil:
		resolved, err := s.client.Get(ctx, redisResetPrefix+*filter.resetToken).Result()
		if err != nil {
			return nil, translateRedisErr(err)
		}
		id = resolved
	}

	return s.load(ctx, id)
}

// Insert persists a new identity, claiming the email index atomically.
func (s *RedisStore) Insert(ctx context.Context, email string, passwordHash []byte) (*Identity, error) {
	i := &Identity{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		CreatedAt:    time.Now(),
	}

	claimed, err := s.client.SetNX(ctx, redisEmailPrefix+email, i.ID.String(), 0).Result()
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	if !claimed {
		return nil, ErrEmailTaken
	}

	fields := map[string]any{
		"email":         i.Email,
		"password_hash": string(i.PasswordHash),
		"created_at":    i.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := s.client.HSet(ctx, redisIdentityPrefix+i.ID.String(), fields).Err(); err != nil {
		// Release the claim so a retry is not locked out forever.
		_ = s.client.Del(ctx, redisEmailPrefix+email).Err()
		return nil, errors.Join(ErrUnavailable, err)
	}

	return i.clone(), nil
}

// Update applies the changeset under WATCH so the hash and its token indexes
// change together or not at all.
func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, changes Changes) error {
	key := redisIdentityPrefix + id.String()

	apply := func(tx *redis.Tx) error {
		current, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return errors.Join(ErrUnavailable, err)
		}
		if len(current) == 0 {
			return ErrNotFound
		}
		if changes.IfResetToken != nil && current["reset_token"] != *changes.IfResetToken {
			return ErrNotFound
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if changes.PasswordHash != nil {
				pipe.HSet(ctx, key, "password_hash", string(changes.PasswordHash))
			}
			if v, ok := changes.SessionToken.Apply(); ok {
				if old := current["session_token"]; old != "" {
					pipe.Del(ctx, redisSessionPrefix+old)
				}
				if v != nil {
					pipe.HSet(ctx, key, "session_token", *v)
					pipe.Set(ctx, redisSessionPrefix+*v, id.String(), 0)
				} else {
					pipe.HDel(ctx, key, "session_token")
				}
			}
			if v, ok := changes.ResetToken.Apply(); ok {
				if old := current["reset_token"]; old != "" {
					pipe.Del(ctx, redisResetPrefix+old)
				}
				if v != nil {
					pipe.HSet(ctx, key, "reset_token", *v)
					pipe.Set(ctx, redisResetPrefix+*v, id.String(), 0)
				} else {
					pipe.HDel(ctx, key, "reset_token")
				}
			}
			return nil
		})
		return err
	}

	for range redisUpdateRetries {
		err := s.client.Watch(ctx, apply, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
			return err
		}
		return errors.Join(ErrUnavailable, err)
	}

	return errors.Join(ErrUnavailable, redis.TxFailedErr)
}

func (s *RedisStore) load(ctx context.Context, id string) (*Identity, error) {
	fields, err := s.client.HGetAll(ctx, redisIdentityPrefix+id).Result()
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}

	i := &Identity{
		ID:           parsed,
		Email:        fields["email"],
		PasswordHash: []byte(fields["password_hash"]),
	}
	if v, ok := fields["session_token"]; ok && v != "" {
		i.SessionToken = &v
	}
	if v, ok := fields["reset_token"]; ok && v != "" {
		i.ResetToken = &v
	}
	if ts, ok := fields["created_at"]; ok {
		i.CreatedAt, _ = time.Parse(time.RFC3339Nano, ts)
	}

	return i, nil
}

func translateRedisErr(err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	return errors.Join(ErrUnavailable, err)
}
