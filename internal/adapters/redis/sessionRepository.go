package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
)

const sessionKeyPrefix = "session:"

// SessionRepositoryRedis نگهداری توکن فعال هر کاربر در Redis
type SessionRepositoryRedis struct {
	Client *redis.Client
}

func NewSessionRepositoryRedis(client *redis.Client) *SessionRepositoryRedis {
	return &SessionRepositoryRedis{
		Client: client,
	}
}

func sessionKey(userID uuid.UUID) string {
	return sessionKeyPrefix + userID.String()
}

// Save overwrites the user's session; the key expires with the token.
func (r *SessionRepositoryRedis) Save(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	return r.Client.Set(ctx, sessionKey(userID), token, ttl).Err()
}

func (r *SessionRepositoryRedis) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := r.Client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (r *SessionRepositoryRedis) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.Client.Del(ctx, sessionKey(userID)).Err()
}
