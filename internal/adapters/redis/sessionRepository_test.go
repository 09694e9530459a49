package redis_test

import (
	"context"
	"testing"
	"time"

	redisadapter "contenthub/internal/adapters/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*redisadapter.SessionRepositoryRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisadapter.NewSessionRepositoryRedis(client), mr
}

func TestSessionRepositoryRedis_Lifecycle(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, repo.Save(ctx, userID, "first", time.Hour))
	require.NoError(t, repo.Save(ctx, userID, "second", time.Hour))
	got, err = repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.Equal(t, time.Hour, mr.TTL("session:"+userID.String()))

	require.NoError(t, repo.Delete(ctx, userID))
	got, err = repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSessionRepositoryRedis_Expires(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	require.NoError(t, repo.Save(ctx, userID, "tok", time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
