package outboxapp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"contenthub/internal/adapters/database"
	"contenthub/internal/core/outbox"
	"contenthub/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecord_AppendsPendingEvent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOutboxService(database.NewOutboxRepositoryDatabase(db), zap.NewNop())
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	aggregate := uuid.Must(uuid.NewV7())

	svc.Record(context.Background(), outbox.ContentCreated, aggregate, map[string]string{"title": "hello"})

	var events []outbox.Event
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, outbox.ContentCreated, events[0].Subject)
	assert.Equal(t, aggregate, events[0].AggregateID)
	assert.Equal(t, outbox.StatusPending, events[0].Status)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(events[0].Payload), &payload))
	assert.Equal(t, "hello", payload["title"])
}

func TestNewRecorder_WithoutPublisherWritesNothing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := database.NewOutboxRepositoryDatabase(db)

	rec := NewRecorder(repo, zap.NewNop(), false)
	assert.IsType(t, NopRecorder{}, rec)
	rec.Record(context.Background(), outbox.RatingCreated, uuid.Must(uuid.NewV7()), map[string]int{"rating": 5})

	var count int64
	require.NoError(t, db.Model(&outbox.Event{}).Count(&count).Error)
	assert.Zero(t, count)

	rec = NewRecorder(repo, zap.NewNop(), true)
	rec.Record(context.Background(), outbox.RatingCreated, uuid.Must(uuid.NewV7()), map[string]int{"rating": 5})
	require.NoError(t, db.Model(&outbox.Event{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
