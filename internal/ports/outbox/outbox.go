package outbox

import (
	"context"

	"contenthub/internal/core/outbox"

	"github.com/gofrs/uuid"
)

type OutboxRepository interface {
	Create(ctx context.Context, e *outbox.Event) (*outbox.Event, error)
	GetPending(ctx context.Context, limit int) ([]*outbox.Event, error)
	MarkProcessed(ctx context.Context, id uuid.UUID, status string) error
}

type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

// Recorder is what the services use to append events after a write.
type Recorder interface {
	Record(ctx context.Context, subject string, aggregateID uuid.UUID, payload any)
}
