package outboxapp

import (
	"context"
	"encoding/json"
	"time"

	"contenthub/internal/core/outbox"
	outboxPort "contenthub/internal/ports/outbox"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// OutboxService ثبت رویدادها در جدول outbox برای انتشار توسط worker
type OutboxService struct {
	OutboxRepository outboxPort.OutboxRepository
	logger           *zap.Logger
	now              func() time.Time
}

func NewOutboxService(repo outboxPort.OutboxRepository, logger *zap.Logger) *OutboxService {
	return &OutboxService{
		OutboxRepository: repo,
		logger:           logger,
		now:              time.Now,
	}
}

// Record appends a pending event. Failures are logged and swallowed: the
// entity write that triggered the event has already succeeded.
func (s *OutboxService) Record(ctx context.Context, subject string, aggregateID uuid.UUID, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("could not encode outbox payload", zap.String("subject", subject), zap.Error(err))
		return
	}

	event := &outbox.Event{
		ID:          uuid.Must(uuid.NewV7()),
		Subject:     subject,
		AggregateID: aggregateID,
		Payload:     string(body),
		Status:      outbox.StatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if _, err := s.OutboxRepository.Create(ctx, event); err != nil {
		s.logger.Warn("could not record outbox event",
			zap.String("subject", subject),
			zap.String("aggregateID", aggregateID.String()),
			zap.Error(err))
	}
}

// NopRecorder drops every event. Used when no publisher is configured, so
// pending rows do not pile up with nothing to drain them.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, uuid.UUID, any) {}

// NewRecorder returns an OutboxService when events will be published and a
// NopRecorder otherwise.
func NewRecorder(repo outboxPort.OutboxRepository, logger *zap.Logger, publishing bool) outboxPort.Recorder {
	if !publishing {
		logger.Info("outbox recording disabled, no publisher configured")
		return NopRecorder{}
	}
	return NewOutboxService(repo, logger)
}
