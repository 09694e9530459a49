package workers

import (
	"context"
	"time"

	"contenthub/internal/core/outbox"
	outboxPort "contenthub/internal/ports/outbox"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type OutboxWorker struct {
	OutboxRepo   outboxPort.OutboxRepository
	Publisher    outboxPort.Publisher
	BatchSize    int // تعداد رویدادهایی که در هر دور خوانده می‌شوند
	PollInterval time.Duration
	Logger       *zap.Logger
}

func NewOutboxWorker(
	outboxRepo outboxPort.OutboxRepository,
	publisher outboxPort.Publisher,
	batchSize int,
	pollInterval time.Duration,
	logger *zap.Logger,
) *OutboxWorker {
	return &OutboxWorker{
		OutboxRepo:   outboxRepo,
		Publisher:    publisher,
		BatchSize:    batchSize,
		PollInterval: pollInterval,
		Logger:       logger,
	}
}

// Run خواندن رویدادهای pending و انتشار آن‌ها تا لغو context
func (w *OutboxWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 OutboxWorker started")
	for {
		w.ProcessBatch(ctx)

		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 Outbox worker stopped")
			return
		case <-time.After(w.PollInterval):
		}
	}
}

// ProcessBatch publishes one batch of pending events and returns how many
// were handled.
func (w *OutboxWorker) ProcessBatch(ctx context.Context) int {
	pending, err := w.OutboxRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		if ctx.Err() == nil {
			w.Logger.Error("❌ Error fetching pending events", zap.Error(err))
		}
		return 0
	}

	for _, ev := range pending {
		w.publish(ctx, ev)
	}
	return len(pending)
}

func (w *OutboxWorker) publish(ctx context.Context, ev *outbox.Event) {
	ctx, span := otel.Tracer("contenthub/outbox").Start(ctx, "outbox.publish")
	span.SetAttributes(
		attribute.String("event.subject", ev.Subject),
		attribute.String("event.aggregate_id", ev.AggregateID.String()),
	)
	defer span.End()

	status := outbox.StatusDone
	if err := w.Publisher.Publish(ctx, ev.Subject, []byte(ev.Payload)); err != nil {
		span.RecordError(err)
		w.Logger.Error("❌ Error publishing event",
			zap.String("ID", ev.ID.String()),
			zap.String("subject", ev.Subject),
			zap.Error(err))
		status = outbox.StatusFailed
	}

	if err := w.OutboxRepo.MarkProcessed(ctx, ev.ID, status); err != nil {
		w.Logger.Warn("⚠️ Warning: could not mark outbox event", zap.String("ID", ev.ID.String()), zap.Error(err))
		return
	}
	w.Logger.Debug("✅ Outbox event processed", zap.String("ID", ev.ID.String()), zap.String("status", status))
}
