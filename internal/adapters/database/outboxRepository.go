package database

import (
	"context"
	"time"

	"contenthub/internal/core/outbox"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type OutboxRepositoryDatabase struct {
	db *gorm.DB
}

func NewOutboxRepositoryDatabase(db *gorm.DB) *OutboxRepositoryDatabase {
	return &OutboxRepositoryDatabase{db: db}
}

func (repo *OutboxRepositoryDatabase) Create(ctx context.Context, e *outbox.Event) (*outbox.Event, error) {
	if err := repo.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// GetPending returns the oldest pending events first.
func (repo *OutboxRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*outbox.Event, error) {
	var events []*outbox.Event
	if err := repo.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *OutboxRepositoryDatabase) MarkProcessed(ctx context.Context, id uuid.UUID, status string) error {
	now := time.Now().UTC()
	return repo.db.WithContext(ctx).Model(&outbox.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "processed_at": &now}).Error
}
