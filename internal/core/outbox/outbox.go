package outbox

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Event subjects published by the outbox worker.
const (
	ContentCreated = "content.created"
	ContentUpdated = "content.updated"
	ContentDeleted = "content.deleted"
	RatingCreated  = "rating.created"
)

type Event struct {
	ID          uuid.UUID  `gorm:"primary_key;type:char(36)"`
	Subject     string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:char(36);not null"`
	Payload     string     `gorm:"type:text;not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"` // pending, done, failed
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (Event) TableName() string {
	return "outbox_events"
}
