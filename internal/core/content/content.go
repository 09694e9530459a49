package content

import (
	"time"

	"github.com/gofrs/uuid"
)

// Content is a post with a mandatory image. UserID is a plain reference, the
// store does not enforce it.
type Content struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index"`
	MediaURL    string    `gorm:"type:varchar(255);not null"`
	Deleted     bool      `gorm:"not null;default:false;index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}
