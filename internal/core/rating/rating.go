package rating

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is one author's score for one content. The unique index makes the
// (content, author) pair exclusive at the storage level.
type Rating struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	ContentID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_rating_content_author"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_rating_content_author"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	Deleted   bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Rating) TableName() string {
	return "content_ratings"
}
