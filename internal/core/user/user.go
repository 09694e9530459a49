package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Avatar    string    `gorm:"type:varchar(255)"`
	Token     string    `gorm:"type:text"` // آخرین نشست فعال؛ ورود جدید آن را بازنویسی می‌کند
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
