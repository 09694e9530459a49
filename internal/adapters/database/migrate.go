package database

import (
	"contenthub/internal/core/content"
	"contenthub/internal/core/outbox"
	"contenthub/internal/core/rating"
	"contenthub/internal/core/user"

	"gorm.io/gorm"
)

// AutoMigrate اعمال مایگریشن برای مدل‌ها
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&content.Content{},
		&rating.Rating{},
		&outbox.Event{},
	)
}
