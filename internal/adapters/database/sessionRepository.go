package database

import (
	"context"
	"time"

	"contenthub/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// SessionRepositoryDatabase keeps the active token on the user row.
type SessionRepositoryDatabase struct {
	db *gorm.DB
}

func NewSessionRepositoryDatabase(db *gorm.DB) *SessionRepositoryDatabase {
	return &SessionRepositoryDatabase{db: db}
}

// Save ignores ttl; expiry is carried by the token itself.
func (repo *SessionRepositoryDatabase) Save(ctx context.Context, userID uuid.UUID, token string, _ time.Duration) error {
	return repo.setToken(ctx, userID, token)
}

func (repo *SessionRepositoryDatabase) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Select("token").Where("id = ?", userID).First(&u).Error; err != nil {
		return "", notFoundAsNil(err)
	}
	return u.Token, nil
}

func (repo *SessionRepositoryDatabase) Delete(ctx context.Context, userID uuid.UUID) error {
	return repo.setToken(ctx, userID, "")
}

func (repo *SessionRepositoryDatabase) setToken(ctx context.Context, userID uuid.UUID, token string) error {
	return repo.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", userID).
		Update("token", token).Error
}
