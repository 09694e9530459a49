package database_test

import (
	"context"
	"testing"
	"time"

	"contenthub/internal/core/content"
	"contenthub/internal/core/rating"
	"contenthub/internal/core/user"
	"contenthub/internal/testutil"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var ctx = context.Background()

func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.NewTestDB(t)
}

func insertUser(t *testing.T, db *gorm.DB, name string) *user.User {
	return testutil.InsertUser(t, db, name)
}

func insertContent(t *testing.T, db *gorm.DB, owner uuid.UUID, title string, createdAt time.Time) *content.Content {
	return testutil.InsertContent(t, db, owner, title, createdAt)
}

func insertRating(t *testing.T, db *gorm.DB, contentID, author uuid.UUID, score int, createdAt time.Time) *rating.Rating {
	return testutil.InsertRating(t, db, contentID, author, score, createdAt)
}
