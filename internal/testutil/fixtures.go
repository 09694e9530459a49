package testutil

import (
	"sync"
	"testing"
	"time"

	"contenthub/internal/core/content"
	"contenthub/internal/core/rating"
	"contenthub/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// PNG is the smallest payload the blob store sniffs as an image.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func InsertUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u := &user.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     name,
		Email:    name + "@example.com",
		Password: "hash",
		Token:    "secret-token",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func InsertContent(t *testing.T, db *gorm.DB, owner uuid.UUID, title string, createdAt time.Time) *content.Content {
	t.Helper()
	c := &content.Content{
		ID:        uuid.Must(uuid.NewV7()),
		Title:     title,
		UserID:    owner,
		MediaURL:  "/uploads/content/" + uuid.Must(uuid.NewV4()).String() + ".png",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func InsertRating(t *testing.T, db *gorm.DB, contentID, author uuid.UUID, score int, createdAt time.Time) *rating.Rating {
	t.Helper()
	r := &rating.Rating{
		ID:        uuid.Must(uuid.NewV7()),
		ContentID: contentID,
		UserID:    author,
		Rating:    score,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// Clock hands out strictly increasing timestamps. Safe for concurrent use.
type Clock struct {
	mu sync.Mutex
	T  time.Time
}

func NewClock() *Clock {
	return &Clock{T: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.T = c.T.Add(time.Second)
	return c.T
}
