package content

import (
	"context"
	"time"

	"contenthub/internal/core/content"
	ratingPort "contenthub/internal/ports/rating"
	userPort "contenthub/internal/ports/user"

	"github.com/gofrs/uuid"
)

// FeedQuery is an already-normalised feed request.
type FeedQuery struct {
	Search string
	Offset int
	Limit  int
}

// ContentRepository پورت برای ذخیره‌سازی و بازیابی محتوا
type ContentRepository interface {
	Create(ctx context.Context, c *content.Content) (*content.Content, error)
	// FindByID returns the content regardless of its deleted flag.
	FindByID(ctx context.Context, id uuid.UUID) (*content.Content, error)
	// FindOwned returns the non-deleted content only when ownerID owns it.
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*content.Content, error)
	Update(ctx context.Context, c *content.Content) (*content.Content, error)
	MarkDeleted(ctx context.Context, id uuid.UUID) error
	ListFeed(ctx context.Context, q FeedQuery) ([]*content.Content, error)
}

// DTOها برای UseCase
type ContentDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
	MediaURL    string `json:"mediaUrl"`
	Deleted     bool   `json:"deleted"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type FeedItemDTO struct {
	ContentDTO
	UserDetails *userPort.UserDTO `json:"userDetails"`
	AvgRating   *float64          `json:"avgRating"`
}

type ContentDetailDTO struct {
	ContentDTO
	UserDetails *userPort.UserDTO      `json:"userDetails"`
	Ratings     []*ratingPort.RatingDTO `json:"ratings"`
}

func ToDTO(c *content.Content) ContentDTO {
	return ContentDTO{
		ID:          c.ID.String(),
		Title:       c.Title,
		Description: c.Description,
		UserID:      c.UserID.String(),
		MediaURL:    c.MediaURL,
		Deleted:     c.Deleted,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
