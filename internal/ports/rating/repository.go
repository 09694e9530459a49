package rating

import (
	"context"
	"time"

	"contenthub/internal/core/rating"
	userPort "contenthub/internal/ports/user"

	"github.com/gofrs/uuid"
)

// Summary is the aggregate over the non-deleted ratings of one content.
type Summary struct {
	Average float64
	Count   int64
}

// RatingRepository پورت برای ذخیره‌سازی و بازیابی امتیازها
type RatingRepository interface {
	// Create fails with an error wrapping errs.ErrConflict when the
	// (content, author) pair already exists.
	Create(ctx context.Context, r *rating.Rating) (*rating.Rating, error)
	Exists(ctx context.Context, contentID, userID uuid.UUID) (bool, error)
	// ListByContent returns non-deleted ratings newest first; limit <= 0 means all.
	ListByContent(ctx context.Context, contentID uuid.UUID, limit int) ([]*rating.Rating, error)
	// Summaries has an entry only for contents with at least one rating.
	Summaries(ctx context.Context, contentIDs []uuid.UUID) (map[uuid.UUID]Summary, error)
}

// DTOها برای UseCase
type RatingDTO struct {
	ID          string            `json:"id"`
	ContentID   string            `json:"contentId"`
	UserID      string            `json:"userId"`
	Rating      int               `json:"rating"`
	Comment     string            `json:"comment"`
	CreatedAt   string            `json:"createdAt"`
	UserDetails *userPort.UserDTO `json:"userDetails,omitempty"`
}

type RatingListDTO struct {
	Ratings       []*RatingDTO `json:"ratings"`
	AverageRating *float64     `json:"averageRating"`
	TotalRatings  int64        `json:"totalRatings"`
}

func ToDTO(r *rating.Rating, author *userPort.UserDTO) *RatingDTO {
	return &RatingDTO{
		ID:          r.ID.String(),
		ContentID:   r.ContentID.String(),
		UserID:      r.UserID.String(),
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UserDetails: author,
	}
}
