package ratingapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contenthub/internal/core/errs"
	"contenthub/internal/core/outbox"
	"contenthub/internal/core/rating"
	contentPort "contenthub/internal/ports/content"
	outboxPort "contenthub/internal/ports/outbox"
	ratingPort "contenthub/internal/ports/rating"
	userPort "contenthub/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const alreadyRatedMsg = "You have already rated this content. Each user can only rate once"

// RatingService سرویس ثبت و تجمیع امتیازها
type RatingService struct {
	RatingRepository  ratingPort.RatingRepository
	ContentRepository contentPort.ContentRepository
	UserRepository    userPort.UserRepository
	events            outboxPort.Recorder
	logger            *zap.Logger
	now               func() time.Time
}

func NewRatingService(
	ratingRepo ratingPort.RatingRepository,
	contentRepo contentPort.ContentRepository,
	userRepo userPort.UserRepository,
	events outboxPort.Recorder,
	logger *zap.Logger,
) *RatingService {
	return &RatingService{
		RatingRepository:  ratingRepo,
		ContentRepository: contentRepo,
		UserRepository:    userRepo,
		events:            events,
		logger:            logger,
		now:               time.Now,
	}
}

// AddRating records one rating per (content, author). Authors cannot rate
// their own or deleted contents.
func (s *RatingService) AddRating(ctx context.Context, contentID, authorID string, score int, comment string) (*ratingPort.RatingDTO, error) {
	id, err := uuid.FromString(contentID)
	if err != nil {
		return nil, errs.BadRequest("Invalid content ID")
	}
	author, err := uuid.FromString(authorID)
	if err != nil {
		return nil, errs.Unauthorized("Invalid user")
	}
	if score < rating.MinScore || score > rating.MaxScore {
		return nil, errs.BadRequest(fmt.Sprintf("Rating must be between %d and %d", rating.MinScore, rating.MaxScore))
	}

	c, err := s.ContentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find content: %w", err)
	}
	if c == nil || c.Deleted || c.UserID == author {
		return nil, errs.NotFound("Content not found or you cannot rate your own content")
	}

	exists, err := s.RatingRepository.Exists(ctx, id, author)
	if err != nil {
		return nil, fmt.Errorf("check rating: %w", err)
	}
	if exists {
		return nil, errs.Conflict(alreadyRatedMsg)
	}

	now := s.now().UTC()
	r, err := s.RatingRepository.Create(ctx, &rating.Rating{
		ID:        uuid.Must(uuid.NewV7()),
		ContentID: id,
		UserID:    author,
		Rating:    score,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		// a concurrent request won the unique index
		return nil, err
	}

	dto := ratingPort.ToDTO(r, nil)
	s.events.Record(ctx, outbox.RatingCreated, r.ID, dto)
	s.logger.Info("rating added", zap.String("contentID", contentID), zap.String("userID", authorID), zap.Int("rating", score))
	return dto, nil
}

// ListRatings returns every non-deleted rating of a content, newest first,
// with the mean and count over that list.
func (s *RatingService) ListRatings(ctx context.Context, contentID string) (*ratingPort.RatingListDTO, error) {
	id, err := uuid.FromString(contentID)
	if err != nil {
		return nil, errs.NotFound("Content not found")
	}

	ratings, err := s.RatingRepository.ListByContent(ctx, id, 0)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	authorIDs := make([]uuid.UUID, 0, len(ratings))
	for _, r := range ratings {
		authorIDs = append(authorIDs, r.UserID)
	}
	authors, err := s.UserRepository.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	out := &ratingPort.RatingListDTO{
		Ratings:      make([]*ratingPort.RatingDTO, 0, len(ratings)),
		TotalRatings: int64(len(ratings)),
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
		out.Ratings = append(out.Ratings, ratingPort.ToDTO(r, userPort.ToDTO(authors[r.UserID])))
	}
	if len(ratings) > 0 {
		avg := float64(sum) / float64(len(ratings))
		out.AverageRating = &avg
	}
	return out, nil
}
