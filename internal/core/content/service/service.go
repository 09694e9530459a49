package contentapp

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"contenthub/internal/core/content"
	"contenthub/internal/core/errs"
	"contenthub/internal/core/outbox"
	blobPort "contenthub/internal/ports/blob"
	contentPort "contenthub/internal/ports/content"
	outboxPort "contenthub/internal/ports/outbox"
	ratingPort "contenthub/internal/ports/rating"
	userPort "contenthub/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// DetailRatingLimit is how many recent ratings the detail view embeds.
	DetailRatingLimit = 5
)

// ContentService سرویس مدیریت محتوا و فید
type ContentService struct {
	ContentRepository contentPort.ContentRepository
	RatingRepository  ratingPort.RatingRepository
	UserRepository    userPort.UserRepository
	blobs             blobPort.Store
	events            outboxPort.Recorder
	logger            *zap.Logger
	now               func() time.Time
}

func NewContentService(
	contentRepo contentPort.ContentRepository,
	ratingRepo ratingPort.RatingRepository,
	userRepo userPort.UserRepository,
	blobs blobPort.Store,
	events outboxPort.Recorder,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		ContentRepository: contentRepo,
		RatingRepository:  ratingRepo,
		UserRepository:    userRepo,
		blobs:             blobs,
		events:            events,
		logger:            logger,
		now:               time.Now,
	}
}

// NormalizePage clamps caller paging input into a valid offset and limit.
func NormalizePage(pageIndex, pageSize int) (offset, limit int) {
	if pageIndex < 0 {
		pageIndex = 0
	}
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	// past the last representable offset every page is empty anyway
	if pageIndex > math.MaxInt/pageSize {
		pageIndex = math.MaxInt / pageSize
	}
	return pageIndex * pageSize, pageSize
}

// ListFeed returns one page of the feed, each item carrying its owner's
// public profile and the mean of its non-deleted ratings.
func (s *ContentService) ListFeed(ctx context.Context, search string, pageIndex, pageSize int) ([]*contentPort.FeedItemDTO, error) {
	offset, limit := NormalizePage(pageIndex, pageSize)
	contents, err := s.ContentRepository.ListFeed(ctx, contentPort.FeedQuery{
		Search: search,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	items := make([]*contentPort.FeedItemDTO, 0, len(contents))
	if len(contents) == 0 {
		return items, nil
	}

	ownerIDs := make([]uuid.UUID, 0, len(contents))
	contentIDs := make([]uuid.UUID, 0, len(contents))
	for _, c := range contents {
		ownerIDs = append(ownerIDs, c.UserID)
		contentIDs = append(contentIDs, c.ID)
	}

	owners, err := s.UserRepository.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("load owners: %w", err)
	}
	summaries, err := s.RatingRepository.Summaries(ctx, contentIDs)
	if err != nil {
		return nil, fmt.Errorf("load rating summaries: %w", err)
	}

	for _, c := range contents {
		item := &contentPort.FeedItemDTO{
			ContentDTO:  contentPort.ToDTO(c),
			UserDetails: userPort.ToDTO(owners[c.UserID]),
		}
		if sum, ok := summaries[c.ID]; ok && sum.Count > 0 {
			avg := sum.Average
			item.AvgRating = &avg
		}
		items = append(items, item)
	}
	return items, nil
}

// GetContentDetail returns a live content with its owner and newest ratings.
func (s *ContentService) GetContentDetail(ctx context.Context, contentID string) (*contentPort.ContentDetailDTO, error) {
	id, err := parseContentID(contentID)
	if err != nil {
		return nil, err
	}
	c, err := s.ContentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find content: %w", err)
	}
	if c == nil || c.Deleted {
		return nil, errs.NotFound("Content not found")
	}

	ratings, err := s.RatingRepository.ListByContent(ctx, id, DetailRatingLimit)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	userIDs := []uuid.UUID{c.UserID}
	for _, r := range ratings {
		userIDs = append(userIDs, r.UserID)
	}
	users, err := s.UserRepository.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	detail := &contentPort.ContentDetailDTO{
		ContentDTO:  contentPort.ToDTO(c),
		UserDetails: userPort.ToDTO(users[c.UserID]),
		Ratings:     make([]*ratingPort.RatingDTO, 0, len(ratings)),
	}
	for _, r := range ratings {
		detail.Ratings = append(detail.Ratings, ratingPort.ToDTO(r, userPort.ToDTO(users[r.UserID])))
	}
	return detail, nil
}

// CreateContent ایجاد محتوای جدید؛ تصویر ابتدا ذخیره می‌شود
func (s *ContentService) CreateContent(ctx context.Context, ownerID, title, description string, media *blobPort.File) (*contentPort.ContentDTO, error) {
	owner, err := uuid.FromString(ownerID)
	if err != nil {
		return nil, errs.Unauthorized("Invalid user")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errs.BadRequest("Title is required")
	}
	if media == nil {
		return nil, errs.BadRequest("Please upload an image")
	}

	path, err := s.blobs.Store(ctx, "content", media.Filename, media.Reader)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c, err := s.ContentRepository.Create(ctx, &content.Content{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       title,
		Description: strings.TrimSpace(description),
		UserID:      owner,
		MediaURL:    path,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	dto := contentPort.ToDTO(c)
	s.events.Record(ctx, outbox.ContentCreated, c.ID, dto)
	s.logger.Info("content created", zap.String("contentID", c.ID.String()), zap.String("userID", ownerID))
	return &dto, nil
}

// UpdateContent ویرایش محتوا توسط مالک. عنوان خالی تغییر نمی‌کند؛
// description is replaced whenever it is given, even when empty.
func (s *ContentService) UpdateContent(ctx context.Context, contentID, ownerID, title string, description *string, media *blobPort.File) (*contentPort.ContentDTO, error) {
	c, err := s.findOwned(ctx, contentID, ownerID)
	if err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		c.Title = title
	}
	if description != nil {
		c.Description = strings.TrimSpace(*description)
	}
	if media != nil {
		path, err := s.blobs.Store(ctx, "content", media.Filename, media.Reader)
		if err != nil {
			return nil, err
		}
		c.MediaURL = path
	}

	updated, err := s.ContentRepository.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	dto := contentPort.ToDTO(updated)
	s.events.Record(ctx, outbox.ContentUpdated, updated.ID, dto)
	return &dto, nil
}

// DeleteContent حذف نرم محتوا؛ امتیازها دست نخورده باقی می‌مانند
func (s *ContentService) DeleteContent(ctx context.Context, contentID, ownerID string) error {
	c, err := s.findOwned(ctx, contentID, ownerID)
	if err != nil {
		return err
	}
	if err := s.ContentRepository.MarkDeleted(ctx, c.ID); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	s.events.Record(ctx, outbox.ContentDeleted, c.ID, map[string]string{
		"id":     c.ID.String(),
		"userId": c.UserID.String(),
	})
	s.logger.Info("content deleted", zap.String("contentID", c.ID.String()))
	return nil
}

// findOwned folds "not yours" into "not found".
func (s *ContentService) findOwned(ctx context.Context, contentID, ownerID string) (*content.Content, error) {
	id, err := parseContentID(contentID)
	if err != nil {
		return nil, err
	}
	owner, err := uuid.FromString(ownerID)
	if err != nil {
		return nil, errs.Unauthorized("Invalid user")
	}
	c, err := s.ContentRepository.FindOwned(ctx, id, owner)
	if err != nil {
		return nil, fmt.Errorf("find content: %w", err)
	}
	if c == nil {
		return nil, errs.NotFound("Content not found or you don't have permission")
	}
	return c, nil
}

func parseContentID(contentID string) (uuid.UUID, error) {
	id, err := uuid.FromString(contentID)
	if err != nil {
		return uuid.Nil, errs.BadRequest("Invalid content ID")
	}
	return id, nil
}
