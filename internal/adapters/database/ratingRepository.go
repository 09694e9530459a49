package database

import (
	"context"
	"errors"

	"contenthub/internal/core/errs"
	"contenthub/internal/core/rating"
	ratingPort "contenthub/internal/ports/rating"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// RatingRepositoryDatabase پیاده‌سازی RatingRepository برای دیتابیس
type RatingRepositoryDatabase struct {
	db *gorm.DB
}

// NewRatingRepositoryDatabase سازنده RatingRepositoryDatabase
func NewRatingRepositoryDatabase(db *gorm.DB) *RatingRepositoryDatabase {
	return &RatingRepositoryDatabase{db: db}
}

func (repo *RatingRepositoryDatabase) Create(ctx context.Context, r *rating.Rating) (*rating.Rating, error) {
	if err := repo.db.WithContext(ctx).Create(r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Wrap(errs.ErrConflict, alreadyRatedMsg, err)
		}
		return nil, err
	}
	return r, nil
}

const alreadyRatedMsg = "You have already rated this content. Each user can only rate once"

func (repo *RatingRepositoryDatabase) Exists(ctx context.Context, contentID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&rating.Rating{}).
		Where("content_id = ? AND user_id = ? AND deleted = ?", contentID, userID, false).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *RatingRepositoryDatabase) ListByContent(ctx context.Context, contentID uuid.UUID, limit int) ([]*rating.Rating, error) {
	query := repo.db.WithContext(ctx).
		Where("content_id = ? AND deleted = ?", contentID, false).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ratings []*rating.Rating
	if err := query.Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

type summaryRow struct {
	ContentID uuid.UUID
	Average   float64
	Total     int64
}

// Summaries groups the non-deleted ratings of the given contents in a single
// query. The deleted filter runs before the aggregate.
func (repo *RatingRepositoryDatabase) Summaries(ctx context.Context, contentIDs []uuid.UUID) (map[uuid.UUID]ratingPort.Summary, error) {
	result := make(map[uuid.UUID]ratingPort.Summary, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}

	var rows []summaryRow
	if err := repo.db.WithContext(ctx).Model(&rating.Rating{}).
		Select("content_id, AVG(rating) AS average, COUNT(*) AS total").
		Where("deleted = ? AND content_id IN ?", false, uniqueIDs(contentIDs)).
		Group("content_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ContentID] = ratingPort.Summary{Average: row.Average, Count: row.Total}
	}
	return result, nil
}
