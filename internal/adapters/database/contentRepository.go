package database

import (
	"context"
	"strings"
	"time"

	"contenthub/internal/core/content"
	contentPort "contenthub/internal/ports/content"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// ContentRepositoryDatabase پیاده‌سازی ContentRepository برای دیتابیس
type ContentRepositoryDatabase struct {
	db *gorm.DB
}

// NewContentRepositoryDatabase سازنده ContentRepositoryDatabase
func NewContentRepositoryDatabase(db *gorm.DB) *ContentRepositoryDatabase {
	return &ContentRepositoryDatabase{db: db}
}

func (repo *ContentRepositoryDatabase) Create(ctx context.Context, c *content.Content) (*content.Content, error) {
	if err := repo.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *ContentRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*content.Content, error) {
	var c content.Content
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &c, nil
}

func (repo *ContentRepositoryDatabase) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*content.Content, error) {
	var c content.Content
	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND deleted = ?", id, ownerID, false).
		First(&c).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &c, nil
}

func (repo *ContentRepositoryDatabase) Update(ctx context.Context, c *content.Content) (*content.Content, error) {
	c.UpdatedAt = time.Now().UTC()
	if err := repo.db.WithContext(ctx).Model(&content.Content{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"title":       c.Title,
			"description": c.Description,
			"media_url":   c.MediaURL,
			"updated_at":  c.UpdatedAt,
		}).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *ContentRepositoryDatabase) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Model(&content.Content{}).
		Where("id = ?", id).
		Updates(map[string]any{"deleted": true, "updated_at": time.Now().UTC()}).Error
}

// ListFeed returns one page of non-deleted contents, newest first. The id
// tiebreak keeps pages disjoint when several rows share a timestamp.
func (repo *ContentRepositoryDatabase) ListFeed(ctx context.Context, q contentPort.FeedQuery) ([]*content.Content, error) {
	query := repo.db.WithContext(ctx).Where("deleted = ?", false)
	if q.Search != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '!'", likeContains(q.Search))
	}

	var contents []*content.Content
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likeContains builds a case-insensitive substring pattern with the LIKE
// metacharacters of term taken literally.
func likeContains(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
