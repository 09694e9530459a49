package database_test

import (
	"errors"
	"testing"
	"time"

	"contenthub/internal/adapters/database"
	"contenthub/internal/core/errs"
	"contenthub/internal/core/rating"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingCreate_DuplicatePairIsConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewRatingRepositoryDatabase(db)
	owner := insertUser(t, db, "owner")
	rater := insertUser(t, db, "rater")
	c := insertContent(t, db, owner.ID, "post", time.Now())

	_, err := repo.Create(ctx, &rating.Rating{ID: uuid.Must(uuid.NewV7()), ContentID: c.ID, UserID: rater.ID, Rating: 4})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &rating.Rating{ID: uuid.Must(uuid.NewV7()), ContentID: c.ID, UserID: rater.ID, Rating: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrConflict))

	exists, err := repo.Exists(ctx, c.ID, rater.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRatingCreate_SoftDeletedRatingStillBlocksPair(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewRatingRepositoryDatabase(db)
	owner := insertUser(t, db, "owner")
	rater := insertUser(t, db, "rater")
	c := insertContent(t, db, owner.ID, "post", time.Now())

	first := insertRating(t, db, c.ID, rater.ID, 4, time.Now())
	require.NoError(t, db.Model(&rating.Rating{}).Where("id = ?", first.ID).Update("deleted", true).Error)

	exists, err := repo.Exists(ctx, c.ID, rater.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// the pair stays taken once rated, deleted or not
	_, err = repo.Create(ctx, &rating.Rating{ID: uuid.Must(uuid.NewV7()), ContentID: c.ID, UserID: rater.ID, Rating: 2})
	assert.True(t, errors.Is(err, errs.ErrConflict))
}

func TestSummaries_IgnoreDeletedRatings(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewRatingRepositoryDatabase(db)
	owner := insertUser(t, db, "owner")
	a := insertUser(t, db, "a")
	b := insertUser(t, db, "b")
	c := insertUser(t, db, "c")
	now := time.Now().UTC()

	post := insertContent(t, db, owner.ID, "post", now)
	empty := insertContent(t, db, owner.ID, "empty", now)
	insertRating(t, db, post.ID, a.ID, 3, now)
	insertRating(t, db, post.ID, b.ID, 5, now.Add(time.Second))
	gone := insertRating(t, db, post.ID, c.ID, 1, now.Add(2*time.Second))
	require.NoError(t, db.Model(&rating.Rating{}).Where("id = ?", gone.ID).Update("deleted", true).Error)

	sums, err := repo.Summaries(ctx, []uuid.UUID{post.ID, empty.ID})
	require.NoError(t, err)

	require.Contains(t, sums, post.ID)
	assert.InDelta(t, 4.0, sums[post.ID].Average, 1e-9)
	assert.Equal(t, int64(2), sums[post.ID].Count)
	assert.NotContains(t, sums, empty.ID)
}

func TestListByContent_NewestFirstWithLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewRatingRepositoryDatabase(db)
	owner := insertUser(t, db, "owner")
	post := insertContent(t, db, owner.ID, "post", time.Now())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 7; i++ {
		rater := insertUser(t, db, uuid.Must(uuid.NewV4()).String()[:8])
		ids = append(ids, insertRating(t, db, post.ID, rater.ID, 1+i%5, base.Add(time.Duration(i)*time.Minute)).ID)
	}

	top, err := repo.ListByContent(ctx, post.ID, 5)
	require.NoError(t, err)
	require.Len(t, top, 5)
	assert.Equal(t, ids[6], top[0].ID)
	assert.Equal(t, ids[2], top[4].ID)

	all, err := repo.ListByContent(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}
