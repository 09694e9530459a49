package database_test

import (
	"testing"
	"time"

	"contenthub/internal/adapters/database"
	contentPort "contenthub/internal/ports/content"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(t *testing.T, repo *database.ContentRepositoryDatabase, q contentPort.FeedQuery) []string {
	t.Helper()
	list, err := repo.ListFeed(ctx, q)
	require.NoError(t, err)
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Title)
	}
	return out
}

func TestListFeed_FiltersDeletedAndOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewContentRepositoryDatabase(db)
	owner := insertUser(t, db, "owner")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	insertContent(t, db, owner.ID, "first", base)
	hidden := insertContent(t, db, owner.ID, "second", base.Add(time.Minute))
	insertContent(t, db, owner.ID, "third", base.Add(2*time.Minute))
	require.NoError(t, repo.MarkDeleted(ctx, hidden.ID))

	assert.Equal(t, []string{"third", "first"}, titles(t, repo, contentPort.FeedQuery{Limit: 10}))
}

func TestListFeed_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewContentRepositoryDatabase(db)
	owner := insertUser(t, db, "owner")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	insertContent(t, db, owner.ID, "Sunset Beach", base)
	insertContent(t, db, owner.ID, "mountain SUNRISE", base.Add(time.Minute))
	insertContent(t, db, owner.ID, "100% real", base.Add(2*time.Minute))
	insertContent(t, db, owner.ID, "1000 real", base.Add(3*time.Minute))

	assert.Equal(t, []string{"mountain SUNRISE", "Sunset Beach"}, titles(t, repo, contentPort.FeedQuery{Search: "sUn", Limit: 10}))
	// '%' is matched literally.
	assert.Equal(t, []string{"100% real"}, titles(t, repo, contentPort.FeedQuery{Search: "0%", Limit: 10}))
	assert.Len(t, titles(t, repo, contentPort.FeedQuery{Limit: 10}), 4)
}

func TestListFeed_PagesAreDisjointAndComplete(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewContentRepositoryDatabase(db)
	owner := insertUser(t, db, "owner")
	same := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Shared timestamps force the id tiebreak.
	for i := 0; i < 7; i++ {
		insertContent(t, db, owner.ID, uuid.Must(uuid.NewV4()).String(), same.Add(time.Duration(i/3)*time.Second))
	}

	all := titles(t, repo, contentPort.FeedQuery{Limit: 100})
	require.Len(t, all, 7)

	var paged []string
	for page := 0; ; page++ {
		got := titles(t, repo, contentPort.FeedQuery{Offset: page * 3, Limit: 3})
		paged = append(paged, got...)
		if len(got) < 3 {
			break
		}
	}
	assert.Equal(t, all, paged)
}

func TestFindOwned_RequiresOwnerAndNotDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewContentRepositoryDatabase(db)
	owner := insertUser(t, db, "owner")
	other := insertUser(t, db, "other")
	c := insertContent(t, db, owner.ID, "mine", time.Now())

	got, err := repo.FindOwned(ctx, c.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = repo.FindOwned(ctx, c.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.MarkDeleted(ctx, c.ID))
	got, err = repo.FindOwned(ctx, c.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// FindByID still sees it.
	got, err = repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
}
