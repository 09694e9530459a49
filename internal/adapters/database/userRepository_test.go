package database_test

import (
	"errors"
	"testing"

	"contenthub/internal/adapters/database"
	"contenthub/internal/core/errs"
	"contenthub/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_DuplicateEmailIsConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewUserRepositoryDatabase(db)

	_, err := repo.Create(ctx, &user.User{ID: uuid.Must(uuid.NewV7()), Name: "A", Email: "a@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &user.User{ID: uuid.Must(uuid.NewV7()), Name: "B", Email: "a@example.com", Password: "y"})
	assert.True(t, errors.Is(err, errs.ErrConflict))
}

func TestFindByIDs_SkipsMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewUserRepositoryDatabase(db)
	a := insertUser(t, db, "a")
	missing := uuid.Must(uuid.NewV7())

	got, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, missing, a.ID})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[a.ID].Name)
}

func TestFindByID_NotFoundIsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewUserRepositoryDatabase(db)

	u, err := repo.FindByID(ctx, uuid.Must(uuid.NewV7()))
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := database.NewSessionRepositoryDatabase(db)
	u := insertUser(t, db, "session")

	require.NoError(t, repo.Save(ctx, u.ID, "tok-1", 0))
	require.NoError(t, repo.Save(ctx, u.ID, "tok-2", 0))
	got, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, repo.Delete(ctx, u.ID))
	got, err = repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
