package userapp

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"contenthub/internal/adapters/database"
	"contenthub/internal/adapters/storage"
	credentialapp "contenthub/internal/core/credential/service"
	"contenthub/internal/core/errs"
	"contenthub/internal/core/user"
	blobPort "contenthub/internal/ports/blob"
	"contenthub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*UserService, *credentialapp.CredentialService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	logger := zap.NewNop()
	creds := credentialapp.NewCredentialService(database.NewSessionRepositoryDatabase(db), []byte("k"), time.Hour, logger)
	svc := NewUserService(
		database.NewUserRepositoryDatabase(db),
		creds,
		storage.NewLocalBlobStore(t.TempDir(), 0, logger),
		logger,
	)
	return svc, creds, db
}

func TestRegisterUser_IssuesUsableToken(t *testing.T) {
	svc, creds, db := newService(t)
	ctx := context.Background()

	res, err := svc.RegisterUser(ctx, "Sara", "Sara@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "sara@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)

	id, err := creds.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.String())

	var stored user.User
	require.NoError(t, db.Where("email = ?", "sara@example.com").First(&stored).Error)
	assert.NotEqual(t, "secret1", stored.Password)
}

func TestRegisterUser_Validation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	cases := []struct{ name, email, password string }{
		{"", "a@example.com", "secret1"},
		{"A", "not-an-email", "secret1"},
		{"A", "a@example.com", "12345"},
	}
	for _, tc := range cases {
		_, err := svc.RegisterUser(ctx, tc.name, tc.email, tc.password)
		assert.True(t, errors.Is(err, errs.ErrBadRequest), "%+v", tc)
	}

	_, err := svc.RegisterUser(ctx, "A", "a@example.com", "secret1")
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, "B", "A@example.com", "secret2")
	assert.True(t, errors.Is(err, errs.ErrConflict))
	assert.Equal(t, "User already exists", err.Error())
}

func TestLoginAndLogout(t *testing.T) {
	svc, creds, _ := newService(t)
	ctx := context.Background()
	reg, err := svc.RegisterUser(ctx, "Ali", "ali@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.LoginUser(ctx, "ali@example.com", "wrong-pass")
	assert.True(t, errors.Is(err, errs.ErrBadRequest))
	_, err = svc.LoginUser(ctx, "nobody@example.com", "secret1")
	assert.True(t, errors.Is(err, errs.ErrBadRequest))

	login, err := svc.LoginUser(ctx, "ALI@example.com", "secret1")
	require.NoError(t, err)

	// the registration token was replaced by the login token
	_, err = creds.VerifyToken(ctx, reg.Token)
	assert.True(t, errors.Is(err, errs.ErrUnauthorized))
	_, err = creds.VerifyToken(ctx, login.Token)
	require.NoError(t, err)

	require.NoError(t, svc.LogoutUser(ctx, login.User.ID))
	_, err = creds.VerifyToken(ctx, login.Token)
	assert.True(t, errors.Is(err, errs.ErrUnauthorized))
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	reg, err := svc.RegisterUser(ctx, "Old", "p@example.com", "secret1")
	require.NoError(t, err)

	p, err := svc.UpdateProfile(ctx, reg.User.ID, "New", nil)
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)
	assert.Empty(t, p.Avatar)

	p, err = svc.UpdateProfile(ctx, reg.User.ID, "", &blobPort.File{Filename: "me.png", Reader: bytes.NewReader(testutil.PNG)})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)
	assert.True(t, strings.HasPrefix(p.Avatar, "/uploads/avatar/"))

	got, err := svc.GetProfile(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Avatar, got.Avatar)
}
