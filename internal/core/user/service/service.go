package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"contenthub/internal/core/errs"
	userEntity "contenthub/internal/core/user"
	blobPort "contenthub/internal/ports/blob"
	userPort "contenthub/internal/ports/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// TokenIssuer بخشی از سرویس احراز هویت که این سرویس نیاز دارد
type TokenIssuer interface {
	IssueToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error)
	RevokeToken(ctx context.Context, userID uuid.UUID) error
}

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	tokens         TokenIssuer
	blobs          blobPort.Store
	validate       *validator.Validate
	logger         *zap.Logger
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, tokens TokenIssuer, blobs blobPort.Store, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		tokens:         tokens,
		blobs:          blobs,
		validate:       validator.New(),
		logger:         logger,
		now:            time.Now,
	}
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*userPort.AuthResponse, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, errs.BadRequest("Name is required")
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, errs.BadRequest("Please provide a valid email")
	}
	if len(password) < minPasswordLength {
		return nil, errs.BadRequest(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	existing, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, errs.Conflict("User already exists")
	}

	// هش کردن پسورد
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("userID", u.ID.String()))
	return s.authenticate(ctx, u)
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*userPort.AuthResponse, error) {
	u, err := s.UserRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if u == nil {
		return nil, errs.BadRequest("Invalid credentials")
	}

	// مقایسه پسورد هش‌شده
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("password check failed", zap.String("userID", u.ID.String()), zap.Error(err))
		}
		return nil, errs.BadRequest("Invalid credentials")
	}

	return s.authenticate(ctx, u)
}

func (s *UserService) LogoutUser(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	return s.tokens.RevokeToken(ctx, id)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*userPort.UserDTO, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, errs.NotFound("User not found")
	}
	return userPort.ToDTO(u), nil
}

// UpdateProfile changes the display name when given and replaces the avatar
// only when a new file is uploaded.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name string, avatar *blobPort.File) (*userPort.UserDTO, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, errs.NotFound("User not found")
	}

	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if avatar != nil {
		path, err := s.blobs.Store(ctx, "avatar", avatar.Filename, avatar.Reader)
		if err != nil {
			return nil, err
		}
		u.Avatar = path
	}

	updated, err := s.UserRepository.UpdateProfile(ctx, id, u.Name, u.Avatar)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if updated == nil {
		return nil, errs.NotFound("User not found")
	}
	return userPort.ToDTO(updated), nil
}

func (s *UserService) authenticate(ctx context.Context, u *userEntity.User) (*userPort.AuthResponse, error) {
	token, expiresAt, err := s.tokens.IssueToken(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &userPort.AuthResponse{
		User:      userPort.ToDTO(u),
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.FromString(userID)
	if err != nil {
		return uuid.Nil, errs.Unauthorized("Invalid user")
	}
	return id, nil
}
