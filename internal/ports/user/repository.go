package user

import (
	"context"
	"time"

	"contenthub/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, avatar string) (*user.User, error)
}

// DTOها برای UseCase

// UserDTO is the public profile; password and token never leave the service.
type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type AuthResponse struct {
	User      *UserDTO `json:"user"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
}

// ToDTO strips credential fields. A nil user maps to nil so dangling
// references render as an absent profile.
func ToDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
