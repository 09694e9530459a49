package session

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
)

// Store keeps at most one active token per user. Save overwrites.
type Store interface {
	Save(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	// Get returns "" when the user has no active session.
	Get(ctx context.Context, userID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
