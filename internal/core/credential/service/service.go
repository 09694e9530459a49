package credentialapp

import (
	"context"
	"errors"
	"time"

	"contenthub/internal/core/errs"
	sessionPort "contenthub/internal/ports/session"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const issuer = "contenthub"

// CredentialService صدور و اعتبارسنجی توکن‌های JWT
type CredentialService struct {
	sessions sessionPort.Store
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewCredentialService(sessions sessionPort.Store, secret []byte, ttl time.Duration, logger *zap.Logger) *CredentialService {
	return &CredentialService{
		sessions: sessions,
		secret:   secret,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// IssueToken signs a token for userID and records it as the only active
// session, replacing any earlier one.
func (s *CredentialService) IssueToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    issuer,
		ID:        uuid.Must(uuid.NewV4()).String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	if err := s.sessions.Save(ctx, userID, signed, s.ttl); err != nil {
		s.logger.Error("could not save session", zap.String("userID", userID.String()), zap.Error(err))
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyToken checks signature and expiry, then requires the token to be the
// user's recorded session.
func (s *CredentialService) VerifyToken(ctx context.Context, token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, errs.Unauthorized("Token expired")
		}
		return uuid.Nil, errs.Unauthorized("Invalid token")
	}

	userID, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.Unauthorized("Invalid token")
	}

	active, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if active == "" || active != token {
		return uuid.Nil, errs.Unauthorized("Session is no longer active")
	}
	return userID, nil
}

func (s *CredentialService) RevokeToken(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.Delete(ctx, userID)
}
