package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/config"
	"github.com/heartmarshall/pudiya/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// tokenRepo defines the refresh token repository interface needed by auth service.
type tokenRepo interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(id domain.Identity) (string, error)
	ValidateAccessToken(token string) (domain.Identity, error)
	GenerateRefreshToken() (raw string, hash string, err error)
}

// identityNotifier receives sign-in and sign-out events.
type identityNotifier interface {
	SignedIn(id domain.Identity)
	SignedOut(userID uuid.UUID)
}

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	tokens   tokenRepo
	tx       txManager
	jwt      jwtManager
	notifier identityNotifier
	cfg      config.AuthConfig
	now      func() time.Time
}

// NewService creates a new auth service instance.
// A nil users repository yields a service whose operations all return
// domain.ErrNotConfigured.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenRepo,
	tx txManager,
	jwt jwtManager,
	notifier identityNotifier,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		tokens:   tokens,
		tx:       tx,
		jwt:      jwt,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Configured reports whether the service has a backing store.
func (s *Service) Configured() bool {
	return s.users != nil && s.tokens != nil && s.tx != nil && s.jwt != nil
}

func (s *Service) ensureConfigured() error {
	if !s.Configured() {
		return domain.ErrNotConfigured
	}
	return nil
}

// issueTokens generates access and refresh tokens for the given user, stores
// the refresh token hash in DB, and returns an AuthResult.
func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	rawRefresh, hashRefresh, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	refreshToken := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefresh,
		ExpiresAt: s.now().Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.tokens.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		ExpiresIn:    s.cfg.AccessTokenTTL,
		User:         user,
	}, nil
}

func (s *Service) signedIn(user *domain.User) {
	if s.notifier != nil {
		s.notifier.SignedIn(user.Identity())
	}
}
