package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/pkg/ctxutil"
)

// Logout revokes all refresh tokens for the authenticated user.
// Returns ErrUnauthorized if no user is found in context.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.ensureConfigured(); err != nil {
		return err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.tokens.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", userID.String()))
	if s.notifier != nil {
		s.notifier.SignedOut(userID)
	}
	return nil
}

// ValidateToken validates an access token and returns the identity it carries.
// Returns ErrUnauthorized if the token is invalid or expired.
func (s *Service) ValidateToken(ctx context.Context, token string) (domain.Identity, error) {
	if err := s.ensureConfigured(); err != nil {
		return domain.Identity{}, err
	}

	id, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "access token rejected", slog.String("error", err.Error()))
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

// CleanupExpiredTokens removes expired and revoked refresh tokens.
// Returns the number of tokens deleted. This is a maintenance operation.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	if err := s.ensureConfigured(); err != nil {
		return 0, err
	}

	count, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "token cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "cleaned up expired tokens", slog.Int("count", count))
	}

	return count, nil
}
