package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
)

//go:generate moq -out user_repo_mock_test.go -pkg user . userRepo

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error)
}

// Service implements profile operations of the signed-in user.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// NewService creates a new user service instance. A nil repository yields a
// service whose operations return domain.ErrNotConfigured.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
	}
}

func (s *Service) ensureConfigured() error {
	if s.users == nil {
		return domain.ErrNotConfigured
	}
	return nil
}
