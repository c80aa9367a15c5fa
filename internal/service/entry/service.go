package entry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
)

//go:generate moq -out entry_repo_mock_test.go -pkg entry . entryRepo
//go:generate moq -out tx_manager_mock_test.go -pkg entry . txManager
//go:generate moq -out history_repo_mock_test.go -pkg entry . historyRepo

type entryRepo interface {
	Create(ctx context.Context, e domain.Entry) (domain.Entry, error)
	Update(ctx context.Context, e domain.Entry) (domain.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Entry, error)
	ListAll(ctx context.Context) ([]domain.Entry, error)
}

type historyRepo interface {
	Log(ctx context.Context, rec domain.AuditRecord) error
	ListByEntry(ctx context.Context, entryID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides entry operations on top of the document store.
type Service struct {
	entries entryRepo
	history historyRepo
	tx      txManager
	log     *slog.Logger
}

// NewService creates a new entry service. A nil repository yields a service
// whose operations all return domain.ErrNotConfigured. A nil history
// repository disables the change log.
func NewService(
	log *slog.Logger,
	entries entryRepo,
	history historyRepo,
	tx txManager,
) *Service {
	return &Service{
		entries: entries,
		history: history,
		tx:      tx,
		log:     log.With("service", "entry"),
	}
}

// Configured reports whether a document store is attached.
func (s *Service) Configured() bool {
	return s.entries != nil && s.tx != nil
}

func (s *Service) ensureConfigured() error {
	if !s.Configured() {
		return domain.ErrNotConfigured
	}
	return nil
}
