package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
)

// ListEntries returns every entry, newest first.
func (s *Service) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// GetEntry returns a single entry.
func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}
