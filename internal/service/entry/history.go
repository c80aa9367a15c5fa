package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/pkg/ctxutil"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// History returns the change log of one entry, newest first. A limit outside
// (0, 200] falls back to 50.
func (s *Service) History(ctx context.Context, id uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	if s.history == nil {
		return nil, domain.ErrNotConfigured
	}
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	if _, err := s.entries.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	records, err := s.history.ListByEntry(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// record appends a history row for e. The actor is the signed-in user, or
// the owner when the entry was stamped by the caller.
func (s *Service) record(ctx context.Context, action domain.AuditAction, e domain.Entry, changes map[string]domain.FieldChange) error {
	if s.history == nil {
		return nil
	}

	actor := e.OwnerID
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		actor = id
	}

	err := s.history.Log(ctx, domain.AuditRecord{
		EntryID: e.ID,
		UserID:  actor,
		Action:  action,
		Changes: changes,
	})
	if err != nil {
		return fmt.Errorf("log %s: %w", action, err)
	}
	return nil
}
