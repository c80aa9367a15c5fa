package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/pkg/ctxutil"
)

// UpdateEntry replaces the mutable fields of the stored entry with those of
// e. Id, owner and creation time always come from the stored row.
func (s *Service) UpdateEntry(ctx context.Context, e domain.Entry) (*domain.Entry, error) {
	return s.modify(ctx, e.ID, func(stored *domain.Entry) {
		stored.Title = e.Title
		stored.Date = e.Date
		stored.Intensity = e.Intensity
		stored.Status = e.Status
		stored.Notes = e.Notes
	})
}

// PatchEntry applies a partial update to the entry with the given id.
func (s *Service) PatchEntry(ctx context.Context, id uuid.UUID, input PatchEntryInput) (*domain.Entry, error) {
	if input.IsEmpty() {
		return nil, domain.NewValidationError("body", "no fields to update")
	}
	return s.modify(ctx, id, input.apply)
}

func (s *Service) modify(ctx context.Context, id uuid.UUID, change func(*domain.Entry)) (*domain.Entry, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	var updated domain.Entry
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		stored, err := s.entries.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get entry: %w", err)
		}

		before := stored
		change(&stored)
		normalize(&stored)
		if err := stored.Validate(); err != nil {
			return err
		}

		updated, err = s.entries.Update(ctx, stored)
		if err != nil {
			return fmt.Errorf("update entry: %w", err)
		}

		changes := domain.EntryChanges(&before, updated)
		if len(changes) == 0 {
			return nil
		}
		return s.record(ctx, domain.AuditUpdate, updated, changes)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "entry updated",
		slog.String("entry_id", updated.ID.String()),
		slog.String("status", string(updated.Status)),
	)

	return &updated, nil
}
