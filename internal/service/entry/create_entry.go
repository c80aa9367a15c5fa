package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/pkg/ctxutil"
)

// CreateEntry stores a new entry. Ownership comes from e when already
// stamped, otherwise from the signed-in user in ctx. The store assigns the
// id and timestamps.
func (s *Service) CreateEntry(ctx context.Context, e domain.Entry) (*domain.Entry, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	if e.OwnerID == uuid.Nil {
		u, ok := ctxutil.UserFromCtx(ctx)
		if !ok {
			return nil, domain.ErrUnauthorized
		}
		e.OwnerID = u.ID
		e.OwnerName = u.Name
		if e.OwnerName == "" {
			e.OwnerName = u.Email
		}
	}

	e.ID = uuid.Nil
	normalize(&e)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	var created domain.Entry
	create := func(ctx context.Context) error {
		var err error
		created, err = s.entries.Create(ctx, e)
		if err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		return s.record(ctx, domain.AuditCreate, created, domain.EntryChanges(nil, created))
	}

	var err error
	if s.history != nil {
		err = s.tx.RunInTx(ctx, create)
	} else {
		err = create(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "entry created",
		slog.String("entry_id", created.ID.String()),
		slog.String("owner_id", created.OwnerID.String()),
		slog.String("intensity", string(created.Intensity)),
		slog.String("status", string(created.Status)),
	)

	return &created, nil
}
