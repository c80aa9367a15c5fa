// Package audit implements the append-only entry history using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pudiya/internal/adapter/postgres"
	"github.com/heartmarshall/pudiya/internal/domain"
)

const table = "entry_history"

var columns = []string{"id", "entry_id", "user_id", "action", "changes", "created_at"}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides entry history persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new audit repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

type recordRow struct {
	ID        uuid.UUID `db:"id"`
	EntryID   uuid.UUID `db:"entry_id"`
	UserID    uuid.UUID `db:"user_id"`
	Action    string    `db:"action"`
	Changes   []byte    `db:"changes"`
	CreatedAt time.Time `db:"created_at"`
}

func (r recordRow) toDomain() (domain.AuditRecord, error) {
	rec := domain.AuditRecord{
		ID:        r.ID,
		EntryID:   r.EntryID,
		UserID:    r.UserID,
		Action:    domain.AuditAction(r.Action),
		CreatedAt: r.CreatedAt,
	}
	if len(r.Changes) > 0 {
		if err := json.Unmarshal(r.Changes, &rec.Changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("entry_history %s unmarshal changes: %w", r.ID, err)
		}
	}
	return rec, nil
}

// Log appends rec. A nil ID is replaced with a fresh one; created_at is
// assigned by the database.
func (r *Repo) Log(ctx context.Context, rec domain.AuditRecord) error {
	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	changes, err := json.Marshal(rec.Changes)
	if err != nil {
		return fmt.Errorf("entry_history marshal changes: %w", err)
	}

	sql, args, err := builder.Insert(table).
		Columns("id", "entry_id", "user_id", "action", "changes").
		Values(id, rec.EntryID, rec.UserID, string(rec.Action), changes).
		ToSql()
	if err != nil {
		return fmt.Errorf("entry_history: build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.q).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "entry_history", id)
	}
	return nil
}

// ListByEntry returns the history of one entry, newest first, at most limit
// records.
func (r *Repo) ListByEntry(ctx context.Context, entryID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	sql, args, err := builder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"entry_id": entryID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("entry_history: build query: %w", err)
	}

	var rows []recordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "entry_history", entryID)
	}

	records := make([]domain.AuditRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
