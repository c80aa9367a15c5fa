// Package entry implements the incident Entry repository using PostgreSQL.
package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/pudiya/internal/adapter/postgres"
	"github.com/heartmarshall/pudiya/internal/domain"
)

const table = "entries"

var columns = []string{
	"id", "title", "entry_date", "intensity", "status", "notes",
	"owner_id", "owner_name", "created_at", "updated_at",
}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new entry repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

type entryRow struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	EntryDate time.Time `db:"entry_date"`
	Intensity string    `db:"intensity"`
	Status    string    `db:"status"`
	Notes     *string   `db:"notes"`
	OwnerID   uuid.UUID `db:"owner_id"`
	OwnerName string    `db:"owner_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r entryRow) toDomain() domain.Entry {
	return domain.Entry{
		ID:        r.ID,
		Title:     r.Title,
		Date:      domain.DateOf(r.EntryDate),
		Intensity: domain.Intensity(r.Intensity),
		Status:    domain.Status(r.Status),
		Notes:     r.Notes,
		OwnerID:   r.OwnerID,
		OwnerName: r.OwnerName,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// Create inserts e and returns the stored row with server-assigned
// timestamps. A nil ID is replaced with a fresh one.
func (r *Repo) Create(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	id := e.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	insert := builder.Insert(table).
		Columns("id", "title", "entry_date", "intensity", "status", "notes", "owner_id", "owner_name").
		Values(id, e.Title, e.Date.Time(), string(e.Intensity), string(e.Status), e.Notes, e.OwnerID, e.OwnerName).
		Suffix(returning())

	return r.getOne(ctx, id, insert)
}

// Update overwrites the mutable fields of the entry with e.ID and bumps
// updated_at. Identity, owner and created_at are left untouched.
func (r *Repo) Update(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	update := builder.Update(table).
		Set("title", e.Title).
		Set("entry_date", e.Date.Time()).
		Set("intensity", string(e.Intensity)).
		Set("status", string(e.Status)).
		Set("notes", e.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix(returning())

	return r.getOne(ctx, e.ID, update)
}

// GetByID returns a single entry.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Entry, error) {
	query := builder.Select(columns...).From(table).Where(squirrel.Eq{"id": id})
	return r.getOne(ctx, id, query)
}

// ListAll returns every entry, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Entry, error) {
	query := builder.Select(columns...).From(table).OrderBy("created_at DESC", "id DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("entry.ListAll: build query: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "entry", "all")
	}

	entries := make([]domain.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.toDomain()
	}
	return entries, nil
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, query squirrel.Sqlizer) (domain.Entry, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry: build query: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return domain.Entry{}, postgres.MapError(err, "entry", id)
	}
	return row.toDomain(), nil
}
