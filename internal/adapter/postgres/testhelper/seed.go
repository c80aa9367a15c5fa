package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/pudiya/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a placeholder password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Name:         "Test User " + suffix,
		PasswordHash: "$2a$04$placeholder",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedEntry creates an entry owned by owner.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, owner domain.User, title string) domain.Entry {
	t.Helper()
	ctx := context.Background()

	e := domain.Entry{
		ID:        uuid.New(),
		Title:     title,
		Date:      domain.DateOf(time.Now().UTC()),
		Intensity: domain.IntensityMedium,
		Status:    domain.StatusReturn,
		OwnerID:   owner.ID,
		OwnerName: owner.Name,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO entries (id, title, entry_date, intensity, status, owner_id, owner_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		e.ID, e.Title, e.Date.Time(), string(e.Intensity), string(e.Status), e.OwnerID, e.OwnerName,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert entry: %v", err)
	}

	return e
}
