package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that can sign in to the dashboard.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the public identity of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Identity is the currently authenticated principal.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// IsZero reports whether no one is signed in.
func (i Identity) IsZero() bool {
	return i.ID == uuid.Nil
}

// Initials returns up to two upper-case initials of the display name,
// falling back to the e-mail address.
func (i Identity) Initials() string {
	src := i.Name
	if src == "" {
		src = i.Email
	}
	var out []rune
	takeNext := true
	for _, r := range src {
		switch {
		case r == ' ' || r == '.' || r == '_' || r == '-' || r == '@':
			takeNext = true
			if r == '@' {
				return upperRunes(out)
			}
		case takeNext:
			out = append(out, r)
			takeNext = false
			if len(out) == 2 {
				return upperRunes(out)
			}
		}
	}
	return upperRunes(out)
}

func upperRunes(rs []rune) string {
	b := make([]rune, 0, len(rs))
	for _, r := range rs {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b = append(b, r)
	}
	return string(b)
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
