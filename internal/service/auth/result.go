package auth

import (
	"time"

	"github.com/heartmarshall/pudiya/internal/domain"
)

// AuthResult is returned by Register, LoginWithPassword and Refresh.
type AuthResult struct {
	AccessToken  string
	RefreshToken string // raw token, NOT hash
	ExpiresIn    time.Duration
	User         *domain.User
}
