package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userKey      ctxKey = "user"
	requestIDKey ctxKey = "request_id"
)

// User is the authenticated principal carried through a request.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromCtx extracts the authenticated user from the context.
// Returns false if the value is missing, has a nil ID, or has the wrong type.
func UserFromCtx(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	if !ok || u.ID == uuid.Nil {
		return User{}, false
	}
	return u, true
}

// WithUserID stores a user with only an ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return WithUser(ctx, User{ID: id})
}

// UserIDFromCtx extracts the user ID from the context.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	u, ok := UserFromCtx(ctx)
	return u.ID, ok
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
