package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one logged pudi incident.
//
// ID, OwnerID, OwnerName and CreatedAt are assigned once at creation and
// never change. UpdatedAt is refreshed by the store on every mutation.
type Entry struct {
	ID        uuid.UUID
	Title     string
	Date      CalendarDate
	Intensity Intensity
	Status    Status
	Notes     *string
	OwnerID   uuid.UUID
	OwnerName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotesText returns the notes or "" when absent.
func (e *Entry) NotesText() string {
	if e.Notes == nil {
		return ""
	}
	return *e.Notes
}

// Validate checks the mutable fields of the entry.
func (e *Entry) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	} else if len(e.Title) > 200 {
		errs = append(errs, FieldError{Field: "title", Message: "too long"})
	}
	if e.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: "required"})
	}
	if !e.Intensity.IsValid() {
		errs = append(errs, FieldError{Field: "intensity", Message: "invalid value"})
	}
	if !e.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "invalid value"})
	}
	if e.Notes != nil && len(*e.Notes) > 5000 {
		errs = append(errs, FieldError{Field: "notes", Message: "too long"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
