package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction is the kind of mutation recorded in an entry's history.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
)

// FieldChange is one changed field of an update.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// AuditRecord logs one mutation of an entry. For a create, Changes holds the
// initial value of every field under To.
type AuditRecord struct {
	ID        uuid.UUID
	EntryID   uuid.UUID
	UserID    uuid.UUID
	Action    AuditAction
	Changes   map[string]FieldChange
	CreatedAt time.Time
}

// EntryChanges returns the fields that differ between before and after.
// A nil before describes a create.
func EntryChanges(before *Entry, after Entry) map[string]FieldChange {
	changes := make(map[string]FieldChange)
	add := func(field string, from, to any) {
		if before == nil {
			changes[field] = FieldChange{To: to}
			return
		}
		if from != to {
			changes[field] = FieldChange{From: from, To: to}
		}
	}

	var prev Entry
	if before != nil {
		prev = *before
	}
	add("title", prev.Title, after.Title)
	add("date", prev.Date.String(), after.Date.String())
	add("intensity", string(prev.Intensity), string(after.Intensity))
	add("status", string(prev.Status), string(after.Status))
	add("notes", prev.NotesText(), after.NotesText())
	return changes
}
