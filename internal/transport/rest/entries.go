package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/dashboard/stats"
	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/internal/service/entry"
)

type entryService interface {
	ListEntries(ctx context.Context) ([]domain.Entry, error)
	CreateEntry(ctx context.Context, e domain.Entry) (*domain.Entry, error)
	PatchEntry(ctx context.Context, id uuid.UUID, input entry.PatchEntryInput) (*domain.Entry, error)
	History(ctx context.Context, id uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

// EntryHandler serves the entries and stats JSON API.
type EntryHandler struct {
	svc entryService
	log *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(svc entryService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{svc: svc, log: logger.With("handler", "entries")}
}

type entryResponse struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Date      domain.CalendarDate `json:"date"`
	Intensity domain.Intensity    `json:"intensity"`
	Status    domain.Status       `json:"status"`
	Notes     *string             `json:"notes"`
	OwnerID   string              `json:"ownerId"`
	OwnerName string              `json:"ownerName"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type createEntryRequest struct {
	Title     string              `json:"title"`
	Date      domain.CalendarDate `json:"date"`
	Intensity domain.Intensity    `json:"intensity"`
	Status    domain.Status       `json:"status"`
	Notes     *string             `json:"notes"`
}

type patchEntryRequest struct {
	Title     *string              `json:"title"`
	Date      *domain.CalendarDate `json:"date"`
	Intensity *domain.Intensity    `json:"intensity"`
	Status    *domain.Status       `json:"status"`
	Notes     *string              `json:"notes"`
}

type historyResponse struct {
	ID        string                        `json:"id"`
	UserID    string                        `json:"userId"`
	Action    domain.AuditAction            `json:"action"`
	Changes   map[string]domain.FieldChange `json:"changes"`
	CreatedAt time.Time                     `json:"createdAt"`
}

type statsResponse struct {
	stats.StatSet
	Cards []stats.Card `json:"cards"`
}

// List handles GET /api/entries. Entries are newest first.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListEntries(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryResponse(&entries[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", "invalid request body")
		return
	}

	created, err := h.svc.CreateEntry(r.Context(), domain.Entry{
		Title:     req.Title,
		Date:      req.Date,
		Intensity: req.Intensity,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(created))
}

// Patch handles PATCH /api/entries/{id}.
func (h *EntryHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", "invalid entry id")
		return
	}

	var req patchEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", "invalid request body")
		return
	}

	input := entry.PatchEntryInput{
		Title:     req.Title,
		Date:      req.Date,
		Intensity: req.Intensity,
		Status:    req.Status,
		Notes:     req.Notes,
	}
	if input.IsEmpty() {
		writeError(w, http.StatusBadRequest, "bad-request", "nothing to update")
		return
	}

	updated, err := h.svc.PatchEntry(r.Context(), id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(updated))
}

// History handles GET /api/entries/{id}/history?limit=N.
func (h *EntryHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", "invalid entry id")
		return
	}

	var limit int
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "bad-request", "limit must be a positive integer")
			return
		}
	}

	records, err := h.svc.History(r.Context(), id, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]historyResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, historyResponse{
			ID:        rec.ID.String(),
			UserID:    rec.UserID.String(),
			Action:    rec.Action,
			Changes:   rec.Changes,
			CreatedAt: rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Stats handles GET /api/stats: the derived statistics and summary cards of
// the full collection.
func (h *EntryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListEntries(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	set := stats.Compute(entries)
	writeJSON(w, http.StatusOK, statsResponse{StatSet: set, Cards: set.Cards()})
}

func (h *EntryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeValidation(w, err)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "sign in required")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not-found", "entry not found")
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "not-configured", "the document store is not configured")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func toEntryResponse(e *domain.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID.String(),
		Title:     e.Title,
		Date:      e.Date,
		Intensity: e.Intensity,
		Status:    e.Status,
		Notes:     e.Notes,
		OwnerID:   e.OwnerID.String(),
		OwnerName: e.OwnerName,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
