package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/dashboard/form"
	"github.com/heartmarshall/pudiya/internal/domain"
)

var formFields = []string{
	form.FieldTitle,
	form.FieldDate,
	form.FieldIntensity,
	form.FieldStatus,
	form.FieldNotes,
}

// controller returns the form controller of the signed-in user, or sends
// anonymous callers to the sign-in page.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*form.Controller, bool) {
	id, ok := identityFromCtx(r.Context())
	if !ok {
		redirect(w, r, "/signin")
		return nil, false
	}
	return h.sessions.Get(id.ID), true
}

// FormNew handles POST /form/new.
func (h *Handler) FormNew(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.OpenCreate(); err != nil {
		h.log.DebugContext(r.Context(), "open create form", slog.String("error", err.Error()))
	}
	redirect(w, r, "/")
}

// FormEdit handles POST /form/edit/{id}.
func (h *Handler) FormEdit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	e, err := h.entries.GetEntry(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "load entry for edit", slog.String("error", err.Error()))
		http.Error(w, form.Message(err), http.StatusServiceUnavailable)
		return
	}

	if err := ctrl.OpenEdit(*e); err != nil {
		h.log.DebugContext(r.Context(), "open edit form", slog.String("error", err.Error()))
	}
	redirect(w, r, "/")
}

// FormField handles POST /form/field: a single draft change sent while the
// user types. Responds 204, or 409 when the form is closed or saving.
func (h *Handler) FormField(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := ctrl.UpdateField(r.PostFormValue("name"), r.PostFormValue("value"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, form.ErrNotOpen), errors.Is(err, domain.ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// FormSubmit handles POST /form/submit. Posted fields are merged into the
// draft before submitting. A form whose session expired is reopened from the
// posted fields. The outcome is shown on the next dashboard render.
func (h *Handler) FormSubmit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if ctrl.State().Phase == form.Closed && hasFormFields(r) {
		if err := h.reopen(r, ctrl); err != nil {
			h.log.InfoContext(r.Context(), "reopen expired entry form", slog.String("error", err.Error()))
		}
	}

	for _, name := range formFields {
		if _, present := r.PostForm[name]; !present {
			continue
		}
		if err := ctrl.UpdateField(name, r.PostFormValue(name)); err != nil {
			break
		}
	}

	if _, err := ctrl.Submit(r.Context()); err != nil {
		h.log.InfoContext(r.Context(), "entry form not saved", slog.String("error", err.Error()))
	}
	redirect(w, r, "/")
}

func hasFormFields(r *http.Request) bool {
	for _, name := range formFields {
		if _, ok := r.PostForm[name]; ok {
			return true
		}
	}
	return false
}

// reopen opens ctrl again for the entry named by the posted id, or as a new
// entry when no id was posted.
func (h *Handler) reopen(r *http.Request, ctrl *form.Controller) error {
	raw := r.PostFormValue("id")
	if raw == "" {
		return ctrl.OpenCreate()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse entry id: %w", err)
	}
	e, err := h.entries.GetEntry(r.Context(), id)
	if err != nil {
		return err
	}
	return ctrl.OpenEdit(*e)
}

// FormCancel handles POST /form/cancel.
func (h *Handler) FormCancel(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.Cancel(); err != nil {
		h.log.DebugContext(r.Context(), "cancel form", slog.String("error", err.Error()))
	}
	redirect(w, r, "/")
}
