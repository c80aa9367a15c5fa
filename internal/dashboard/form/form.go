// Package form manages the create/edit session of the entry form.
//
// A Controller is Closed until the user opens it for a new entry or an
// existing one. Submit validates the draft, stamps ownership and issues one
// create or update call; while that call is in flight the controller is
// Saving and rejects edits, resubmits and cancel.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/pkg/ctxutil"
)

//go:generate moq -out mutator_mock_test.go -pkg form . Mutator

// Mutator issues create and update intents to the document store.
type Mutator interface {
	CreateEntry(ctx context.Context, e domain.Entry) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, e domain.Entry) (*domain.Entry, error)
}

// IdentitySource resolves the signed-in user.
type IdentitySource interface {
	Identity(ctx context.Context) (domain.Identity, bool)
}

// ContextIdentity reads the identity placed in the request context by the
// auth middleware.
type ContextIdentity struct{}

func (ContextIdentity) Identity(ctx context.Context) (domain.Identity, bool) {
	u, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return domain.Identity{}, false
	}
	return domain.Identity{ID: u.ID, Name: u.Name, Email: u.Email}, true
}

// ErrNotOpen is returned by operations that need an open form.
var ErrNotOpen = errors.New("form: not open")

// Phase is the controller state.
type Phase int

const (
	Closed Phase = iota
	Open
	Saving
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Saving:
		return "saving"
	default:
		return "unknown"
	}
}

// Mode tells whether an open form creates or edits.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Field names accepted by UpdateField.
const (
	FieldTitle     = "title"
	FieldDate      = "date"
	FieldIntensity = "intensity"
	FieldStatus    = "status"
	FieldNotes     = "notes"
)

// Draft is the editable shape of an entry. Date holds "YYYY-MM-DD".
type Draft struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Intensity string `json:"intensity"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// DraftFrom copies e into a draft, normalizing the date.
func DraftFrom(e domain.Entry) Draft {
	return Draft{
		Title:     e.Title,
		Date:      e.Date.String(),
		Intensity: string(e.Intensity),
		Status:    string(e.Status),
		Notes:     e.NotesText(),
	}
}

// View is a copy of the controller state for rendering.
type View struct {
	Phase       Phase             `json:"-"`
	State       string            `json:"state"`
	Mode        Mode              `json:"mode,omitempty"`
	Draft       Draft             `json:"draft"`
	EditingID   uuid.UUID         `json:"editingId,omitempty"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// IsOpen reports whether the form is visible.
func (v View) IsOpen() bool { return v.Phase != Closed }

// IsSaving reports whether a submission is in flight.
func (v View) IsSaving() bool { return v.Phase == Saving }

// Controller owns at most one edit session.
type Controller struct {
	log      *slog.Logger
	mutator  Mutator
	identity IdentitySource
	clock    func() time.Time

	mu      sync.Mutex
	phase   Phase
	mode    Mode
	draft   Draft
	editing *domain.Entry
	lastErr error
	gen     uint64
}

// New creates a closed controller. A nil mutator means the document store is
// not configured; Submit then fails with domain.ErrNotConfigured.
func New(mutator Mutator, identity IdentitySource, clock func() time.Time, logger *slog.Logger) *Controller {
	if clock == nil {
		clock = time.Now
	}
	if identity == nil {
		identity = ContextIdentity{}
	}
	return &Controller{
		log:      logger.With("service", "entry_form"),
		mutator:  mutator,
		identity: identity,
		clock:    clock,
	}
}

// OpenCreate opens an empty draft dated today.
func (c *Controller) OpenCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == Saving {
		return domain.ErrBusy
	}
	c.reset()
	c.phase = Open
	c.mode = ModeCreate
	c.draft = Draft{
		Date:      domain.DateOf(c.clock()).String(),
		Intensity: string(domain.IntensityMedium),
		Status:    string(domain.StatusReturn),
	}
	return nil
}

// OpenEdit opens a draft copied from e.
func (c *Controller) OpenEdit(e domain.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == Saving {
		return domain.ErrBusy
	}
	c.reset()
	c.phase = Open
	c.mode = ModeEdit
	editing := e
	c.editing = &editing
	c.draft = DraftFrom(e)
	return nil
}

// UpdateField merges one field into the draft without validating it.
func (c *Controller) UpdateField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case Closed:
		return ErrNotOpen
	case Saving:
		return domain.ErrBusy
	}

	switch name {
	case FieldTitle:
		c.draft.Title = value
	case FieldDate:
		c.draft.Date = value
	case FieldIntensity:
		c.draft.Intensity = value
	case FieldStatus:
		c.draft.Status = value
	case FieldNotes:
		c.draft.Notes = value
	default:
		return domain.NewValidationError(name, "unknown field")
	}
	return nil
}

// Submit validates the draft and issues the create or update intent. On
// success the form closes and the stored entry is returned. On failure the
// form stays open with the draft intact and the error recorded.
func (c *Controller) Submit(ctx context.Context) (*domain.Entry, error) {
	c.mu.Lock()
	switch c.phase {
	case Closed:
		c.mu.Unlock()
		return nil, ErrNotOpen
	case Saving:
		c.mu.Unlock()
		return nil, domain.ErrBusy
	}

	e, err := c.prepare(ctx)
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		return nil, err
	}

	c.phase = Saving
	c.lastErr = nil
	gen := c.gen
	mode := c.mode
	c.mu.Unlock()

	var saved *domain.Entry
	if mode == ModeEdit {
		saved, err = c.mutator.UpdateEntry(ctx, e)
	} else {
		saved, err = c.mutator.CreateEntry(ctx, e)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		c.log.InfoContext(ctx, "discarding result of superseded form session",
			slog.String("mode", string(mode)))
		if err != nil {
			return nil, fmt.Errorf("form.Submit: %w", err)
		}
		return saved, nil
	}

	if err != nil {
		c.phase = Open
		c.lastErr = err
		c.log.WarnContext(ctx, "entry save failed",
			slog.String("mode", string(mode)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("form.Submit: %w", err)
	}

	c.reset()
	return saved, nil
}

// prepare validates the draft and builds the entry to send. Caller holds mu.
func (c *Controller) prepare(ctx context.Context) (domain.Entry, error) {
	var errs []domain.FieldError

	title := strings.TrimSpace(c.draft.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: FieldTitle, Message: "required"})
	}

	date, err := domain.ParseCalendarDate(c.draft.Date)
	switch {
	case err != nil:
		errs = append(errs, domain.FieldError{Field: FieldDate, Message: "invalid date"})
	case date.IsZero():
		errs = append(errs, domain.FieldError{Field: FieldDate, Message: "required"})
	}

	if len(errs) > 0 {
		return domain.Entry{}, domain.NewValidationErrors(errs)
	}

	if c.mutator == nil {
		return domain.Entry{}, domain.ErrNotConfigured
	}

	id, ok := c.identity.Identity(ctx)
	if !ok || id.IsZero() {
		return domain.Entry{}, domain.ErrUnauthorized
	}

	var e domain.Entry
	if c.mode == ModeEdit && c.editing != nil {
		e = *c.editing
	} else {
		e.OwnerID = id.ID
		e.OwnerName = id.Name
		if e.OwnerName == "" {
			e.OwnerName = id.Email
		}
	}

	e.Title = title
	e.Date = date
	e.Intensity = domain.Intensity(c.draft.Intensity)
	e.Status = domain.Status(c.draft.Status)
	e.Notes = nil
	if notes := strings.TrimSpace(c.draft.Notes); notes != "" {
		e.Notes = &notes
	}
	return e, nil
}

// Cancel closes the form and drops the draft.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == Saving {
		return domain.ErrBusy
	}
	c.reset()
	return nil
}

// Dispose force-closes the form. A submission still in flight keeps running
// but its result is not applied to this controller.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// reset closes the session and invalidates in-flight results. Caller holds mu.
func (c *Controller) reset() {
	c.gen++
	c.phase = Closed
	c.mode = ""
	c.draft = Draft{}
	c.editing = nil
	c.lastErr = nil
}

// State returns a copy of the controller state.
func (c *Controller) State() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Phase: c.phase,
		State: c.phase.String(),
		Mode:  c.mode,
		Draft: c.draft,
	}
	if c.editing != nil {
		v.EditingID = c.editing.ID
	}
	if c.lastErr != nil {
		v.Error = Message(c.lastErr)
		var verr *domain.ValidationError
		if errors.As(c.lastErr, &verr) {
			v.FieldErrors = make(map[string]string, len(verr.Errors))
			for _, fe := range verr.Errors {
				v.FieldErrors[fe.Field] = fe.Message
			}
		}
	}
	return v
}

// Message turns a submit error into the inline text shown on the form.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrValidation):
		if onlyMissing(err) {
			return "Please fill in the required fields."
		}
		return "Please correct the highlighted fields."
	case errors.Is(err, domain.ErrNotConfigured):
		return "Entries are unavailable: the document store is not configured."
	case errors.Is(err, domain.ErrUnauthorized):
		return "Please sign in to save entries."
	case errors.Is(err, domain.ErrNotFound):
		return "This entry no longer exists."
	default:
		return "Could not save the entry. Please try again."
	}
}

// onlyMissing reports whether every field error of err is a missing value.
func onlyMissing(err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	for _, fe := range verr.Errors {
		if fe.Message != "required" {
			return false
		}
	}
	return true
}
