package entry

import (
	"strings"

	"github.com/heartmarshall/pudiya/internal/domain"
)

// PatchEntryInput carries a partial update; nil fields are left unchanged.
type PatchEntryInput struct {
	Title     *string
	Date      *domain.CalendarDate
	Intensity *domain.Intensity
	Status    *domain.Status
	Notes     *string
}

// IsEmpty reports whether no field is set.
func (i PatchEntryInput) IsEmpty() bool {
	return i.Title == nil && i.Date == nil && i.Intensity == nil && i.Status == nil && i.Notes == nil
}

// apply merges the set fields into e.
func (i PatchEntryInput) apply(e *domain.Entry) {
	if i.Title != nil {
		e.Title = *i.Title
	}
	if i.Date != nil {
		e.Date = *i.Date
	}
	if i.Intensity != nil {
		e.Intensity = *i.Intensity
	}
	if i.Status != nil {
		e.Status = *i.Status
	}
	if i.Notes != nil {
		e.Notes = i.Notes
	}
}

// normalize trims the title and turns blank notes into nil.
func normalize(e *domain.Entry) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Notes != nil {
		n := strings.TrimSpace(*e.Notes)
		if n == "" {
			e.Notes = nil
		} else {
			e.Notes = &n
		}
	}
}
