// Package view builds the dashboard view model from the collection snapshot,
// its derived statistics and the form state.
package view

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/dashboard/form"
	"github.com/heartmarshall/pudiya/internal/dashboard/format"
	"github.com/heartmarshall/pudiya/internal/dashboard/stats"
	"github.com/heartmarshall/pudiya/internal/dashboard/store"
	"github.com/heartmarshall/pudiya/internal/domain"
)

const (
	activityLimit = 5
	chartBars     = 18
	chartMin      = 30.0
	chartSpan     = 60.0
	skeletonRows  = 4
)

// Dashboard is everything the dashboard page renders.
type Dashboard struct {
	User        UserChip       `json:"user"`
	State       string         `json:"state"`
	Loading     bool           `json:"loading"`
	Live        bool           `json:"live"`
	Banner      *Banner        `json:"banner,omitempty"`
	Stats       stats.StatSet  `json:"stats"`
	Cards       []stats.Card   `json:"cards"`
	Activity    []ActivityItem `json:"activity"`
	Roadmap     []ActivityItem `json:"roadmap"`
	Chart       []Bar          `json:"chart"`
	Records     []Record       `json:"records"`
	Form        form.View      `json:"form"`
	FormEnabled bool           `json:"formEnabled"`

	// SkeletonRows drives the placeholder rows while loading.
	SkeletonRows []int `json:"-"`
}

// UserChip is the navbar identity badge.
type UserChip struct {
	Initials string `json:"initials"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Banner is an inline, page-level notice.
type Banner struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ActivityItem is one row of the activity or roadmap card.
type ActivityItem struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Meta  string `json:"meta"`
}

// Bar is one column of the spark chart. Height is a percentage.
type Bar struct {
	Day    string  `json:"day"`
	Count  int     `json:"count"`
	Height float64 `json:"height"`
}

// Record is one entry card.
type Record struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Date           string    `json:"date"`
	Intensity      string    `json:"intensity"`
	IntensityLabel string    `json:"intensityLabel"`
	Status         string    `json:"status"`
	StatusLabel    string    `json:"statusLabel"`
	Notes          string    `json:"notes,omitempty"`
	Owner          string    `json:"owner"`
	Updated        string    `json:"updated"`
}

var roadmap = []ActivityItem{
	{Icon: "🎯", Label: "Goals recalibration", Meta: "ETA: 3 days"},
	{Icon: "🚀", Label: "Growth launch plan", Meta: "ETA: 1 week"},
	{Icon: "🔒", Label: "Security audit", Meta: "ETA: 10 days"},
	{Icon: "📊", Label: "Insights refresh", Meta: "ETA: 2 weeks"},
}

// Build assembles the dashboard. s must be the stats of snap.
func Build(snap store.Snapshot, s stats.StatSet, fv form.View, id domain.Identity, now time.Time) Dashboard {
	d := Dashboard{
		User:    UserChip{Initials: id.Initials(), Name: id.Name, Email: id.Email},
		State:   snap.State.String(),
		Loading: snap.State == store.StateLoading,
		Live:    snap.State == store.StateReady,
		Stats:   s,
		Roadmap: roadmap,
		Form:    fv,
	}
	if d.User.Name == "" {
		d.User.Name = id.Email
	}

	switch snap.State {
	case store.StateNotConfigured:
		d.Banner = &Banner{Kind: "config", Message: "The entry store is not configured. Entries cannot be loaded or saved."}
	case store.StateError:
		d.Banner = &Banner{Kind: "error", Message: "Live updates are unavailable right now. Showing the last loaded entries."}
	}
	d.FormEnabled = snap.State != store.StateNotConfigured && !id.IsZero()

	if d.Loading {
		d.SkeletonRows = make([]int, skeletonRows)
		for i := range d.SkeletonRows {
			d.SkeletonRows[i] = i
		}
		return d
	}

	d.Cards = s.Cards()
	d.Activity = activity(snap.Entries, now)
	d.Chart = chart(snap.Entries, now)
	d.Records = records(snap.Entries, now)
	return d
}

func activity(entries []domain.Entry, now time.Time) []ActivityItem {
	n := min(len(entries), activityLimit)
	items := make([]ActivityItem, 0, n)
	for _, e := range entries[:n] {
		items = append(items, ActivityItem{
			Icon:  IntensityIcon(e.Intensity),
			Label: e.Title,
			Meta:  format.RelativeTime(e.CreatedAt, now),
		})
	}
	return items
}

// IntensityIcon picks the activity icon for an intensity.
func IntensityIcon(i domain.Intensity) string {
	switch i {
	case domain.IntensityHigh:
		return "⚡"
	case domain.IntensityMedium:
		return "🔥"
	case domain.IntensityLow:
		return "💬"
	default:
		return "•"
	}
}

// chart counts entries per day over the last chartBars days ending today and
// scales the counts into the chartMin..chartMin+chartSpan percent band.
func chart(entries []domain.Entry, now time.Time) []Bar {
	today := domain.DateOf(now).Time()
	first := today.AddDate(0, 0, -(chartBars - 1))

	counts := make([]int, chartBars)
	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		day := int(e.Date.Time().Sub(first) / (24 * time.Hour))
		if day >= 0 && day < chartBars {
			counts[day]++
		}
	}

	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}

	bars := make([]Bar, chartBars)
	for i, c := range counts {
		h := chartMin
		if peak > 0 {
			h += chartSpan * float64(c) / float64(peak)
		}
		bars[i] = Bar{
			Day:    first.AddDate(0, 0, i).Format("Jan 2"),
			Count:  c,
			Height: h,
		}
	}
	return bars
}

func records(entries []domain.Entry, now time.Time) []Record {
	out := make([]Record, len(entries))
	for i, e := range entries {
		out[i] = Record{
			ID:             e.ID,
			Title:          e.Title,
			Date:           format.CalendarDateDisplay(e.Date),
			Intensity:      string(e.Intensity),
			IntensityLabel: e.Intensity.Label(),
			Status:         string(e.Status),
			StatusLabel:    e.Status.Label(),
			Notes:          e.NotesText(),
			Owner:          e.OwnerName,
			Updated:        format.RelativeTime(e.UpdatedAt, now),
		}
	}
	return out
}
