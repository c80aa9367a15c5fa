// Package stats derives the dashboard summary figures from the entry
// collection.
package stats

import (
	"sync"

	"github.com/heartmarshall/pudiya/internal/dashboard/format"
	"github.com/heartmarshall/pudiya/internal/domain"
)

// Per-unit recovery weights.
const (
	AsaranaUnitCost       = 420
	HighIntensityUnitCost = 150
)

// Tone classifies a stat delta for presentation.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneUp      Tone = "up"
	ToneAlert   Tone = "alert"
)

// StatSet is the aggregate view of one collection snapshot.
type StatSet struct {
	Total   int `json:"total"`
	High    int `json:"high"`
	Medium  int `json:"medium"`
	Low     int `json:"low"`
	Returns int `json:"returns"`
	Kawa    int `json:"kawa"`
	Asarana int `json:"asarana"`

	EstimatedRecoveryCost int `json:"estimatedRecoveryCost"`
}

// Compute counts entries by intensity and status. Entries with an unknown
// intensity or status still count toward Total.
func Compute(entries []domain.Entry) StatSet {
	s := StatSet{Total: len(entries)}
	for _, e := range entries {
		switch e.Intensity {
		case domain.IntensityHigh:
			s.High++
		case domain.IntensityMedium:
			s.Medium++
		case domain.IntensityLow:
			s.Low++
		}
		switch e.Status {
		case domain.StatusReturn:
			s.Returns++
		case domain.StatusKawa:
			s.Kawa++
		case domain.StatusAsarana:
			s.Asarana++
		}
	}
	s.EstimatedRecoveryCost = RecoveryCost(s.Asarana, s.High)
	return s
}

// RecoveryCost applies the fixed per-unit weights.
func RecoveryCost(asarana, high int) int {
	return asarana*AsaranaUnitCost + high*HighIntensityUnitCost
}

// Card is one stat tile on the dashboard.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
	Tone  Tone   `json:"tone"`
}

// Cards returns the four dashboard tiles in display order.
func (s StatSet) Cards() []Card {
	return []Card{
		{
			Label: "Active Pudi",
			Value: format.Count(s.Total),
			Delta: format.Count(s.Medium) + " medium · " + format.Count(s.Low) + " low",
			Tone:  ToneNeutral,
		},
		{
			Label: "High Intensity",
			Value: format.Count(s.High),
			Delta: "+" + format.Count(s.High) + " high",
			Tone:  s.IntensityTone(),
		},
		{
			Label: "Recovering (Return Pudi)",
			Value: format.Count(s.Returns),
			Delta: "+" + format.Count(s.Returns) + " returning",
			Tone:  s.RecoveryTone(),
		},
		{
			Label: "Money Spent for Pudi Recovery",
			Value: format.Currency(s.EstimatedRecoveryCost),
			Delta: format.Count(s.Asarana) + " asarana",
			Tone:  s.CostTone(),
		},
	}
}

// IntensityTone is alert while any high-intensity entry exists.
func (s StatSet) IntensityTone() Tone {
	if s.High > 0 {
		return ToneAlert
	}
	return ToneNeutral
}

// RecoveryTone is up while any entry is recovering.
func (s StatSet) RecoveryTone() Tone {
	if s.Returns > 0 {
		return ToneUp
	}
	return ToneNeutral
}

// CostTone is alert while any cost accrues.
func (s StatSet) CostTone() Tone {
	if s.Asarana > 0 || s.EstimatedRecoveryCost > 0 {
		return ToneAlert
	}
	return ToneNeutral
}

// Tracker recomputes a StatSet only when the snapshot version changes.
type Tracker struct {
	mu      sync.Mutex
	version uint64
	valid   bool
	stats   StatSet
}

// Get returns the stats for the snapshot identified by version, computing
// them from entries on the first call for that version.
func (t *Tracker) Get(version uint64, entries []domain.Entry) StatSet {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.valid && t.version == version {
		return t.stats
	}
	t.stats = Compute(entries)
	t.version = version
	t.valid = true
	return t.stats
}
