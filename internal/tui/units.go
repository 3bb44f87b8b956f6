package tui

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"workoutmap/internal/config"
	"workoutmap/internal/workout"
)

// Units formats workout values for the user's locale. Distances are always
// kilometers and durations minutes.
type Units struct {
	p *message.Printer
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.English
	}
	return Units{p: message.NewPrinter(tag)}
}

// FormatDistance formats kilometers with one decimal
func (u Units) FormatDistance(km float64) string {
	return u.p.Sprintf("%.1f km", km)
}

// FormatDuration formats minutes, dropping the decimal for whole minutes
func (u Units) FormatDuration(min float64) string {
	if min == math.Trunc(min) {
		return u.p.Sprintf("%d min", int(min))
	}
	return u.p.Sprintf("%.1f min", min)
}

// FormatMetric formats the entry's pace or speed with its unit
func (u Units) FormatMetric(e workout.Entry) string {
	return u.p.Sprintf("%.1f %s", e.Metric(), e.MetricUnit())
}

// FormatExtra formats cadence for running and elevation gain for cycling
func (u Units) FormatExtra(e workout.Entry) string {
	if e.Kind() == workout.KindCycling {
		return u.p.Sprintf("%d m", int(math.Round(e.ElevationGain())))
	}
	return u.p.Sprintf("%d spm", int(math.Round(e.Cadence())))
}

// ExtraIcon returns the icon shown before FormatExtra
func ExtraIcon(kind workout.Kind) string {
	if kind == workout.KindCycling {
		return "⛰"
	}
	return "🦶🏼"
}
