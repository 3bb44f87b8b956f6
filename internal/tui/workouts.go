package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"workoutmap/internal/workout"
)

// WorkoutsModel is the sidebar list of logged workouts, newest first
type WorkoutsModel struct {
	units   Units
	entries []workout.Entry // insertion order
	cursor  int             // index into display order
	offset  int
}

// NewWorkoutsModel creates an empty list
func NewWorkoutsModel(units Units) WorkoutsModel {
	return WorkoutsModel{units: units}
}

func (m *WorkoutsModel) add(e workout.Entry) {
	m.entries = append(m.entries, e)
	m.cursor = 0
	m.offset = 0
}

func (m *WorkoutsModel) clear() {
	m.entries = nil
	m.cursor = 0
	m.offset = 0
}

func (m *WorkoutsModel) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
}

// Selected returns the id of the workout under the cursor, or "" when the
// list is empty.
func (m WorkoutsModel) Selected() string {
	if len(m.entries) == 0 {
		return ""
	}
	return m.at(m.cursor).ID()
}

// at maps a display index to an entry
func (m WorkoutsModel) at(i int) workout.Entry {
	return m.entries[len(m.entries)-1-i]
}

// View renders as many items as fit in height lines
func (m *WorkoutsModel) View(width, height int, focused bool) string {
	if len(m.entries) == 0 {
		return statusStyle.Render("No workouts yet.\nClick the map to log one.")
	}

	const itemHeight = 3 // title, stats, spacing
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	var items []string
	for i := m.offset; i < len(m.entries) && i < m.offset+visible; i++ {
		items = append(items, m.renderItem(m.at(i), width, focused && i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m WorkoutsModel) renderItem(e workout.Entry, width int, selected bool) string {
	style := runningItemStyle
	if e.Kind() == workout.KindCycling {
		style = cyclingItemStyle
	}
	if selected {
		style = style.Inherit(selectedItemStyle)
	}

	title := itemTitleStyle.Render(e.Label())
	stats := fmt.Sprintf("%s %s  ⏱ %s  ⚡️ %s  %s %s",
		e.Icon(), m.units.FormatDistance(e.DistanceKm()),
		m.units.FormatDuration(e.DurationMin()),
		m.units.FormatMetric(e),
		ExtraIcon(e.Kind()), m.units.FormatExtra(e),
	)
	return style.Width(width).MarginBottom(1).Render(title + "\n" + stats)
}
