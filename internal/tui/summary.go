package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"workoutmap/internal/workout"
)

// SummaryModel shows totals per kind and a distance chart
type SummaryModel struct {
	units   Units
	summary workout.Summary
	width   int
}

// NewSummaryModel creates a summary of entries
func NewSummaryModel(units Units, entries []workout.Entry, width int) SummaryModel {
	return SummaryModel{
		units:   units,
		summary: workout.Summarize(entries),
		width:   width,
	}
}

// Init initializes the summary screen
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
	}
	return m, nil
}

// View renders the summary
func (m SummaryModel) View() string {
	s := m.summary
	if s.Total() == 0 {
		return statusStyle.Render("\n  No workouts logged yet.")
	}

	var sections []string
	sections = append(sections, cardTitleStyle.Render(fmt.Sprintf("Summary (%d workouts)", s.Total())))

	running := lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(workout.KindRunning.Icon()+" Running"),
		RenderMetric("Workouts", fmt.Sprintf("%d", s.Running.Count)),
		RenderMetric("Distance", m.units.FormatDistance(s.Running.DistanceKm)),
		RenderMetric("Duration", m.units.FormatDuration(s.Running.DurationMin)),
		RenderMetric("Average pace", fmt.Sprintf("%.1f min/km", s.Running.AverageMetric)),
	)
	cycling := lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(workout.KindCycling.Icon()+" Cycling"),
		RenderMetric("Workouts", fmt.Sprintf("%d", s.Cycling.Count)),
		RenderMetric("Distance", m.units.FormatDistance(s.Cycling.DistanceKm)),
		RenderMetric("Duration", m.units.FormatDuration(s.Cycling.DurationMin)),
		RenderMetric("Average speed", fmt.Sprintf("%.1f km/h", s.Cycling.AverageMetric)),
	)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Padding(0, 2).Render(running),
		"  ",
		paneStyle.Padding(0, 2).Render(cycling),
	))

	if len(s.DistanceSeries) >= 2 {
		chartWidth := m.width - 12
		if chartWidth < 20 {
			chartWidth = 20
		}
		chart := asciigraph.Plot(s.DistanceSeries,
			asciigraph.Height(8),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("distance per workout (km), oldest first"),
		)
		sections = append(sections, "", chart)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
