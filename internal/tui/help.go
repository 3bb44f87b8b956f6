package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct {
	viewport viewport.Model
	ready    bool
}

// NewHelpModel creates a new help model
func NewHelpModel(width, height int) HelpModel {
	m := HelpModel{}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.viewport.SetContent(m.renderContent())
		m.ready = true
	}
	return m
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.viewport.SetContent(m.renderContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the help screen
func (m HelpModel) View() string {
	if !m.ready {
		return m.renderContent()
	}
	return m.viewport.View()
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderContent() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Keyboard Shortcuts"))

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"1", "Map"},
		{"2", "Summary"},
		{"?", "Help (this screen)"},
		{"R", "Delete all workouts and locate again"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	}))

	sections = append(sections, m.renderSection("Map", []keyHelp{
		{"arrows / hjkl", "Move the cursor (pans at the edge)"},
		{"enter / space", "Log a workout here"},
		{"+ / -", "Zoom in / out"},
		{"t", "Toggle street / terrain layer"},
		{"tab", "Switch to the workout list"},
	}))

	sections = append(sections, m.renderSection("Workout Form", []keyHelp{
		{"tab / down", "Next field"},
		{"shift+tab / up", "Previous field"},
		{"left / right", "Switch running / cycling (on Type)"},
		{"enter", "Save workout"},
		{"esc", "Cancel"},
	}))

	sections = append(sections, m.renderSection("Workout List", []keyHelp{
		{"j / down", "Move cursor down"},
		{"k / up", "Move cursor up"},
		{"enter", "Show workout on the map"},
		{"tab", "Back to the map"},
	}))

	sections = append(sections, m.renderMetricsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderMetricsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render("Metrics Explained"))
	lines = append(lines, "")

	metrics := []struct {
		name string
		desc string
	}{
		{"Pace (running)", "Minutes per kilometer = duration / distance."},
		{"Speed (cycling)", "Kilometers per hour = distance / (duration / 60)."},
		{"Cadence (running)", "Steps per minute."},
		{"Elevation gain (cycling)", "Meters climbed."},
	}

	for _, metric := range metrics {
		lines = append(lines, "  "+helpKeyStyle.Render(metric.name))
		lines = append(lines, "  "+statusStyle.Render(metric.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
