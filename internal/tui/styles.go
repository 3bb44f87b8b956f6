package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	primaryColor   = lipgloss.Color("#00C46A") // Running green
	secondaryColor = lipgloss.Color("#FFB545") // Cycling orange
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	panelColor     = lipgloss.Color("#2D3439") // Sidebar gray
	textColor      = lipgloss.Color("#ECECEC") // Light gray
)

// Styles
var (
	// App chrome
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(panelColor).
			Background(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor)

	focusedPaneStyle = paneStyle.
				BorderForeground(primaryColor)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Form
	formStyle = lipgloss.NewStyle().
			Background(panelColor).
			Padding(0, 1).
			MarginBottom(1)

	formLabelStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(panelColor).
			Width(11)

	formActiveLabelStyle = formLabelStyle.
				Bold(true).
				Foreground(primaryColor)

	// Workout list
	runningItemStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(primaryColor).
				Padding(0, 1)

	cyclingItemStyle = runningItemStyle.
				BorderForeground(secondaryColor)

	selectedItemStyle = lipgloss.NewStyle().
				Background(panelColor)

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Metrics
	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(20)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	// Status
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	popupStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(panelColor).
			Padding(0, 1)

	// Help
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// RenderMetric renders a metric with label and value
func RenderMetric(label, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		metricValueStyle.Render(value),
	)
}

// RenderKeyHelp renders a key binding help item
func RenderKeyHelp(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}
