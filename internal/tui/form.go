package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workoutmap/internal/session"
	"workoutmap/internal/workout"
)

// form fields in tab order; fieldExtra is cadence or elevation by kind
const (
	fieldKind = iota
	fieldDistance
	fieldDuration
	fieldExtra
	fieldCount
)

// FormModel is the new-workout form
type FormModel struct {
	visible   bool
	kind      workout.Kind
	focus     int
	distance  textinput.Model
	duration  textinput.Model
	cadence   textinput.Model
	elevation textinput.Model
}

// NewFormModel creates a hidden form
func NewFormModel() FormModel {
	return FormModel{
		kind:      workout.KindRunning,
		distance:  newNumberInput("km"),
		duration:  newNumberInput("min"),
		cadence:   newNumberInput("step/min"),
		elevation: newNumberInput("meters"),
	}
}

func newNumberInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 10
	ti.Width = 12
	ti.Prompt = ""
	return ti
}

// Input returns the raw field values for submission
func (m FormModel) Input() session.FormInput {
	return session.FormInput{
		Kind:      m.kind,
		Distance:  m.distance.Value(),
		Duration:  m.duration.Value(),
		Cadence:   m.cadence.Value(),
		Elevation: m.elevation.Value(),
	}
}

func (m *FormModel) show() {
	m.visible = true
}

func (m *FormModel) hide() {
	m.visible = false
	m.blurAll()
}

func (m *FormModel) focusField(field int) {
	m.blurAll()
	m.focus = field
	if in := m.input(field); in != nil {
		in.Focus()
	}
}

func (m *FormModel) clear() {
	m.distance.SetValue("")
	m.duration.SetValue("")
	m.cadence.SetValue("")
	m.elevation.SetValue("")
}

func (m *FormModel) setKind(kind workout.Kind) {
	m.kind = kind
}

func (m *FormModel) blurAll() {
	m.distance.Blur()
	m.duration.Blur()
	m.cadence.Blur()
	m.elevation.Blur()
}

// input returns the text field for a focus slot; nil for the kind selector
func (m *FormModel) input(field int) *textinput.Model {
	switch field {
	case fieldDistance:
		return &m.distance
	case fieldDuration:
		return &m.duration
	case fieldExtra:
		if m.kind == workout.KindCycling {
			return &m.elevation
		}
		return &m.cadence
	}
	return nil
}

// formAction is what a key press in the form asks the app to do
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
	formToggleKind
)

// Update handles a key press, returning the action the app must forward to
// the session controller.
func (m FormModel) Update(msg tea.KeyMsg) (FormModel, formAction, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, formSubmit, nil
	case "esc":
		return m, formCancel, nil
	case "tab", "down":
		m.focusField((m.focus + 1) % fieldCount)
		return m, formNone, nil
	case "shift+tab", "up":
		m.focusField((m.focus + fieldCount - 1) % fieldCount)
		return m, formNone, nil
	}

	if m.focus == fieldKind {
		switch msg.String() {
		case "left", "right", " ", "h", "l":
			return m, formToggleKind, nil
		}
		return m, formNone, nil
	}

	var cmd tea.Cmd
	in := m.input(m.focus)
	*in, cmd = in.Update(msg)
	return m, formNone, cmd
}

// View renders the form
func (m FormModel) View() string {
	if !m.visible {
		return ""
	}

	kindValue := "◀ " + m.kind.Title() + " ▶"
	extraLabel := "Cadence"
	extra := m.cadence
	if m.kind == workout.KindCycling {
		extraLabel = "Elev Gain"
		extra = m.elevation
	}

	rows := []string{
		m.row(fieldKind, "Type", kindValue),
		m.row(fieldDistance, "Distance", m.distance.View()),
		m.row(fieldDuration, "Duration", m.duration.View()),
		m.row(fieldExtra, extraLabel, extra.View()),
	}
	return formStyle.Render(strings.Join(rows, "\n"))
}

func (m FormModel) row(field int, label, value string) string {
	style := formLabelStyle
	if m.focus == field {
		style = formActiveLabelStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, style.Render(label), value)
}
