package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workoutmap/internal/config"
	"workoutmap/internal/mapview"
	"workoutmap/internal/session"
	"workoutmap/internal/store"
	"workoutmap/internal/workout"
)

// Screen identifiers
type Screen int

const (
	ScreenMap Screen = iota
	ScreenSummary
	ScreenHelp
)

// pane identifies what receives key presses on the map screen
type pane int

const (
	paneMap pane = iota
	paneList
	paneForm
)

const (
	sidebarWidth  = 46
	panFrameDelay = 30 * time.Millisecond
)

// Options configures NewApp
type Options struct {
	Zoom    int
	Layer   mapview.Layer
	Display config.DisplayConfig
	Logger  *slog.Logger
	Now     func() time.Time
}

// App is the root Bubble Tea model. It renders the map, form and list and
// forwards user events to the session controller, which calls back into
// the App through session.View and session.MapRenderer.
type App struct {
	ctx        context.Context
	screen     Screen
	prevScreen Screen
	focus      pane

	ctl     *session.Controller
	locator session.Locator
	zoom    int
	units   Units

	mapv     *mapview.Map
	form     FormModel
	workouts WorkoutsModel
	summary  SummaryModel
	help     HelpModel

	// Window dimensions
	width  int
	height int

	// Status message
	status       string
	statusIsErr  bool
	confirmReset bool
}

// NewApp creates a new App with all dependencies
func NewApp(ctx context.Context, locator session.Locator, kv store.KV, opts Options) *App {
	units := NewUnits(opts.Display)
	a := &App{
		ctx:      ctx,
		screen:   ScreenMap,
		locator:  locator,
		zoom:     opts.Zoom,
		units:    units,
		form:     NewFormModel(),
		workouts: NewWorkoutsModel(units),
		help:     NewHelpModel(0, 0),
	}
	a.ctl = session.New(session.Deps{
		Locator:      locator,
		Maps:         a,
		KV:           kv,
		View:         a,
		DefaultLayer: opts.Layer,
		Now:          opts.Now,
		Logger:       opts.Logger,
	})
	return a
}

// Controller returns the session controller driven by the app
func (a *App) Controller() *session.Controller {
	return a.ctl
}

// Init requests the starting position
func (a *App) Init() tea.Cmd {
	return a.locate()
}

type locationMsg struct {
	coords workout.Coords
	err    error
}

type panTickMsg struct{}

func (a *App) locate() tea.Cmd {
	ctx, locator := a.ctx, a.locator
	return func() tea.Msg {
		coords, err := locator.CurrentPosition(ctx)
		return locationMsg{coords: coords, err: err}
	}
}

func panTick() tea.Cmd {
	return tea.Tick(panFrameDelay, func(time.Time) tea.Msg { return panTickMsg{} })
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case locationMsg:
		// failures are alerted by the controller
		_ = a.ctl.LocationResolved(a.ctx, msg.coords, msg.err)
		return a, nil

	case panTickMsg:
		if a.mapv != nil && a.mapv.Step() {
			return a, panTick()
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.mapv != nil {
			a.mapv.Resize(a.mapSize())
		}
		var cmd tea.Cmd
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	a.status = ""
	a.statusIsErr = false

	if a.confirmReset {
		a.confirmReset = false
		if msg.String() == "y" {
			return a, a.reset()
		}
		a.setStatus("Reset cancelled")
		return a, nil
	}

	// The form captures all keys while it is open
	if a.screen == ScreenMap && a.focus == paneForm {
		return a.handleFormKey(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "1":
		a.screen = ScreenMap
		return a, nil
	case "2":
		a.screen = ScreenSummary
		a.summary = NewSummaryModel(a.units, a.ctl.Entries(), a.width)
		return a, a.summary.Init()
	case "R":
		// works in every state, including after a location failure
		a.confirmReset = true
		a.setStatus("Delete all workouts and start over? Press y to confirm")
		return a, nil
	case "?":
		if a.screen != ScreenHelp {
			a.prevScreen = a.screen
			a.screen = ScreenHelp
		}
		return a, nil
	case "esc":
		if a.screen == ScreenHelp {
			a.screen = a.prevScreen
			return a, nil
		}
	}

	switch a.screen {
	case ScreenHelp:
		var m tea.Model
		var cmd tea.Cmd
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
		return a, cmd
	case ScreenSummary:
		return a, nil
	}

	if a.ctl.State() != session.StateMapReady {
		return a, nil
	}
	if a.focus == paneList {
		return a.handleListKey(msg)
	}
	return a.handleMapKey(msg)
}

func (a *App) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.mapv.MoveCursor(0, -1)
	case "down", "j":
		a.mapv.MoveCursor(0, 1)
	case "left", "h":
		a.mapv.MoveCursor(-1, 0)
	case "right", "l":
		a.mapv.MoveCursor(1, 0)
	case "K":
		a.mapv.MoveCursor(0, -5)
	case "J":
		a.mapv.MoveCursor(0, 5)
	case "H":
		a.mapv.MoveCursor(-5, 0)
	case "L":
		a.mapv.MoveCursor(5, 0)
	case "+", "=":
		a.mapv.ZoomBy(1)
	case "-":
		a.mapv.ZoomBy(-1)
	case "enter", " ":
		a.mapv.Click()
	case "t":
		if err := a.ctl.ToggleLayer(); err == nil {
			a.setStatus("Layer: " + a.ctl.Layer().String())
		}
	case "tab":
		a.focus = paneList
	}
	return a, nil
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.workouts.move(-1)
	case "down", "j":
		a.workouts.move(1)
	case "enter", " ":
		if err := a.ctl.SelectEntry(a.workouts.Selected()); err == nil && a.mapv.Animating() {
			return a, panTick()
		}
	case "tab", "esc":
		a.focus = paneMap
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, action, cmd := a.form.Update(msg)
	a.form = form

	switch action {
	case formSubmit:
		if e, err := a.ctl.Submit(a.ctx, a.form.Input()); err == nil {
			a.setStatus(fmt.Sprintf("Saved %s", e.Label()))
		}
	case formCancel:
		a.ctl.CancelForm()
	case formToggleKind:
		a.ctl.SelectKind(a.form.kind.Other())
	}
	return a, cmd
}

func (a *App) reset() tea.Cmd {
	if err := a.ctl.Reset(a.ctx); err != nil {
		return nil
	}
	a.mapv = nil
	a.focus = paneMap
	a.screen = ScreenMap
	a.setStatus("All workouts deleted")
	return a.locate()
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusIsErr = false
}

// mapSize returns the map grid size that fits next to the sidebar
func (a *App) mapSize() (int, int) {
	if a.width == 0 || a.height == 0 {
		return 60, 18
	}
	// pane borders, header, popup and footer lines
	return a.width - sidebarWidth - 4, a.height - 9
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()

	var content string
	switch a.screen {
	case ScreenMap:
		content = a.renderMapScreen()
	case ScreenSummary:
		content = a.summary.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, a.renderFooter())
}

func (a *App) renderHeader() string {
	title := "workoutmap"
	if a.mapv != nil && a.screen == ScreenMap {
		title += fmt.Sprintf("  %s  zoom %d  %s", a.mapv.CursorCoords(), a.mapv.Zoom(), a.mapv.Layer())
	}
	return headerStyle.Render(title)
}

func (a *App) renderMapScreen() string {
	switch a.ctl.State() {
	case session.StateAwaitingLocation:
		return statusStyle.Render("\n  Locating you...")
	case session.StateLocationUnavailable:
		return errorStyle.Render("\n  Could not retrieve position. The map is unavailable for this session.")
	}

	mapStyle := paneStyle
	if a.focus == paneMap {
		mapStyle = focusedPaneStyle
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		mapStyle.Render(a.mapv.Render(a.focus == paneMap)),
		popupStyle.Render(a.mapv.Popup()),
	)

	_, mapHeight := a.mapSize()
	listHeight := mapHeight
	formView := a.form.View()
	if formView != "" {
		listHeight -= lipgloss.Height(formView)
	}
	sideStyle := paneStyle
	if a.focus != paneMap {
		sideStyle = focusedPaneStyle
	}
	sidebar := sideStyle.Width(sidebarWidth - 2).Height(mapHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			formView,
			a.workouts.View(sidebarWidth-4, listHeight, a.focus == paneList),
		),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, sidebar)
}

func (a *App) renderFooter() string {
	var hint string
	switch {
	case a.screen != ScreenMap:
		hint = "1: map  2: summary  ?: help  q: quit"
	case a.ctl.State() == session.StateLocationUnavailable:
		hint = "R: reset and locate again  q: quit"
	case a.focus == paneForm:
		hint = "tab: next field  ←/→: type  enter: save  esc: cancel"
	case a.focus == paneList:
		hint = "j/k: select  enter: show on map  tab: map  R: reset"
	default:
		hint = "arrows: move  enter: log workout  +/-: zoom  t: layer  tab: list  2: summary  ?: help"
	}

	footer := statusStyle.Render(hint)
	if a.status != "" {
		style := statusStyle
		if a.statusIsErr {
			style = errorStyle
		}
		footer = style.Render(a.status) + "\n" + footer
	}
	return footer
}
