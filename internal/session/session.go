// Package session coordinates the map, the workout form, the workout list
// and persistence for one run of the application.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"workoutmap/internal/mapview"
	"workoutmap/internal/store"
	"workoutmap/internal/workout"
)

var (
	// ErrLocationUnavailable is returned when the position request fails
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrNoMap is returned by map-dependent operations before the map is ready
	ErrNoMap = errors.New("map not ready")

	// ErrFormClosed is returned when submitting without a pending map click
	ErrFormClosed = errors.New("form is not open")
)

// State is the lifecycle state of a session
type State int

const (
	StateAwaitingLocation State = iota
	StateLocationUnavailable
	StateMapReady
)

func (s State) String() string {
	switch s {
	case StateAwaitingLocation:
		return "awaiting location"
	case StateLocationUnavailable:
		return "location unavailable"
	case StateMapReady:
		return "map ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Deps are the capabilities a Controller drives
type Deps struct {
	Locator Locator
	Maps    MapRenderer
	KV      store.KV
	View    View

	// DefaultLayer is applied whenever a map is rendered
	DefaultLayer mapview.Layer
	// Now defaults to time.Now
	Now    func() time.Time
	Logger *slog.Logger
}

// Controller owns the workout log and the map handle for a session.
// It is not safe for concurrent use; every call must come from the UI
// event loop.
type Controller struct {
	deps   Deps
	logger *slog.Logger

	state     State
	mapHandle MapHandle
	layer     mapview.Layer
	log       *workout.Log

	formOpen      bool
	pendingCoords workout.Coords
	formKind      workout.Kind
}

// New creates a controller in the AwaitingLocation state
func New(deps Deps) *Controller {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		deps:   deps,
		logger: logger.With("component", "session"),
	}
	c.Begin()
	return c
}

// Begin puts the controller in AwaitingLocation with empty state. The
// caller is expected to request the position and pass the result to
// LocationResolved.
func (c *Controller) Begin() {
	c.state = StateAwaitingLocation
	c.mapHandle = nil
	c.layer = c.deps.DefaultLayer
	c.log = workout.NewLog()
	c.formOpen = false
	c.pendingCoords = workout.Coords{}
	c.formKind = workout.KindRunning
}

// Start begins a session and resolves the location synchronously
func (c *Controller) Start(ctx context.Context) error {
	c.Begin()
	coords, err := c.deps.Locator.CurrentPosition(ctx)
	return c.LocationResolved(ctx, coords, err)
}

// LocationResolved completes the position request started by Begin. On
// success the map is rendered, saved workouts are restored and the session
// becomes MapReady. A failure is final for the session.
func (c *Controller) LocationResolved(ctx context.Context, coords workout.Coords, locErr error) error {
	if c.state != StateAwaitingLocation {
		return fmt.Errorf("location resolved in state %s", c.state)
	}

	if locErr != nil {
		c.state = StateLocationUnavailable
		c.logger.Warn("could not retrieve position", "error", locErr)
		c.deps.View.Alert("Could not retrieve position")
		return fmt.Errorf("%w: %v", ErrLocationUnavailable, locErr)
	}

	handle, err := c.deps.Maps.RenderMap(coords)
	if err != nil {
		c.state = StateLocationUnavailable
		c.logger.Error("rendering map", "error", err)
		c.deps.View.Alert("Could not load the map")
		return fmt.Errorf("rendering map: %w", err)
	}

	c.mapHandle = handle
	c.mapHandle.SetActiveLayer(c.layer)
	c.mapHandle.OnClick(c.HandleMapClick)
	c.state = StateMapReady
	c.logger.Info("map ready", "lat", coords.Lat, "lng", coords.Lng)

	c.restore(ctx)
	return nil
}

// restore repopulates the log from persistence. Restored workouts get both
// a list item and a map marker.
func (c *Controller) restore(ctx context.Context) {
	data, ok, err := c.deps.KV.Load(ctx, workout.StorageKey)
	if err != nil {
		c.logger.Error("loading saved workouts", "error", err)
		c.deps.View.Alert("Could not load saved workouts")
		return
	}
	if !ok {
		return
	}

	entries, err := workout.Deserialize(data)
	if err != nil {
		var corrupt *workout.CorruptStoreError
		if errors.As(err, &corrupt) {
			c.logger.Warn("ignoring corrupt saved workouts", "error", err)
			c.deps.View.Alert("Saved workouts were unreadable and have been ignored")
			return
		}
		c.logger.Error("decoding saved workouts", "error", err)
		return
	}

	c.log.Replace(entries)
	for _, e := range entries {
		c.renderMarker(e)
		c.deps.View.RenderEntry(e)
	}
	c.logger.Info("restored workouts", "count", len(entries))
}

// HandleMapClick opens the form for a new workout at coords
func (c *Controller) HandleMapClick(coords workout.Coords) {
	if c.state != StateMapReady {
		return
	}
	c.formOpen = true
	c.pendingCoords = coords
	c.deps.View.ShowForm()
	c.deps.View.FocusDistance()
}

// SelectKind switches which kind-specific field the form shows
func (c *Controller) SelectKind(kind workout.Kind) {
	c.formKind = kind
	c.deps.View.ShowExtraField(kind)
}

// CancelForm hides the form without creating a workout
func (c *Controller) CancelForm() {
	if !c.formOpen {
		return
	}
	c.formOpen = false
	c.deps.View.ClearForm()
	c.deps.View.HideForm()
}

// Submit validates the form, records the workout, renders it and persists
// the log. Invalid input leaves the form open and untouched.
func (c *Controller) Submit(ctx context.Context, in FormInput) (workout.Entry, error) {
	if c.state != StateMapReady {
		return workout.Entry{}, ErrNoMap
	}
	if !c.formOpen {
		return workout.Entry{}, ErrFormClosed
	}

	distance := parseNumber(in.Distance)
	duration := parseNumber(in.Duration)

	var (
		entry workout.Entry
		err   error
	)
	kind := in.Kind
	if kind == "" {
		kind = c.formKind
	}
	now := c.deps.Now()
	switch kind {
	case workout.KindRunning:
		entry, err = workout.NewRun(distance, duration, c.pendingCoords, parseNumber(in.Cadence), now)
	case workout.KindCycling:
		entry, err = workout.NewRide(distance, duration, c.pendingCoords, parseNumber(in.Elevation), now)
	default:
		err = fmt.Errorf("unknown workout kind %q", kind)
	}
	if err != nil {
		c.logger.Debug("rejected workout", "error", err)
		c.deps.View.Alert("Inputs have to be positive numbers!")
		return workout.Entry{}, err
	}

	c.log.Append(entry)
	c.renderMarker(entry)
	c.deps.View.RenderEntry(entry)

	c.deps.View.ClearForm()
	c.deps.View.HideForm()
	c.formOpen = false

	if err := c.persist(ctx); err != nil {
		c.deps.View.Alert("Could not save workouts")
		return entry, err
	}

	c.logger.Info("workout added", "id", entry.ID(), "kind", entry.Kind(), "distance_km", entry.DistanceKm())
	return entry, nil
}

// ToggleLayer flips the map between its two background layers
func (c *Controller) ToggleLayer() error {
	if c.state != StateMapReady {
		return ErrNoMap
	}
	c.layer = c.layer.Toggle()
	c.mapHandle.SetActiveLayer(c.layer)
	return nil
}

// SelectEntry pans the map to the workout with the given id. Unknown ids
// are ignored.
func (c *Controller) SelectEntry(id string) error {
	if c.state != StateMapReady {
		return ErrNoMap
	}
	if id == "" {
		return nil
	}
	e, ok := c.log.FindByID(id)
	if !ok {
		return nil
	}
	c.mapHandle.PanTo(e.Coords(), true)
	return nil
}

// Reset deletes the saved workouts and starts over from AwaitingLocation.
// The caller must request the position again.
func (c *Controller) Reset(ctx context.Context) error {
	if err := c.deps.KV.Remove(ctx, workout.StorageKey); err != nil {
		c.logger.Error("removing saved workouts", "error", err)
		c.deps.View.Alert("Could not delete saved workouts")
		return err
	}

	c.deps.View.ClearForm()
	c.deps.View.HideForm()
	c.deps.View.ClearList()
	c.Begin()
	c.logger.Info("session reset")
	return nil
}

// State returns the lifecycle state
func (c *Controller) State() State {
	return c.state
}

// FormOpen reports whether the form is open and where it was opened
func (c *Controller) FormOpen() (workout.Coords, bool) {
	return c.pendingCoords, c.formOpen
}

// FormKind returns the kind currently selected in the form
func (c *Controller) FormKind() workout.Kind {
	return c.formKind
}

// Layer returns the active map layer
func (c *Controller) Layer() mapview.Layer {
	return c.layer
}

// Entries returns the workouts in the order they were logged
func (c *Controller) Entries() []workout.Entry {
	return c.log.All()
}

func (c *Controller) persist(ctx context.Context) error {
	data, err := c.log.Serialize()
	if err != nil {
		return err
	}
	if err := c.deps.KV.Save(ctx, workout.StorageKey, data); err != nil {
		c.logger.Error("saving workouts", "error", err)
		return fmt.Errorf("saving workouts: %w", err)
	}
	return nil
}

func (c *Controller) renderMarker(e workout.Entry) {
	class := mapview.ClassRunning
	if e.Kind() == workout.KindCycling {
		class = mapview.ClassCycling
	}
	c.mapHandle.AddMarker(e.Coords(), e.Icon()+" "+e.Label(), class)
}

// parseNumber coerces a form field; anything unparsable becomes NaN and
// fails validation.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
