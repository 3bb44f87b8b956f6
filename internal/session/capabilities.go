package session

import (
	"context"

	"workoutmap/internal/mapview"
	"workoutmap/internal/workout"
)

// Locator provides the one-shot device position
type Locator interface {
	CurrentPosition(ctx context.Context) (workout.Coords, error)
}

// MapRenderer creates the interactive map
type MapRenderer interface {
	RenderMap(center workout.Coords) (MapHandle, error)
}

// MapHandle is a rendered map
type MapHandle interface {
	OnClick(handler func(workout.Coords))
	AddMarker(coords workout.Coords, popup, class string)
	PanTo(coords workout.Coords, animated bool)
	SetActiveLayer(layer mapview.Layer)
}

// View is the form, list and notice surface driven by the controller
type View interface {
	ShowForm()
	HideForm()
	FocusDistance()
	ClearForm()
	ShowExtraField(kind workout.Kind)
	RenderEntry(e workout.Entry)
	ClearList()
	Alert(msg string)
}

// FormInput is the raw content of the form fields at submission
type FormInput struct {
	Kind      workout.Kind
	Distance  string
	Duration  string
	Cadence   string
	Elevation string
}
