package tui

import (
	"workoutmap/internal/mapview"
	"workoutmap/internal/session"
	"workoutmap/internal/workout"
)

// RenderMap creates the terminal map. It implements session.MapRenderer.
func (a *App) RenderMap(center workout.Coords) (session.MapHandle, error) {
	w, h := a.mapSize()
	a.mapv = mapview.New(center, a.zoom, w, h)
	a.focus = paneMap
	return a.mapv, nil
}

// The methods below implement session.View.

func (a *App) ShowForm() {
	a.form.show()
	a.focus = paneForm
}

func (a *App) HideForm() {
	a.form.hide()
	if a.focus == paneForm {
		a.focus = paneMap
	}
}

func (a *App) FocusDistance() {
	a.form.focusField(fieldDistance)
}

func (a *App) ClearForm() {
	a.form.clear()
}

func (a *App) ShowExtraField(kind workout.Kind) {
	a.form.setKind(kind)
	if a.form.focus == fieldExtra {
		a.form.focusField(fieldExtra)
	}
}

func (a *App) RenderEntry(e workout.Entry) {
	a.workouts.add(e)
}

func (a *App) ClearList() {
	a.workouts.clear()
}

func (a *App) Alert(msg string) {
	a.status = msg
	a.statusIsErr = true
}
