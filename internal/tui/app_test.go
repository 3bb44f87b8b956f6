package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutmap/internal/config"
	"workoutmap/internal/mapview"
	"workoutmap/internal/session"
	"workoutmap/internal/store"
	"workoutmap/internal/workout"
)

type failingLocator struct{}

func (failingLocator) CurrentPosition(context.Context) (workout.Coords, error) {
	return workout.Coords{}, errors.New("denied")
}

type staticLocator struct{ c workout.Coords }

func (l staticLocator) CurrentPosition(context.Context) (workout.Coords, error) {
	return l.c, nil
}

func newTestApp(t *testing.T, loc session.Locator, kv store.KV) *App {
	t.Helper()
	app := NewApp(context.Background(), loc, kv, Options{
		Zoom:    13,
		Layer:   mapview.LayerStreet,
		Display: config.DisplayConfig{Locale: "en"},
		Now:     func() time.Time { return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC) },
	})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	cmd := app.Init()
	require.NotNil(t, cmd)
	app.Update(cmd())
	return app
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(app *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = app.Update(key(k))
	}
	return cmd
}

func TestAppLocationUnavailable(t *testing.T) {
	app := newTestApp(t, failingLocator{}, store.NewMemory())

	assert.Equal(t, session.StateLocationUnavailable, app.Controller().State())
	assert.Nil(t, app.mapv)
	assert.Contains(t, app.View(), "Could not retrieve position")

	// map keys do nothing without a map
	press(app, "enter")
	assert.False(t, app.form.visible)
}

func TestAppResetAfterLocationFailure(t *testing.T) {
	app := newTestApp(t, failingLocator{}, store.NewMemory())
	require.Equal(t, session.StateLocationUnavailable, app.Controller().State())

	press(app, "R")
	assert.True(t, app.confirmReset)
	cmd := press(app, "y")
	require.NotNil(t, cmd)
	assert.Equal(t, session.StateAwaitingLocation, app.Controller().State())

	msg, ok := cmd().(locationMsg)
	require.True(t, ok)
	assert.Error(t, msg.err)
}

func TestAppLogRun(t *testing.T) {
	kv := store.NewMemory()
	app := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, kv)
	require.Equal(t, session.StateMapReady, app.Controller().State())
	require.NotNil(t, app.mapv)

	press(app, "enter")
	require.True(t, app.form.visible)
	assert.Equal(t, paneForm, app.focus)
	assert.Equal(t, fieldDistance, app.form.focus)

	press(app, "5", "tab", "2", "5", "tab", "1", "7", "0", "enter")

	entries := app.Controller().Entries()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, workout.KindRunning, e.Kind())
	assert.Equal(t, 5.0, e.DistanceKm())
	assert.Equal(t, 5.0, e.Metric())
	assert.Equal(t, 170.0, e.Cadence())

	assert.False(t, app.form.visible)
	assert.Equal(t, paneMap, app.focus)
	assert.Empty(t, app.form.distance.Value())
	assert.Len(t, app.mapv.Markers(), 1)
	assert.Equal(t, e.ID(), app.workouts.Selected())

	saved, ok, err := kv.Load(context.Background(), workout.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, saved, e.ID())
}

func TestAppLogRideWithKindToggle(t *testing.T) {
	app := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, store.NewMemory())

	press(app, "enter")
	// back to the kind selector and switch to cycling
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	press(app, " ")
	assert.Equal(t, workout.KindCycling, app.form.kind)
	assert.Equal(t, workout.KindCycling, app.Controller().FormKind())

	press(app, "tab", "2", "0", "tab", "6", "0", "tab", "3", "0", "0", "enter")

	entries := app.Controller().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, workout.KindCycling, entries[0].Kind())
	assert.Equal(t, 20.0, entries[0].Metric())
	assert.Equal(t, 300.0, entries[0].ElevationGain())
}

func TestAppInvalidInputKeepsFormOpen(t *testing.T) {
	app := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, store.NewMemory())

	press(app, "enter", "-", "5", "tab", "2", "5", "tab", "1", "7", "0", "enter")

	assert.Empty(t, app.Controller().Entries())
	assert.True(t, app.form.visible)
	assert.Equal(t, "-5", app.form.distance.Value())
	assert.True(t, app.statusIsErr)
	assert.Contains(t, app.View(), "Inputs have to be positive numbers!")

	press(app, "esc")
	assert.False(t, app.form.visible)
	assert.Equal(t, paneMap, app.focus)
}

func TestAppSelectEntryPans(t *testing.T) {
	app := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, store.NewMemory())

	press(app, "l", "l", "l", "enter", "5", "tab", "2", "5", "tab", "1", "7", "0", "enter")
	require.Len(t, app.Controller().Entries(), 1)
	target := app.Controller().Entries()[0].Coords()

	press(app, "tab")
	require.Equal(t, paneList, app.focus)
	cmd := press(app, "enter")
	require.NotNil(t, cmd)
	require.True(t, app.mapv.Animating())

	for app.mapv.Animating() {
		app.Update(panTickMsg{})
	}
	assert.InDelta(t, target.Lat, app.mapv.Center().Lat, 1e-9)
	assert.InDelta(t, target.Lng, app.mapv.Center().Lng, 1e-9)
}

func TestAppRestoresSavedWorkouts(t *testing.T) {
	kv := store.NewMemory()
	first := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, kv)
	press(first, "enter", "5", "tab", "2", "5", "tab", "1", "7", "0", "enter")
	require.Len(t, first.Controller().Entries(), 1)

	second := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, kv)
	require.Len(t, second.Controller().Entries(), 1)
	assert.Len(t, second.mapv.Markers(), 1)
	assert.Equal(t, first.Controller().Entries()[0].ID(), second.workouts.Selected())
}

func TestAppReset(t *testing.T) {
	kv := store.NewMemory()
	app := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, kv)
	press(app, "enter", "5", "tab", "2", "5", "tab", "1", "7", "0", "enter")
	require.Len(t, app.Controller().Entries(), 1)

	// anything but y cancels
	press(app, "R", "n")
	assert.Len(t, app.Controller().Entries(), 1)

	press(app, "R")
	cmd := press(app, "y")
	require.NotNil(t, cmd)
	assert.Equal(t, session.StateAwaitingLocation, app.Controller().State())
	assert.Empty(t, app.workouts.Selected())

	_, ok, err := kv.Load(context.Background(), workout.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	app.Update(cmd())
	assert.Equal(t, session.StateMapReady, app.Controller().State())
	assert.Empty(t, app.Controller().Entries())
}

func TestAppScreens(t *testing.T) {
	app := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, store.NewMemory())

	press(app, "2")
	assert.Equal(t, ScreenSummary, app.screen)
	press(app, "?")
	assert.Equal(t, ScreenHelp, app.screen)
	press(app, "esc")
	assert.Equal(t, ScreenSummary, app.screen)
	press(app, "1")
	assert.Equal(t, ScreenMap, app.screen)

	_, cmd := app.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppLayerToggle(t *testing.T) {
	app := newTestApp(t, staticLocator{workout.Coords{Lat: 45.8, Lng: 15.97}}, store.NewMemory())

	press(app, "t")
	assert.Equal(t, mapview.LayerTerrain, app.mapv.Layer())
	assert.Equal(t, mapview.LayerTerrain, app.Controller().Layer())
	press(app, "t")
	assert.Equal(t, mapview.LayerStreet, app.mapv.Layer())
}

func TestUnitsFormatting(t *testing.T) {
	u := NewUnits(config.DisplayConfig{Locale: "de"})
	assert.True(t, strings.Contains(u.FormatDistance(12.5), "12,5"))
}
