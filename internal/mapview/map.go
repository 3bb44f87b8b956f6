// Package mapview is a terminal slippy map: a cursor over an
// equirectangular grid of cells with markers, two background layers and
// animated panning.
package mapview

import (
	"math"

	"workoutmap/internal/workout"
)

const (
	MinZoom     = 3
	MaxZoom     = 18
	DefaultZoom = 13

	// a zoom 0 cell spans 360/32 degrees of longitude
	cellsPerWorldAtZoom0 = 32
	panSteps             = 8
	maxLat               = 85.0
)

// Marker is a pinned workout with its popup text
type Marker struct {
	Coords workout.Coords
	Popup  string
	Class  string
}

type panAnimation struct {
	from, to workout.Coords
	step     int
}

// Map is the state of one rendered map
type Map struct {
	center        workout.Coords
	zoom          int
	width, height int
	cursorCol     int
	cursorRow     int
	layer         Layer
	markers       []Marker
	onClick       func(workout.Coords)
	pan           *panAnimation
}

// New creates a map centered on center with the cursor in the middle
func New(center workout.Coords, zoom, width, height int) *Map {
	m := &Map{
		center: normalize(center),
		zoom:   clampZoom(zoom),
	}
	m.Resize(width, height)
	m.centerCursor()
	return m
}

// OnClick registers the handler fired by Click
func (m *Map) OnClick(fn func(workout.Coords)) {
	m.onClick = fn
}

// AddMarker pins popup at coords
func (m *Map) AddMarker(coords workout.Coords, popup, class string) {
	m.markers = append(m.markers, Marker{Coords: coords, Popup: popup, Class: class})
}

// Markers returns the pinned markers in insertion order
func (m *Map) Markers() []Marker {
	return m.markers
}

// PanTo recenters the map on coords. Animated pans advance with Step.
func (m *Map) PanTo(coords workout.Coords, animated bool) {
	if !animated {
		m.pan = nil
		m.center = normalize(coords)
		m.centerCursor()
		return
	}
	m.pan = &panAnimation{from: m.center, to: normalize(coords)}
	m.centerCursor()
}

// Step advances a running pan animation by one frame and reports whether
// more frames remain.
func (m *Map) Step() bool {
	if m.pan == nil {
		return false
	}
	m.pan.step++
	t := float64(m.pan.step) / panSteps
	if t >= 1 {
		m.center = m.pan.to
		m.pan = nil
		return false
	}
	// ease out
	t = 1 - (1-t)*(1-t)
	m.center = workout.Coords{
		Lat: m.pan.from.Lat + (m.pan.to.Lat-m.pan.from.Lat)*t,
		Lng: m.pan.from.Lng + (m.pan.to.Lng-m.pan.from.Lng)*t,
	}
	return true
}

// Animating reports whether a pan is in progress
func (m *Map) Animating() bool {
	return m.pan != nil
}

// SetActiveLayer switches the background layer
func (m *Map) SetActiveLayer(l Layer) {
	m.layer = l
}

// Layer returns the active background layer
func (m *Map) Layer() Layer {
	return m.layer
}

// Center returns the coordinates at the middle of the map
func (m *Map) Center() workout.Coords {
	return m.center
}

// Zoom returns the zoom level
func (m *Map) Zoom() int {
	return m.zoom
}

// ZoomBy changes the zoom level, keeping the center fixed
func (m *Map) ZoomBy(delta int) {
	m.zoom = clampZoom(m.zoom + delta)
}

// Resize sets the size of the map in cells
func (m *Map) Resize(width, height int) {
	if width < 3 {
		width = 3
	}
	if height < 3 {
		height = 3
	}
	m.width, m.height = width, height
	m.cursorCol = clampInt(m.cursorCol, 0, width-1)
	m.cursorRow = clampInt(m.cursorRow, 0, height-1)
}

// Size returns the width and height in cells
func (m *Map) Size() (int, int) {
	return m.width, m.height
}

// MoveCursor moves the cursor; moving past an edge pans the map instead
func (m *Map) MoveCursor(dCol, dRow int) {
	col := m.cursorCol + dCol
	row := m.cursorRow + dRow

	if col < 0 || col >= m.width {
		m.center = normalize(workout.Coords{
			Lat: m.center.Lat,
			Lng: m.center.Lng + float64(dCol)*m.degPerCol(),
		})
		col = clampInt(col, 0, m.width-1)
	}
	if row < 0 || row >= m.height {
		m.center = normalize(workout.Coords{
			Lat: m.center.Lat - float64(dRow)*m.degPerRow(),
			Lng: m.center.Lng,
		})
		row = clampInt(row, 0, m.height-1)
	}
	m.cursorCol, m.cursorRow = col, row
}

// Cursor returns the cursor cell
func (m *Map) Cursor() (col, row int) {
	return m.cursorCol, m.cursorRow
}

// CursorCoords returns the coordinates under the cursor
func (m *Map) CursorCoords() workout.Coords {
	return m.Unproject(m.cursorCol, m.cursorRow)
}

// Click fires the click handler with the coordinates under the cursor
func (m *Map) Click() {
	if m.onClick != nil {
		m.onClick(m.CursorCoords())
	}
}

// MarkerAt returns the most recently added marker drawn in a cell
func (m *Map) MarkerAt(col, row int) (Marker, bool) {
	for i := len(m.markers) - 1; i >= 0; i-- {
		c, r, ok := m.Project(m.markers[i].Coords)
		if ok && c == col && r == row {
			return m.markers[i], true
		}
	}
	return Marker{}, false
}

// Project returns the cell showing coords and whether it is on screen
func (m *Map) Project(coords workout.Coords) (col, row int, ok bool) {
	dLng := coords.Lng - m.center.Lng
	if dLng > 180 {
		dLng -= 360
	} else if dLng < -180 {
		dLng += 360
	}
	col = m.width/2 + int(math.Round(dLng/m.degPerCol()))
	row = m.height/2 - int(math.Round((coords.Lat-m.center.Lat)/m.degPerRow()))
	ok = col >= 0 && col < m.width && row >= 0 && row < m.height
	return col, row, ok
}

// Unproject returns the coordinates at the middle of a cell
func (m *Map) Unproject(col, row int) workout.Coords {
	return normalize(workout.Coords{
		Lat: m.center.Lat - float64(row-m.height/2)*m.degPerRow(),
		Lng: m.center.Lng + float64(col-m.width/2)*m.degPerCol(),
	})
}

// degPerCol is the longitude span of one cell
func (m *Map) degPerCol() float64 {
	return 360 / (float64(cellsPerWorldAtZoom0) * math.Exp2(float64(m.zoom)))
}

// degPerRow is the latitude span of one cell. Terminal cells are about
// twice as tall as they are wide.
func (m *Map) degPerRow() float64 {
	cos := math.Cos(m.center.Lat * math.Pi / 180)
	if cos < 0.05 {
		cos = 0.05
	}
	return 2 * m.degPerCol() * cos
}

func (m *Map) centerCursor() {
	m.cursorCol = m.width / 2
	m.cursorRow = m.height / 2
}

func normalize(c workout.Coords) workout.Coords {
	c.Lat = math.Max(-maxLat, math.Min(maxLat, c.Lat))
	if c.Lng < -180 || c.Lng >= 180 {
		c.Lng = math.Mod(c.Lng+180, 360)
		if c.Lng < 0 {
			c.Lng += 360
		}
		c.Lng -= 180
	}
	return c
}

func clampZoom(z int) int {
	if z == 0 {
		return DefaultZoom
	}
	return clampInt(z, MinZoom, MaxZoom)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
