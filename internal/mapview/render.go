package mapview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	streetDotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563"))
	streetRoadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	terrainStyles   = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#14532D")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#166534")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#65A30D")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#A16207")),
	}
	terrainGlyphs = []string{" ", "░", "▒", "▓"}

	runningMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00C46A"))
	cyclingMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB545"))
	cursorStyle        = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// Marker glyphs by popup class
const (
	ClassRunning = "running-popup"
	ClassCycling = "cycling-popup"
)

// Render draws the map grid, one terminal cell per map cell
func (m *Map) Render(showCursor bool) string {
	var b strings.Builder
	for row := 0; row < m.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < m.width; col++ {
			cell := m.renderCell(col, row)
			if showCursor && col == m.cursorCol && row == m.cursorRow {
				glyph := "+"
				if mk, ok := m.MarkerAt(col, row); ok {
					glyph = markerGlyph(mk.Class)
				}
				cell = cursorStyle.Render(glyph)
			}
			b.WriteString(cell)
		}
	}
	return b.String()
}

// Popup returns the text to show for the marker under the cursor, or the
// most recently added marker when the cursor is on empty ground.
func (m *Map) Popup() string {
	if mk, ok := m.MarkerAt(m.cursorCol, m.cursorRow); ok {
		return mk.Popup
	}
	if n := len(m.markers); n > 0 {
		return m.markers[n-1].Popup
	}
	return ""
}

func (m *Map) renderCell(col, row int) string {
	if mk, ok := m.MarkerAt(col, row); ok {
		return markerStyle(mk.Class).Render(markerGlyph(mk.Class))
	}

	// absolute cell indices keep the background fixed to the ground while panning
	c := m.Unproject(col, row)
	absCol := int(math.Floor(c.Lng / m.degPerCol()))
	absRow := int(math.Floor(c.Lat / m.degPerRow()))

	if m.layer == LayerTerrain {
		h := hash2(absCol/3, absRow/2) % uint32(len(terrainGlyphs))
		return terrainStyles[h].Render(terrainGlyphs[h])
	}

	switch {
	case absCol%12 == 0 && absRow%6 == 0:
		return streetRoadStyle.Render("┼")
	case absCol%12 == 0:
		return streetRoadStyle.Render("│")
	case absRow%6 == 0:
		return streetRoadStyle.Render("─")
	case absCol%3 == 0 && absRow%2 == 0:
		return streetDotStyle.Render("·")
	}
	return " "
}

func markerGlyph(class string) string {
	if class == ClassCycling {
		return "●"
	}
	return "▲"
}

func markerStyle(class string) lipgloss.Style {
	if class == ClassCycling {
		return cyclingMarkerStyle
	}
	return runningMarkerStyle
}

func hash2(x, y int) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}
