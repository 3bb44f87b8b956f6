package mapview

import (
	"fmt"
	"strings"
)

// Layer selects how the map background is drawn
type Layer int

const (
	LayerStreet Layer = iota
	LayerTerrain
)

// ParseLayer converts a config value into a Layer
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "street":
		return LayerStreet, nil
	case "terrain":
		return LayerTerrain, nil
	}
	return LayerStreet, fmt.Errorf("unknown map layer %q", s)
}

func (l Layer) String() string {
	if l == LayerTerrain {
		return "terrain"
	}
	return "street"
}

// Toggle returns the other layer
func (l Layer) Toggle() Layer {
	if l == LayerTerrain {
		return LayerStreet
	}
	return LayerTerrain
}
