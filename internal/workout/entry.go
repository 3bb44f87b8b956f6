package workout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Kind identifies the type of a logged workout
type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// ParseKind converts user or config input into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running", "run":
		return KindRunning, nil
	case "cycling", "ride", "cycle":
		return KindCycling, nil
	}
	return "", fmt.Errorf("unknown workout kind %q", s)
}

// Title returns the display name used in labels ("Running", "Cycling")
func (k Kind) Title() string {
	switch k {
	case KindRunning:
		return "Running"
	case KindCycling:
		return "Cycling"
	}
	return string(k)
}

// Icon returns the emoji shown next to entries of this kind
func (k Kind) Icon() string {
	if k == KindCycling {
		return "🚴‍♀️"
	}
	return "🏃‍♂️"
}

// Other returns the opposite kind
func (k Kind) Other() Kind {
	if k == KindCycling {
		return KindRunning
	}
	return KindCycling
}

// Coords is a geographic position in decimal degrees
type Coords struct {
	Lat float64
	Lng float64
}

func (c Coords) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// Valid reports whether both components are finite and in range
func (c Coords) Valid() bool {
	return isFinite(c.Lat) && isFinite(c.Lng) &&
		c.Lat >= -90 && c.Lat <= 90 &&
		c.Lng >= -180 && c.Lng <= 180
}

// InvalidEntryError is returned when a workout is constructed from a
// non-finite or non-positive value.
type InvalidEntryError struct {
	Field string
	Value float64
}

func (e *InvalidEntryError) Error() string {
	if e.Field == "coords" {
		return "invalid workout: coordinates out of range"
	}
	return fmt.Sprintf("invalid workout: %s must be a positive number, got %v", e.Field, e.Value)
}

// Entry is one logged workout. It is immutable once created; the derived
// metric (pace for running, speed for cycling) is computed at construction.
type Entry struct {
	id          string
	createdAt   time.Time
	kind        Kind
	distanceKm  float64
	durationMin float64
	coords      Coords

	cadence       float64 // steps per minute, running only
	elevationGain float64 // meters, cycling only
	metric        float64 // min/km for running, km/h for cycling
}

// NewRun creates a running entry. Pace is duration/distance in min/km.
func NewRun(distanceKm, durationMin float64, coords Coords, cadence float64, now time.Time) (Entry, error) {
	return New(KindRunning, distanceKm, durationMin, coords, cadence, now)
}

// NewRide creates a cycling entry. Speed is distance/(duration/60) in km/h.
func NewRide(distanceKm, durationMin float64, coords Coords, elevationGain float64, now time.Time) (Entry, error) {
	return New(KindCycling, distanceKm, durationMin, coords, elevationGain, now)
}

// New creates an entry of the given kind. extra is the cadence for running
// and the elevation gain for cycling.
func New(kind Kind, distanceKm, durationMin float64, coords Coords, extra float64, now time.Time) (Entry, error) {
	e, err := build(kind, distanceKm, durationMin, coords, extra)
	if err != nil {
		return Entry{}, err
	}
	e.createdAt = now
	e.id = nextID(now)
	return e, nil
}

func build(kind Kind, distanceKm, durationMin float64, coords Coords, extra float64) (Entry, error) {
	extraField := "cadence"
	switch kind {
	case KindRunning:
	case KindCycling:
		extraField = "elevationGain"
	default:
		return Entry{}, fmt.Errorf("unknown workout kind %q", kind)
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"distance", distanceKm},
		{"duration", durationMin},
		{extraField, extra},
	} {
		if !isPositive(f.value) {
			return Entry{}, &InvalidEntryError{Field: f.name, Value: f.value}
		}
	}
	if !coords.Valid() {
		return Entry{}, &InvalidEntryError{Field: "coords"}
	}

	e := Entry{
		kind:        kind,
		distanceKm:  distanceKm,
		durationMin: durationMin,
		coords:      coords,
	}
	if kind == KindRunning {
		e.cadence = extra
		e.metric = round1(durationMin / distanceKm)
	} else {
		e.elevationGain = extra
		e.metric = round1(distanceKm / (durationMin / 60))
	}
	return e, nil
}

func (e Entry) ID() string           { return e.id }
func (e Entry) CreatedAt() time.Time { return e.createdAt }
func (e Entry) Kind() Kind           { return e.kind }
func (e Entry) DistanceKm() float64  { return e.distanceKm }
func (e Entry) DurationMin() float64 { return e.durationMin }
func (e Entry) Coords() Coords       { return e.coords }

// Cadence returns steps per minute; zero for cycling entries
func (e Entry) Cadence() float64 { return e.cadence }

// ElevationGain returns meters climbed; zero for running entries
func (e Entry) ElevationGain() float64 { return e.elevationGain }

// Pace returns min/km; zero for cycling entries
func (e Entry) Pace() float64 {
	if e.kind != KindRunning {
		return 0
	}
	return e.metric
}

// Speed returns km/h; zero for running entries
func (e Entry) Speed() float64 {
	if e.kind != KindCycling {
		return 0
	}
	return e.metric
}

// Metric returns the derived metric for the entry's kind
func (e Entry) Metric() float64 { return e.metric }

// MetricUnit returns the unit label of Metric
func (e Entry) MetricUnit() string {
	if e.kind == KindCycling {
		return "km/h"
	}
	return "min/km"
}

// Label returns the human-readable description, e.g. "Running on April 14"
func (e Entry) Label() string {
	return fmt.Sprintf("%s on %s %d", e.kind.Title(), e.createdAt.Month(), e.createdAt.Day())
}

// Icon returns the kind's emoji
func (e Entry) Icon() string { return e.kind.Icon() }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isPositive(v float64) bool {
	return isFinite(v) && v > 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Ids are the last ten digits of the creation time in milliseconds, bumped
// forward when two entries are created within the same millisecond.
var (
	idMu   sync.Mutex
	lastID int64
)

const idModulus = 10_000_000_000

// observeID keeps ids issued later above an id restored from storage
func observeID(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	idMu.Lock()
	defer idMu.Unlock()
	if n > lastID {
		lastID = n
	}
}

func nextID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	n := t.UnixMilli() % idModulus
	if n <= lastID {
		n = lastID + 1
	}
	lastID = n
	return strconv.FormatInt(n, 10)
}
