package workout

import (
	"errors"
	"math"
	"testing"
	"time"
)

var london = Coords{Lat: 51.5, Lng: -0.1}

func TestNewRunPace(t *testing.T) {
	tests := []struct {
		distance float64
		duration float64
		expected float64
	}{
		{5, 25, 5.0},
		{5, 27, 5.4},
		{3, 20, 6.7},
		{10, 42.5, 4.3},
		{21.1, 105, 5.0},
		{2, 7, 3.5},
	}

	now := time.Date(2026, 4, 14, 8, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		e, err := NewRun(tt.distance, tt.duration, london, 170, now)
		if err != nil {
			t.Fatalf("NewRun(%v, %v) error = %v", tt.distance, tt.duration, err)
		}
		if e.Pace() != tt.expected {
			t.Errorf("NewRun(%v, %v).Pace() = %v, want %v", tt.distance, tt.duration, e.Pace(), tt.expected)
		}
		if e.Speed() != 0 {
			t.Errorf("running entry Speed() = %v, want 0", e.Speed())
		}
	}
}

func TestNewRideSpeed(t *testing.T) {
	tests := []struct {
		distance float64
		duration float64
		expected float64
	}{
		{20, 60, 20.0},
		{10, 37, 16.2},
		{42, 95, 26.5},
		{1, 1, 60.0},
		{7.5, 30, 15.0},
	}

	now := time.Date(2026, 4, 14, 8, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		e, err := NewRide(tt.distance, tt.duration, london, 120, now)
		if err != nil {
			t.Fatalf("NewRide(%v, %v) error = %v", tt.distance, tt.duration, err)
		}
		want := math.Round(tt.distance/(tt.duration/60)*10) / 10
		if e.Speed() != want || e.Speed() != tt.expected {
			t.Errorf("NewRide(%v, %v).Speed() = %v, want %v", tt.distance, tt.duration, e.Speed(), tt.expected)
		}
		if e.MetricUnit() != "km/h" {
			t.Errorf("MetricUnit() = %q, want km/h", e.MetricUnit())
		}
	}
}

func TestNewRejectsInvalidInput(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		kind     Kind
		distance float64
		duration float64
		coords   Coords
		extra    float64
		field    string
	}{
		{"zero distance", KindRunning, 0, 25, london, 178, "distance"},
		{"negative duration", KindRunning, 5, -25, london, 178, "duration"},
		{"NaN cadence", KindRunning, 5, 25, london, math.NaN(), "cadence"},
		{"infinite distance", KindCycling, math.Inf(1), 60, london, 100, "distance"},
		{"zero elevation", KindCycling, 20, 60, london, 0, "elevationGain"},
		{"negative elevation", KindCycling, 20, 60, london, -5, "elevationGain"},
		{"latitude out of range", KindRunning, 5, 25, Coords{Lat: 91, Lng: 0}, 178, "coords"},
		{"NaN longitude", KindCycling, 20, 60, Coords{Lat: 0, Lng: math.NaN()}, 100, "coords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.kind, tt.distance, tt.duration, tt.coords, tt.extra, now)
			var invalid *InvalidEntryError
			if !errors.As(err, &invalid) {
				t.Fatalf("New() error = %v, want *InvalidEntryError", err)
			}
			if invalid.Field != tt.field {
				t.Errorf("Field = %q, want %q", invalid.Field, tt.field)
			}
		})
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind("swimming"), 1, 30, london, 10, time.Now())
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestEntryLabel(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

	run, err := NewRun(5, 25, london, 178, now)
	if err != nil {
		t.Fatalf("NewRun() error = %v", err)
	}
	if run.Label() != "Running on October 17" {
		t.Errorf("Label() = %q, want %q", run.Label(), "Running on October 17")
	}

	ride, err := NewRide(20, 60, london, 300, now)
	if err != nil {
		t.Fatalf("NewRide() error = %v", err)
	}
	if ride.Label() != "Cycling on October 17" {
		t.Errorf("Label() = %q, want %q", ride.Label(), "Cycling on October 17")
	}
}

func TestEntryIDsUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		e, err := NewRun(5, 25, london, 178, now)
		if err != nil {
			t.Fatalf("NewRun() error = %v", err)
		}
		if e.ID() == "" {
			t.Fatal("empty id")
		}
		if seen[e.ID()] {
			t.Fatalf("duplicate id %q", e.ID())
		}
		seen[e.ID()] = true
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{"running", KindRunning, false},
		{"Run", KindRunning, false},
		{" cycling ", KindCycling, false},
		{"ride", KindCycling, false},
		{"swim", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
