package workout

import (
	"encoding/json"
	"fmt"
	"time"
)

// StorageKey is the persistence key holding the serialized log
const StorageKey = "workouts"

// CorruptStoreError is returned when persisted workouts cannot be decoded
type CorruptStoreError struct {
	Err error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt workout store: %v", e.Err)
}

func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}

// Log is the ordered collection of workouts for a session.
// Entries are only ever appended; Clear drops all of them.
type Log struct {
	entries []Entry
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{}
}

// Append adds an entry to the end of the log
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// All returns a copy of the entries in insertion order
func (l *Log) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *Log) Len() int {
	return len(l.entries)
}

// FindByID returns the entry with the given id
func (l *Log) FindByID(id string) (Entry, bool) {
	for _, e := range l.entries {
		if e.id == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Replace swaps the contents of the log for entries. New ids are issued
// above the largest numeric id among them.
func (l *Log) Replace(entries []Entry) {
	l.entries = append(l.entries[:0:0], entries...)
	for _, e := range entries {
		observeID(e.id)
	}
}

// Clear empties the log. Persisted copies are not touched.
func (l *Log) Clear() {
	l.entries = nil
}

// record is the persisted shape of an Entry
type record struct {
	ID            string     `json:"id"`
	Type          Kind       `json:"type"`
	Date          time.Time  `json:"date"`
	Distance      float64    `json:"distance"`
	Duration      float64    `json:"duration"`
	Coords        []float64  `json:"coords"`
	Cadence       float64    `json:"cadence,omitempty"`
	ElevationGain float64    `json:"elevationGain,omitempty"`
	Pace          float64    `json:"pace,omitempty"`
	Speed         float64    `json:"speed,omitempty"`
}

// Serialize encodes the full log as a JSON array
func (l *Log) Serialize() (string, error) {
	records := make([]record, 0, len(l.entries))
	for _, e := range l.entries {
		records = append(records, record{
			ID:            e.id,
			Type:          e.kind,
			Date:          e.createdAt,
			Distance:      e.distanceKm,
			Duration:      e.durationMin,
			Coords:        []float64{e.coords.Lat, e.coords.Lng},
			Cadence:       e.cadence,
			ElevationGain: e.elevationGain,
			Pace:          e.Pace(),
			Speed:         e.Speed(),
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding workouts: %w", err)
	}
	return string(data), nil
}

// Deserialize decodes the output of Serialize. Derived metrics are
// recomputed from distance and duration rather than read back.
func Deserialize(s string) ([]Entry, error) {
	var records []record
	if err := json.Unmarshal([]byte(s), &records); err != nil {
		return nil, &CorruptStoreError{Err: err}
	}

	entries := make([]Entry, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, &CorruptStoreError{Err: fmt.Errorf("workout %d has no id", i)}
		}
		if seen[r.ID] {
			return nil, &CorruptStoreError{Err: fmt.Errorf("duplicate workout id %q", r.ID)}
		}
		seen[r.ID] = true
		if len(r.Coords) != 2 {
			return nil, &CorruptStoreError{Err: fmt.Errorf("workout %q: coords must be [lat, lng], got %v", r.ID, r.Coords)}
		}

		extra := r.Cadence
		if r.Type == KindCycling {
			extra = r.ElevationGain
		}
		e, err := build(r.Type, r.Distance, r.Duration, Coords{Lat: r.Coords[0], Lng: r.Coords[1]}, extra)
		if err != nil {
			return nil, &CorruptStoreError{Err: fmt.Errorf("workout %q: %w", r.ID, err)}
		}
		e.id = r.ID
		e.createdAt = r.Date
		entries = append(entries, e)
	}
	return entries, nil
}
