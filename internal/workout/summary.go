package workout

import "sort"

// KindSummary aggregates all workouts of one kind
type KindSummary struct {
	Count       int
	DistanceKm  float64
	DurationMin float64
	// AverageMetric is total-based: pace is total duration over total
	// distance, speed is total distance over total hours.
	AverageMetric float64
}

// Summary aggregates a set of workouts
type Summary struct {
	Running KindSummary
	Cycling KindSummary
	// DistanceSeries is the distance of every workout, oldest first
	DistanceSeries []float64
}

// Total returns the number of workouts of either kind
func (s Summary) Total() int {
	return s.Running.Count + s.Cycling.Count
}

// Summarize computes totals and averages per kind
func Summarize(entries []Entry) Summary {
	var s Summary

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].createdAt.Before(sorted[j].createdAt)
	})

	for _, e := range sorted {
		ks := &s.Running
		if e.kind == KindCycling {
			ks = &s.Cycling
		}
		ks.Count++
		ks.DistanceKm += e.distanceKm
		ks.DurationMin += e.durationMin
		s.DistanceSeries = append(s.DistanceSeries, e.distanceKm)
	}

	if s.Running.DistanceKm > 0 {
		s.Running.AverageMetric = round1(s.Running.DurationMin / s.Running.DistanceKm)
	}
	if s.Cycling.DurationMin > 0 {
		s.Cycling.AverageMetric = round1(s.Cycling.DistanceKm / (s.Cycling.DurationMin / 60))
	}
	return s
}
