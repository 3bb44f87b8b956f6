// Package locate resolves the device position used to center the map.
package locate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"workoutmap/internal/workout"
)

// ErrNoPosition is returned when no position source is configured
var ErrNoPosition = errors.New("no position available")

// Static always reports the same position
type Static struct {
	Coords workout.Coords
}

// CurrentPosition returns the configured coordinates
func (s Static) CurrentPosition(ctx context.Context) (workout.Coords, error) {
	if !s.Coords.Valid() {
		return workout.Coords{}, fmt.Errorf("%w: invalid static coordinates %v", ErrNoPosition, s.Coords)
	}
	return s.Coords, nil
}

// DefaultIPEndpoint is an ip-api.com compatible lookup URL
const DefaultIPEndpoint = "http://ip-api.com/json/?fields=status,message,lat,lon"

// IP looks up an approximate position from the caller's public address
type IP struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
}

// NewIP creates an IP locator. A zero timeout means no deadline beyond ctx.
func NewIP(endpoint string, timeout time.Duration) *IP {
	if endpoint == "" {
		endpoint = DefaultIPEndpoint
	}
	return &IP{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		timeout:    timeout,
	}
}

type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPosition makes one lookup request; there is no retry
func (l *IP) CurrentPosition(ctx context.Context) (workout.Coords, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return workout.Coords{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return workout.Coords{}, fmt.Errorf("looking up position: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return workout.Coords{}, fmt.Errorf("position lookup error: %s - %s", resp.Status, string(body))
	}

	var r ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return workout.Coords{}, fmt.Errorf("decoding position: %w", err)
	}
	if r.Status != "success" {
		return workout.Coords{}, fmt.Errorf("%w: %s", ErrNoPosition, r.Message)
	}

	c := workout.Coords{Lat: r.Lat, Lng: r.Lon}
	if !c.Valid() {
		return workout.Coords{}, fmt.Errorf("%w: lookup returned %v", ErrNoPosition, c)
	}
	return c, nil
}
