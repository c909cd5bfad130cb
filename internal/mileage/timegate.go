package mileage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// gateLayout is the timestamp format of the time-zone API ("formatted").
const gateLayout = "2006-01-02 15:04:05"

// Gate compares the local clock against an authoritative external time
// source. The mileage index is only built when the two agree within
// Tolerance; otherwise the portal's "current" readings cannot be trusted.
type Gate struct {
	// URL of the time API. The response must be JSON with a "formatted"
	// field in "2006-01-02 15:04:05" local time.
	URL string

	// Tolerance is the maximum accepted |local - authoritative| drift.
	// Zero means the 60s default.
	Tolerance time.Duration

	// Client and Now are injectable for tests. Nil means http.DefaultClient
	// and time.Now.
	Client *http.Client
	Now    func() time.Time
}

// timeResponse is the subset of the API response the gate needs.
type timeResponse struct {
	Formatted string `json:"formatted"`
}

// Check fetches the authoritative time and reports whether the local clock
// is within tolerance. Any transport or parse failure returns an error;
// callers treat that the same as an inaccurate clock.
func (g *Gate) Check(ctx context.Context) (bool, error) {
	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	now := g.Now
	if now == nil {
		now = time.Now
	}
	tolerance := g.Tolerance
	if tolerance == 0 {
		tolerance = 60 * time.Second
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL, nil)
	if err != nil {
		return false, fmt.Errorf("timegate: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("timegate: fetch time: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("timegate: fetch time: %s", resp.Status)
	}

	var tr timeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return false, fmt.Errorf("timegate: decode response: %w", err)
	}
	authoritative, err := time.ParseInLocation(gateLayout, tr.Formatted, time.Local)
	if err != nil {
		return false, fmt.Errorf("timegate: parse %q: %w", tr.Formatted, err)
	}

	drift := now().Sub(authoritative)
	if drift < 0 {
		drift = -drift
	}
	return drift <= tolerance, nil
}
