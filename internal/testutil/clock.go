// Package testutil provides shared test doubles.
package testutil

import "time"

// FixedClock always reports the same instant, pinning the timestamps that
// generation embeds in banners and export headers.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

// GenerationTime is the instant used across golden-file tests.
var GenerationTime = time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
