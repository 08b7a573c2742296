package filter

import (
	"time"

	"go-jobwatch-agent/internal/models"
)

// Tolerate slightly future-dated listings (timezone issues)
const maxClockSkew = 2 * 24 * time.Hour

// IsFresh reports whether a posting falls inside the freshness window.
// A window <= 0 disables the check entirely. A posting without a
// timestamp is treated as stale, so it is never re-notified run after
// run once the window is on.
func IsFresh(p models.Posting, window time.Duration, now time.Time) bool {
	if window <= 0 {
		return true
	}
	if p.PostedAt.IsZero() {
		return false
	}

	age := now.Sub(p.PostedAt)
	if age > window {
		return false
	}
	if age < -maxClockSkew {
		return false
	}
	return true
}
