package filter

import (
	"testing"
	"time"

	"go-jobwatch-agent/internal/models"
)

func TestIsFresh(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	window := 3 * time.Hour

	tests := []struct {
		name     string
		postedAt time.Time
		expected bool
	}{
		{"Inside window", now.Add(-1 * time.Hour), true},
		{"Exactly at the boundary", now.Add(-3 * time.Hour), true},
		{"Outside window", now.Add(-4 * time.Hour), false},
		{"Slightly future dated", now.Add(6 * time.Hour), true},
		{"Far future dated", now.Add(3 * 24 * time.Hour), false},
		{"No timestamp", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Posting{PostedAt: tt.postedAt}
			if got := IsFresh(p, window, now); got != tt.expected {
				t.Errorf("IsFresh(%v) = %v, want %v", tt.postedAt, got, tt.expected)
			}
		})
	}
}

func TestIsFreshDisabled(t *testing.T) {
	now := time.Now()
	old := models.Posting{PostedAt: now.Add(-90 * 24 * time.Hour)}
	noDate := models.Posting{}

	if !IsFresh(old, 0, now) {
		t.Error("window 0 should disable the freshness check")
	}
	if !IsFresh(noDate, 0, now) {
		t.Error("window 0 should accept postings without a timestamp")
	}
}
