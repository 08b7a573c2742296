package models

import (
	"strings"
	"time"
)

// Posting is one normalized job listing. It lives for a single run;
// only the ID survives across runs, inside the sent-job store.
type Posting struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
	Salary      string
	Tags        []string
	PostedAt    time.Time
}

// SearchText is the combined corpus the keyword filter scans:
// title, description, tags and company joined with spaces.
// Case folding is the filter's job, not ours.
func (p Posting) SearchText() string {
	parts := []string{p.Title, p.Description}
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Company)
	return strings.Join(parts, " ")
}
