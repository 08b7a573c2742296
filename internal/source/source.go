// Define the job source interface and the raw record shape.
// Keep the orchestrator decoupled from RemoteOK specifics.

package source

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUnavailable wraps every fetch-level failure (network, bad status,
// unparsable response). A run aborts before any side effect when the
// source is unavailable.
var ErrUnavailable = errors.New("job source unavailable")

// RawRecord mirrors one listing in the RemoteOK API response.
// The first element of the response array is API metadata, not a
// listing; the fetcher skips it.
type RawRecord struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	Tags        []string    `json:"tags"`
	SalaryRange string      `json:"salary_range"`
	SalaryMin   int         `json:"salary_min"`
	Epoch       int64       `json:"epoch"`
}

// JobSource is one blocking call per run. No pagination state is
// retained by the caller.
type JobSource interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
}
