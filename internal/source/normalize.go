package source

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobwatch-agent/internal/models"
)

// ErrMalformedRecord marks a listing missing its required fields.
// The orchestrator skips the record and keeps going.
var ErrMalformedRecord = errors.New("malformed record")

// Normalize converts a raw listing into a Posting. Required fields are
// id and position; everything else defaults to empty. Pure transform.
func Normalize(raw RawRecord) (models.Posting, error) {
	id := strings.TrimSpace(raw.ID.String())
	title := strings.TrimSpace(raw.Position)
	if id == "" {
		return models.Posting{}, fmt.Errorf("%w: missing id (position %q)", ErrMalformedRecord, raw.Position)
	}
	if title == "" {
		return models.Posting{}, fmt.Errorf("%w: missing position (id %s)", ErrMalformedRecord, id)
	}

	url := raw.URL
	if url == "" {
		url = "https://remoteok.com/remote-jobs/" + id
	}

	salary := raw.SalaryRange
	if salary == "" && raw.SalaryMin > 0 {
		salary = fmt.Sprintf("$%d+", raw.SalaryMin)
	}

	var postedAt time.Time
	if raw.Epoch > 0 {
		postedAt = time.Unix(raw.Epoch, 0)
	}

	return models.Posting{
		ID:          id,
		Title:       title,
		Company:     raw.Company,
		Location:    raw.Location,
		Description: raw.Description,
		URL:         url,
		Salary:      salary,
		Tags:        raw.Tags,
		PostedAt:    postedAt,
	}, nil
}
