package source

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	raw := RawRecord{
		ID:          json.Number("1063129"),
		Position:    "Automation Engineer",
		Company:     "Acme",
		Location:    "Worldwide",
		Description: "Build pipelines",
		URL:         "https://remoteok.com/remote-jobs/1063129",
		Tags:        []string{"python", "devops"},
		SalaryRange: "$60k-$90k",
		Epoch:       1756100000,
	}

	p, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "1063129", p.ID)
	assert.Equal(t, "Automation Engineer", p.Title)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "$60k-$90k", p.Salary)
	assert.Equal(t, time.Unix(1756100000, 0), p.PostedAt)
}

func TestNormalizeMissingRequiredFields(t *testing.T) {
	_, err := Normalize(RawRecord{Position: "Automation Engineer"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, err = Normalize(RawRecord{ID: json.Number("42")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, err = Normalize(RawRecord{ID: json.Number("42"), Position: "   "})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestNormalizeDefaults(t *testing.T) {
	p, err := Normalize(RawRecord{ID: json.Number("42"), Position: "Ops Coordinator"})
	require.NoError(t, err)

	//optional fields default to empty, never an error
	assert.Empty(t, p.Company)
	assert.Empty(t, p.Description)
	assert.Empty(t, p.Salary)
	assert.True(t, p.PostedAt.IsZero())

	//url derived from the id when the source omits it
	assert.Equal(t, "https://remoteok.com/remote-jobs/42", p.URL)
}

func TestNormalizeSalaryFromMin(t *testing.T) {
	p, err := Normalize(RawRecord{ID: json.Number("7"), Position: "Analyst", SalaryMin: 50000})
	require.NoError(t, err)
	assert.Equal(t, "$50000+", p.Salary)
}
