package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"go-jobwatch-agent/internal/models"
)

// Matches reports whether a posting satisfies the keyword criteria:
// at least one include keyword occurs as a substring of the posting's
// combined text, and no exclude keyword does. Both sides are case
// folded before comparison.
//
// Matching is substring based, not whole word: "manager" excludes
// "Assistant Manager" but also "Management Analyst". Known
// over-exclusion, kept on purpose.
//
// With an empty include list nothing matches; config validation
// rejects that setup before a run starts.
func Matches(p models.Posting, include, exclude []string) bool {
	fold := cases.Fold()
	text := fold.String(p.SearchText())

	//must contain at least one include keyword
	if !containsAny(fold, text, include) {
		return false
	}

	//must not contain any exclude keyword
	if containsAny(fold, text, exclude) {
		return false
	}

	return true
}

func containsAny(fold cases.Caser, haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, fold.String(kw)) {
			return true
		}
	}
	return false
}
