package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// RemoteOK rejects requests without a browser-ish user agent
	userAgent   = "Mozilla/5.0 (compatible; JobWatchBot/1.0)"
	httpTimeout = 15 * time.Second
)

// RemoteOK fetches the full listing feed from the RemoteOK public API.
type RemoteOK struct {
	url    string
	client *http.Client
}

func NewRemoteOK(url string) *RemoteOK {
	return &RemoteOK{
		url:    url,
		client: &http.Client{Timeout: httpTimeout},
	}
}

// Fetch retrieves all currently listed postings. The first array
// element is API metadata and is dropped; individual listings that
// fail to decode are skipped with a warning, they do not abort the
// fetch.
func (r *RemoteOK) Fetch(ctx context.Context) ([]RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http GET: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrUnavailable, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty response array", ErrUnavailable)
	}

	//skip items[0]: API metadata, not a listing
	records := make([]RawRecord, 0, len(items)-1)
	for _, item := range items[1:] {
		var rec RawRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			log.Printf("⚠️ Skipping undecodable listing: %v", err)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}
