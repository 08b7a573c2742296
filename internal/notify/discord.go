package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-jobwatch-agent/internal/models"
)

const (
	embedColor  = 0x00FF9F
	maxTags     = 6
	sendTimeout = 10 * time.Second
)

// Discord delivers postings as rich embeds through a webhook URL.
type Discord struct {
	webhookURL string
	client     *http.Client
	now        func() time.Time
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: sendTimeout},
		now:        time.Now,
	}
}

func (d *Discord) Name() string { return "Discord" }

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Color       int          `json:"color"`
	Description string       `json:"description"`
	Fields      []embedField `json:"fields"`
	Footer      embedFooter  `json:"footer"`
	Timestamp   string       `json:"timestamp"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// Send posts one job embed to the webhook. Any non-2xx response is a
// delivery failure for that posting only.
func (d *Discord) Send(ctx context.Context, p models.Posting) error {
	company := p.Company
	if company == "" {
		company = "Unknown Company"
	}
	location := p.Location
	if location == "" {
		location = "Remote"
	}
	salary := p.Salary
	if salary == "" {
		salary = "Not specified"
	}

	e := embed{
		Title:       fmt.Sprintf("💼 %s", p.Title),
		URL:         p.URL,
		Color:       embedColor,
		Description: fmt.Sprintf("🕒 %s", d.ageText(p.PostedAt)),
		Fields: []embedField{
			{Name: "🏢 Company", Value: company, Inline: true},
			{Name: "📍 Location", Value: location, Inline: true},
			{Name: "💰 Salary", Value: salary, Inline: true},
		},
		Footer:    embedFooter{Text: fmt.Sprintf("RemoteOK • Job ID: %s", p.ID)},
		Timestamp: d.now().Format(time.RFC3339),
	}

	if tags := p.Tags; len(tags) > 0 {
		if len(tags) > maxTags {
			tags = tags[:maxTags]
		}
		e.Fields = append(e.Fields, embedField{
			Name:  "🏷️ Tags",
			Value: strings.Join(tags, ", "),
		})
	}

	body, err := json.Marshal(webhookPayload{Embeds: []embed{e}})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

func (d *Discord) ageText(postedAt time.Time) string {
	if postedAt.IsZero() {
		return "Recently posted"
	}
	age := d.now().Sub(postedAt)
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(age.Hours()))
}
