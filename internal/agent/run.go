// Package agent runs one linear pass of the pipeline:
// fetch -> normalize -> filter -> dedupe -> cap -> notify -> persist.
package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobwatch-agent/internal/dedup"
	"go-jobwatch-agent/internal/filter"
	"go-jobwatch-agent/internal/models"
	"go-jobwatch-agent/internal/notify"
	"go-jobwatch-agent/internal/source"
)

// State is the terminal state of a run.
type State string

const (
	StateDone   State = "done"
	StateFailed State = "failed"
)

// Summary counts what happened during one run. Nothing is silently
// discarded: every skipped record and failed delivery lands in a
// counter.
type Summary struct {
	Fetched     int
	Malformed   int
	Fresh       int
	Matched     int
	AlreadySent int
	New         int
	Notified    int
	Failed      int
	State       State
}

// Agent wires the collaborators for a single pass. Zero concurrency:
// one fetch, one notify loop, one persist.
type Agent struct {
	Source   source.JobSource
	Store    dedup.Store
	Notifier notify.Notifier

	IncludeKeywords []string
	ExcludeKeywords []string
	MaxPerRun       int
	Freshness       time.Duration // 0 disables the freshness window

	Now func() time.Time // overridable for tests
}

// Run executes one pass. A non-nil error means the run failed at the
// run level (source unavailable or final persist failure); per-posting
// problems only show up in the summary. Notifications already sent are
// never undone, so on a persist failure the summary still reports them.
func (a *Agent) Run(ctx context.Context) (Summary, error) {
	var s Summary

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	// ── Fetch ──────────────────────────────────────────
	records, err := a.Source.Fetch(ctx)
	if err != nil {
		s.State = StateFailed
		return s, fmt.Errorf("fetch: %w", err)
	}
	s.Fetched = len(records)
	log.Printf("✅ Fetched %d listings from source", s.Fetched)

	// Unreadable state is survivable: re-sending a few duplicates is
	// cheaper than halting all notifications.
	if err := a.Store.Load(ctx); err != nil {
		log.Printf("⚠️ Could not load sent-job store: %v — starting with an empty set", err)
	} else {
		log.Printf("📋 Loaded %d previously sent jobs", a.Store.Len())
	}

	// ── Filter + dedupe, source order preserved ────────
	var survivors []models.Posting
	for _, rec := range records {
		p, err := source.Normalize(rec)
		if err != nil {
			s.Malformed++
			log.Printf("⚠️ Skipping listing: %v", err)
			continue
		}

		if !filter.IsFresh(p, a.Freshness, now()) {
			continue
		}
		s.Fresh++

		if !filter.Matches(p, a.IncludeKeywords, a.ExcludeKeywords) {
			continue
		}
		s.Matched++

		if a.Store.Contains(p.ID) {
			s.AlreadySent++
			continue
		}
		s.New++
		survivors = append(survivors, p)
	}
	log.Printf("🔍 %d matched, %d new after dedup", s.Matched, s.New)

	// ── Cap ────────────────────────────────────────────
	// Rate-limit safeguard on the notifier, not a relevance rule.
	// Deferred postings were never notified, so the next run picks
	// them up again.
	if a.MaxPerRun > 0 && len(survivors) > a.MaxPerRun {
		log.Printf("⚠️ Capping at %d notifications, deferring %d to the next run",
			a.MaxPerRun, len(survivors)-a.MaxPerRun)
		survivors = survivors[:a.MaxPerRun]
	}

	// ── Notify ─────────────────────────────────────────
	for _, p := range survivors {
		if err := a.Notifier.Send(ctx, p); err != nil {
			s.Failed++
			log.Printf("⚠️ Failed to send %q (%s): %v", p.Title, p.ID, err)
			continue
		}
		s.Notified++
		log.Printf("📤 Sent: %s @ %s", p.Title, p.Company)

		// Flush after every confirmed delivery so a crash loses at
		// most the in-flight notification.
		a.Store.Add(p.ID)
		if err := a.Store.Save(ctx); err != nil {
			log.Printf("⚠️ Incremental store save failed: %v", err)
		}
	}

	// ── Persist ────────────────────────────────────────
	if err := a.Store.Save(ctx); err != nil {
		s.State = StateFailed
		return s, fmt.Errorf("persist sent-job store: %w", err)
	}

	s.State = StateDone
	return s, nil
}

// String renders the run statistics block for logs and status messages.
func (s Summary) String() string {
	return fmt.Sprintf("fetched=%d malformed=%d fresh=%d matched=%d already_sent=%d new=%d notified=%d failed=%d",
		s.Fetched, s.Malformed, s.Fresh, s.Matched, s.AlreadySent, s.New, s.Notified, s.Failed)
}
