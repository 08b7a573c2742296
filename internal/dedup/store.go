// Package dedup tracks which postings have already been notified, so
// independent runs never alert twice for the same listing.
package dedup

import "context"

// Store is the persistent set of already-notified posting ids.
// Load reads the durable snapshot, Add only mutates memory, Save makes
// the current set durable. Ids are never removed by normal operation.
type Store interface {
	Load(ctx context.Context) error
	Contains(id string) bool
	Add(id string)
	Save(ctx context.Context) error
	Len() int
}
