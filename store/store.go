// Package store persists per-conversation theme drafts keyed by the message
// id they are rendered on.
package store

import (
	"context"

	"github.com/m3rciful/themebot/theme"
)

// Store is the draft persistence contract. A conversation owns its draft
// exclusively; callers load at the start of a dispatch, mutate a local copy,
// and save once. Load returns (nil, nil) when no draft exists. Saving a nil
// draft clears the entry.
//
// Load-then-save is not atomic: overlapping dispatches for the same message
// id race by design (no per-conversation locking).
type Store interface {
	Load(ctx context.Context, messageID int) (*theme.Draft, error)
	Save(ctx context.Context, messageID int, d *theme.Draft) error
}
