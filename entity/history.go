package entity

import "time"

type HistoryEntry struct {
	Path      *string
	Size      *int64
	IsDeleted *bool
	IsDir     *bool
	Modified  *time.Time
	Revision  *int64
}

// History is one page of the delta feed of a sandbox.
type History struct {
	Reset   *bool
	Cursor  *int64
	HasMore *bool
	Entries []*HistoryEntry
}

// Next returns the cursor to request the following page with, ok is false when the
// feed is complete.
func (h *History) Next() (int64, bool) {
	if h.HasMore == nil || !*h.HasMore || h.Cursor == nil {
		return 0, false
	}
	return *h.Cursor, true
}

// Discontinuous reports that the server flagged the feed as broken (reset=false),
// every entry must be dropped and the feed fetched again from scratch.
func (h *History) Discontinuous() bool {
	return h.Reset != nil && !*h.Reset
}
