package rating

import "karuta-rating/internal/domain"

// HistoryLog is the append-only audit trail of applied updates, in the
// order they were applied.
type HistoryLog struct {
	entries []domain.HistoryEntry
}

func NewHistoryLog() *HistoryLog {
	return &HistoryLog{}
}

func (h *HistoryLog) Append(e domain.HistoryEntry) {
	h.entries = append(h.entries, e)
}

// Entries returns a copy of the log; entries are never mutated after
// creation.
func (h *HistoryLog) Entries() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *HistoryLog) Len() int {
	return len(h.entries)
}
