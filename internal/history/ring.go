package history

import "github.com/sipcalc/sip-calculator/internal/domain"

// DefaultCapacity is the number of entries kept when no capacity is configured.
const DefaultCapacity = 10

// Ring is a fixed-capacity buffer of history entries. Once full, each push
// overwrites the oldest entry. Ring is not safe for concurrent use.
type Ring struct {
	buf  []domain.HistoryEntry
	next int
	size int
}

// NewRing creates a ring holding at most capacity entries. A non-positive
// capacity selects DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{buf: make([]domain.HistoryEntry, capacity)}
}

// Cap returns the maximum number of entries.
func (r *Ring) Cap() int { return len(r.buf) }

// Len returns the number of entries currently held.
func (r *Ring) Len() int { return r.size }

// Push adds e as the newest entry.
func (r *Ring) Push(e domain.HistoryEntry) {
	r.buf[r.next] = e
	r.next = (r.next + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}

// Entries returns a copy of the held entries, newest first.
func (r *Ring) Entries() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, r.size)
	for i := 1; i <= r.size; i++ {
		idx := (r.next - i + len(r.buf)) % len(r.buf)
		out = append(out, r.buf[idx])
	}
	return out
}

// Reset drops every entry.
func (r *Ring) Reset() {
	clear(r.buf)
	r.next = 0
	r.size = 0
}

// Restore replaces the contents with entries given newest first, keeping
// only the newest Cap() of them.
func (r *Ring) Restore(entries []domain.HistoryEntry) {
	r.Reset()
	if len(entries) > len(r.buf) {
		entries = entries[:len(r.buf)]
	}
	for i := len(entries) - 1; i >= 0; i-- {
		r.Push(entries[i])
	}
}
