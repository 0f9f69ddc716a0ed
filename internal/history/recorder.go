package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sipcalc/sip-calculator/internal/calculation"
	"github.com/sipcalc/sip-calculator/internal/domain"
	money "github.com/sipcalc/sip-calculator/pkg/decimal"
)

// Recorder keeps the most recent projections in a Ring and mirrors the list to
// a Store after every change. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	ring   *Ring
	store  Store
	logger calculation.Logger

	now   func() time.Time
	newID func() string
}

// NewRecorder creates a recorder of the given capacity and restores any
// entries already persisted in store.
func NewRecorder(ctx context.Context, store Store, capacity int) (*Recorder, error) {
	if store == nil {
		store = NewMemoryStore()
	}
	r := &Recorder{
		ring:   NewRing(capacity),
		store:  store,
		logger: calculation.NopLogger{},
		now:    time.Now,
		newID:  uuid.NewString,
	}
	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	r.ring.Restore(entries)
	return r, nil
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (r *Recorder) SetLogger(l calculation.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = calculation.OrNop(l)
}

// Record appends an entry for result and persists the list. The entry is kept
// in memory even when persisting fails.
func (r *Recorder) Record(ctx context.Context, result *domain.ProjectionResult) (domain.HistoryEntry, error) {
	if result == nil {
		return domain.HistoryEntry{}, fmt.Errorf("record history: nil result")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := domain.HistoryEntry{
		ID:            r.newID(),
		Timestamp:     r.now().UTC(),
		Label:         EntryLabel(result),
		TotalInvested: result.TotalInvested,
		TotalValue:    result.TotalValue,
	}
	r.ring.Push(entry)
	if err := r.store.Save(ctx, r.ring.Entries()); err != nil {
		r.logger.Warnf("history entry %s kept in memory only: %v", entry.ID, err)
		return entry, fmt.Errorf("persist history: %w", err)
	}
	r.logger.Debugf("history entry %s recorded (%d/%d)", entry.ID, r.ring.Len(), r.ring.Cap())
	return entry, nil
}

// List returns the recorded entries, newest first.
func (r *Recorder) List() []domain.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ring.Entries()
}

// Clear drops every entry and persists the empty list.
func (r *Recorder) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ring.Reset()
	if err := r.store.Save(ctx, nil); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	r.logger.Infof("history cleared")
	return nil
}

// Close closes the underlying store.
func (r *Recorder) Close() error {
	return r.store.Close()
}

// EntryLabel renders the one-line summary shown in the history list.
func EntryLabel(result *domain.ProjectionResult) string {
	return fmt.Sprintf("Inv: %s | Val: %s",
		money.NewMoneyFromDecimal(result.TotalInvested).Units(),
		money.NewMoneyFromDecimal(result.TotalValue).Units())
}
