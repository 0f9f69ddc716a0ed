package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

func entry(id string) domain.HistoryEntry {
	return domain.HistoryEntry{ID: id}
}

func ids(entries []domain.HistoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestRing_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewRing(0).Cap())
	assert.Equal(t, DefaultCapacity, NewRing(-4).Cap())
	assert.Equal(t, 3, NewRing(3).Cap())
}

func TestRing_NewestFirst(t *testing.T) {
	r := NewRing(3)
	assert.Empty(t, r.Entries())

	r.Push(entry("a"))
	r.Push(entry("b"))
	assert.Equal(t, []string{"b", "a"}, ids(r.Entries()))
	assert.Equal(t, 2, r.Len())
}

func TestRing_OverwritesOldest(t *testing.T) {
	r := NewRing(DefaultCapacity)
	for i := 1; i <= 25; i++ {
		r.Push(entry(fmt.Sprint(i)))
	}

	got := ids(r.Entries())
	assert.Len(t, got, DefaultCapacity)
	assert.Equal(t, "25", got[0])
	assert.Equal(t, "16", got[len(got)-1])
}

func TestRing_Reset(t *testing.T) {
	r := NewRing(2)
	r.Push(entry("a"))
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Entries())

	r.Push(entry("b"))
	assert.Equal(t, []string{"b"}, ids(r.Entries()))
}

func TestRing_Restore(t *testing.T) {
	r := NewRing(3)
	r.Restore([]domain.HistoryEntry{entry("e"), entry("d"), entry("c"), entry("b"), entry("a")})
	assert.Equal(t, []string{"e", "d", "c"}, ids(r.Entries()))

	r.Push(entry("f"))
	assert.Equal(t, []string{"f", "e", "d"}, ids(r.Entries()))
}

func TestRing_EntriesIsCopy(t *testing.T) {
	r := NewRing(2)
	r.Push(entry("a"))
	got := r.Entries()
	got[0].ID = "mutated"
	assert.Equal(t, "a", r.Entries()[0].ID)
}
