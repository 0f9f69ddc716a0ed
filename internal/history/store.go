package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// ErrUnknownBackend is returned by OpenStore for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown history backend")

// Store persists the history list. Entries are always passed newest first and
// Save replaces whatever was stored before.
type Store interface {
	Load(ctx context.Context) ([]domain.HistoryEntry, error)
	Save(ctx context.Context, entries []domain.HistoryEntry) error
	Close() error
}

// Backend names accepted by OpenStore.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a Store.
type Options struct {
	Backend   string
	Path      string // file and sqlite backends
	RedisAddr string
	RedisKey  string
}

// OpenStore opens the store named by opts.Backend.
func OpenStore(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(opts.Path)
	case BackendSQLite:
		return NewSQLiteStore(opts.Path)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisAddr, opts.RedisKey)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// MemoryStore keeps the list in process memory only.
type MemoryStore struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(_ context.Context) ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.HistoryEntry(nil), m.entries...), nil
}

func (m *MemoryStore) Save(_ context.Context, entries []domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries[:0:0], entries...)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
