package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrEmptySessionID is returned by every store operation given "".
var ErrEmptySessionID = errors.New("session id is empty")

// Store is conversation memory keyed by session id. A session exists from
// its first Append and is never expired.
type Store interface {
	// Items returns the last limit items in insertion order. limit <= 0
	// returns everything. An unknown id yields an empty slice.
	Items(ctx context.Context, id string, limit int) ([]Item, error)
	Append(ctx context.Context, id string, items ...Item) error
	Clear(ctx context.Context, id string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverFile     = "file"
	DriverMemory   = "memory"
)

// DefaultDSN is the sqlite file used when no dsn is configured.
const DefaultDSN = "agents_sessions.sqlite3"

// Open builds the store for driver. An empty driver means sqlite.
func Open(ctx context.Context, driver, dsn string, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		driver = DriverSQLite
	}
	dsn = strings.TrimSpace(dsn)

	var (
		s   Store
		err error
	)
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = DefaultDSN
		}
		s, err = NewSQLiteStore(ctx, dsn)
	case DriverPostgres:
		s, err = NewGormStore(dsn)
	case DriverFile:
		if dsn == "" {
			return nil, fmt.Errorf("dsn is required for driver %q", driver)
		}
		s, err = NewFileStore(dsn)
	case DriverMemory:
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported session driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("session store opened", zap.String("driver", driver))
	return s, nil
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptySessionID
	}
	return nil
}

// stamp fills in missing timestamps so stored items are always dated.
func stamp(items []Item) []Item {
	now := time.Now().UTC()
	out := make([]Item, len(items))
	for i, it := range items {
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		out[i] = it
	}
	return out
}

func lastN(items []Item, limit int) []Item {
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Item
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Item)}
}

func (m *MemoryStore) Items(_ context.Context, id string, limit int) ([]Item, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lastN(m.sessions[id], limit), nil
}

func (m *MemoryStore) Append(_ context.Context, id string, items ...Item) error {
	if err := checkID(id); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = append(m.sessions[id], stamp(items)...)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
