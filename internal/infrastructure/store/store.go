// Package store persists JSON documents under string keys on top of a
// pluggable Backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Keys of the persisted layout.
const (
	KeyUsers          = "users"
	KeyBusinesses     = "businesses"
	KeyMeetings       = "meetings"
	KeyAchievements   = "achievements"
	KeyCurrentSession = "currentSession"
	KeyAdminMode      = "adminMode"
	KeyPasswordResets = "passwordResets"
)

// ErrKeyNotFound is returned by a Backend when nothing is stored under a key.
var ErrKeyNotFound = errors.New("store: key not found")

// Backend is a durable byte store. Save must not return before the value
// is durable.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
}

// Store encodes values as JSON documents. It performs no locking across
// keys.
type Store struct {
	backend Backend
	ids     *IDGenerator
}

// New wraps backend with a clock-based id generator.
func New(backend Backend) *Store {
	return &Store{backend: backend, ids: NewIDGenerator(time.Now)}
}

// NewWithIDs is New with an explicit id generator.
func NewWithIDs(backend Backend, ids *IDGenerator) *Store {
	return &Store{backend: backend, ids: ids}
}

// Ping checks the backend.
func (s *Store) Ping(ctx context.Context) error { return s.backend.Ping(ctx) }

// NextID returns a fresh identifier.
func (s *Store) NextID() int64 { return s.ids.Next() }

// ReadScalar decodes the value under key into out. It reports false when
// the key is absent or holds JSON null.
func (s *Store) ReadScalar(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.load(ctx, key)
	if err != nil || raw == nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Write replaces the value under key.
func (s *Store) Write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.backend.Load(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if string(raw) == "null" || len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// Read decodes the sequence under key. An absent key reads as empty.
func Read[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	items := []T{}
	if _, err := s.ReadScalar(ctx, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Identified is a pointer to a record that accepts an assigned id.
type Identified[T any] interface {
	*T
	SetID(id int64)
}

// Append assigns item a fresh id, appends it to the sequence under key and
// returns the updated sequence.
func Append[T any, PT Identified[T]](ctx context.Context, s *Store, key string, item PT) ([]T, error) {
	items, err := Read[T](ctx, s, key)
	if err != nil {
		return nil, err
	}
	item.SetID(s.NextID())
	items = append(items, *item)
	if err := s.Write(ctx, key, items); err != nil {
		return nil, err
	}
	return items, nil
}

// IDGenerator hands out Unix-millisecond ids that strictly increase within
// the process.
type IDGenerator struct {
	mu    sync.Mutex
	clock func() time.Time
	last  int64
}

func NewIDGenerator(clock func() time.Time) *IDGenerator {
	return &IDGenerator{clock: clock}
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.clock().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
