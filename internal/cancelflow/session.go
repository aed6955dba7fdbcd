package cancelflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

type State string

const (
	StateIdle              State = "idle"
	StateAwaitingSelection State = "awaiting_selection"
)

// Session is the selection state of one conversation. Candidates is the
// snapshot shown to the user; the agenda may change before the reply.
type Session struct {
	State       State                `json:"state"`
	PatientName string               `json:"patient_name"`
	Candidates  []models.Appointment `json:"candidates"`
}

// SessionStore keeps sessions between turns. Load returns nil, nil when the
// session does not exist or expired; an expired session counts as abandoned.
type SessionStore interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session) error
	Clear(ctx context.Context, id string) error
}

// -----------------------------------------------------
// Memory
// -----------------------------------------------------

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

type MemorySessionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]memoryEntry
}

var _ SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore(ttl time.Duration, now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{
		ttl:   ttl,
		now:   now,
		items: map[string]memoryEntry{},
	}
}

func (m *MemorySessionStore) Load(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	if m.ttl > 0 && !m.now().Before(e.expiresAt) {
		delete(m.items, id)
		return nil, nil
	}
	s := e.session
	s.Candidates = append([]models.Appointment(nil), e.session.Candidates...)
	return &s, nil
}

func (m *MemorySessionStore) Save(ctx context.Context, id string, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	cp.Candidates = append([]models.Appointment(nil), s.Candidates...)
	m.items[id] = memoryEntry{session: cp, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemorySessionStore) Clear(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, id)
	return nil
}

// -----------------------------------------------------
// Redis
// -----------------------------------------------------

// RedisSessionStore shares sessions between API instances. Keys expire
// after ttl.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ SessionStore = (*RedisSessionStore)(nil)

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
		prefix: "pharma:cancelflow:",
	}
}

func (r *RedisSessionStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisSessionStore) Load(ctx context.Context, id string) (*Session, error) {
	b, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, id string, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(id), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Clear(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
