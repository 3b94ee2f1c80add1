// README: Session store contract plus the in-memory implementation backed by go-cache.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Keys held per session.
const (
	KeyCurrentItinerary  = "currentItinerary"
	KeyBookingResponse   = "bookingResponse"
	KeyTravelPreferences = "travelPreferences"
	KeyState             = "state"
)

var ErrNotFound = errors.New("session not found")

// Store keeps JSON documents per session and key. Implementations are safe for concurrent use.
type Store interface {
	// Get decodes the value into dst and reports whether it existed.
	Get(ctx context.Context, sessionID, key string, dst any) (bool, error)
	Set(ctx context.Context, sessionID, key string, value any) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	// Clear drops every key of the session.
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps sessions in process memory; values are stored encoded so callers never
// share memory with the store.
type MemoryStore struct {
	c   *cache.Cache
	ttl time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{c: cache.New(ttl, 10*time.Minute), ttl: ttl}
}

func memoryKey(sessionID, key string) string {
	return sessionID + "\x00" + key
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string, dst any) (bool, error) {
	v, ok := s.c.Get(memoryKey(sessionID, key))
	if !ok {
		return false, nil
	}
	b, _ := v.([]byte)
	if err := json.Unmarshal(b, dst); err != nil {
		return true, err
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.c.Set(memoryKey(sessionID, key), b, s.ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	for _, k := range keys {
		s.c.Delete(memoryKey(sessionID, k))
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	prefix := sessionID + "\x00"
	for k := range s.c.Items() {
		if strings.HasPrefix(k, prefix) {
			s.c.Delete(k)
		}
	}
	return nil
}
