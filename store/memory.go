package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/m3rciful/themebot/theme"
)

type memoryStore struct {
	mu     sync.RWMutex
	drafts map[int][]byte
}

// NewMemory constructs an in-memory Store implementation for tests and
// development. Drafts are kept JSON-encoded so callers get the same
// copy-on-load semantics as the database-backed store.
func NewMemory() Store {
	return &memoryStore{drafts: make(map[int][]byte)}
}

func (m *memoryStore) Load(_ context.Context, messageID int) (*theme.Draft, error) {
	m.mu.RLock()
	data, ok := m.drafts[messageID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var d theme.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *memoryStore) Save(_ context.Context, messageID int, d *theme.Draft) error {
	if d == nil {
		m.mu.Lock()
		delete(m.drafts, messageID)
		m.mu.Unlock()
		return nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.drafts[messageID] = data
	m.mu.Unlock()
	return nil
}
