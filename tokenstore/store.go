// Package tokenstore persists the access/refresh token pair outside the
// in-memory session, under two fixed keys. A session can only report
// authenticated while an access token is present here.
package tokenstore

import "sync"

// Fixed storage keys for the persisted token pair.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// Store defines the interface for durable token pair storage.
type Store interface {
	// AccessToken returns the stored access token, if any
	AccessToken() (string, bool)

	// RefreshToken returns the stored refresh token, if any
	RefreshToken() (string, bool)

	// SetPair stores both tokens, replacing any previous pair
	SetPair(accessToken, refreshToken string) error

	// Clear removes both tokens
	Clear() error
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the token pair in process memory. It backs tests and
// embedders that manage persistence themselves.
type MemoryStore struct {
	access  string
	refresh string
	lock    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) AccessToken() (string, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.access, m.access != ""
}

func (m *MemoryStore) RefreshToken() (string, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.refresh, m.refresh != ""
}

func (m *MemoryStore) SetPair(accessToken, refreshToken string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.access = accessToken
	m.refresh = refreshToken
	return nil
}

func (m *MemoryStore) Clear() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.access = ""
	m.refresh = ""
	return nil
}
