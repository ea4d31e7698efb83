// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
// MockStore stands in for store.Store in setup step tests: it records
// admin creation and app updates and returns configurable errors. It is
// thread-safe because step commands may run off the event loop.
//
// Example usage:
//
//	func TestMyStep(t *testing.T) {
//	    s := testfixtures.NewMockStore()
//	    s.CreateAdminError = store.ErrUsernameTaken
//
//	    // Use the mock in your test...
//	    require.Equal(t, 1, s.CreateAdminCalls)
//	}
package testfixtures

import (
	"context"
	"sync"

	"github.com/mark3labs/onboardr/internal/apps"
	"github.com/mark3labs/onboardr/internal/store"
)

// MockStore is a mock implementation of the setup store for testing.
type MockStore struct {
	mu sync.RWMutex

	// Admins created so far
	Admins []store.AdminInput
	// Error to return from CreateAdmin
	CreateAdminError error

	// Enabled app set
	Apps map[string]bool
	// Error to return from SetApps
	SetAppsError error
	// Error to return from EnabledApps
	EnabledAppsError error

	// Counters for verification
	CreateAdminCalls int
	SetAppsCalls     int
}

// NewMockStore creates a new MockStore with no admins and no apps.
func NewMockStore() *MockStore {
	return &MockStore{
		Apps: make(map[string]bool),
	}
}

// CreateAdmin validates the input like the real store and records it.
func (m *MockStore) CreateAdmin(ctx context.Context, in store.AdminInput) (*store.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateAdminCalls++
	if m.CreateAdminError != nil {
		return nil, m.CreateAdminError
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	m.Admins = append(m.Admins, in)
	return &store.Account{
		Username: in.Username,
		FullName: in.FullName,
		Email:    in.Email,
		Role:     store.RoleAdmin,
	}, nil
}

// SetApps replaces the enabled set.
func (m *MockStore) SetApps(ctx context.Context, enabled []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetAppsCalls++
	if m.SetAppsError != nil {
		return m.SetAppsError
	}

	m.Apps = make(map[string]bool, len(enabled))
	for _, s := range enabled {
		m.Apps[s] = true
	}
	return nil
}

// EnabledApps returns the enabled slugs in lexical order.
func (m *MockStore) EnabledApps(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.EnabledAppsError != nil {
		return nil, m.EnabledAppsError
	}
	return apps.SortedSlugs(m.Apps), nil
}

// AdminCount returns how many admins were created.
func (m *MockStore) AdminCount(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.Admins), nil
}
