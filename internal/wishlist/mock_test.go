package wishlist

import (
	stderrors "errors"

	"sjsage522/slickdealer/pkg/errors"
)

// MockStore implements Store in memory for testing
type MockStore struct {
	items   []string
	saved   bool
	saves   int
	loadErr error
	saveErr error
}

func (m *MockStore) Load() ([]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if !m.saved {
		return nil, errors.NewStoreAbsent("mock", "wishlist")
	}
	return append([]string(nil), m.items...), nil
}

func (m *MockStore) Save(items []string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = append([]string(nil), items...)
	m.saved = true
	m.saves++
	return nil
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) Name() string {
	return "mock"
}

var errDiskFull = stderrors.New("disk full")
