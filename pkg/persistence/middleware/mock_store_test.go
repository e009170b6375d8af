package middleware_test

import (
	"context"
	"errors"
	"slices"

	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/aretw0/seedbed/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data   map[string][]byte
	failOn string
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string][]byte),
	}
}

var errMockFailure = errors.New("mock failure")

func (s *MockStore) Put(ctx context.Context, key string, data []byte) error {
	if key == s.failOn {
		return errMockFailure
	}
	s.data[key] = data
	return nil
}

func (s *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == s.failOn {
		return nil, errMockFailure
	}
	data, ok := s.data[key]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	return data, nil
}

func (s *MockStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

var _ ports.ArtifactStore = (*MockStore)(nil)
