package assets_test

import (
	"context"
	"sync"

	assets "github.com/goliatone/go-assets"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/mock"
)

type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByUsername(ctx context.Context, username string) (*assets.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*assets.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) LoadAll(ctx context.Context) ([]assets.Asset, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]assets.Asset); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssetStore) UpdateStatus(ctx context.Context, id string, status assets.Status) (assets.UpdateResult, error) {
	args := m.Called(ctx, id, status)
	if result, ok := args.Get(0).(assets.UpdateResult); ok {
		return result, args.Error(1)
	}
	return assets.UpdateResult{}, args.Error(1)
}

// memStore is an in-memory AssetStore honoring the whole-table
// read-modify-write contract, used where tests exercise sequencing
// rather than store internals.
type memStore struct {
	mu      sync.Mutex
	records []assets.Asset
}

func newMemStore(records ...assets.Asset) *memStore {
	return &memStore{records: records}
}

func (s *memStore) LoadAll(ctx context.Context) ([]assets.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]assets.Asset, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *memStore) UpdateStatus(ctx context.Context, id string, status assets.Status) (assets.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated *assets.Asset
	for i := range s.records {
		if assets.SameID(s.records[i].ID, id) {
			s.records[i].Status = status
			if updated == nil {
				clone := s.records[i]
				updated = &clone
			}
		}
	}

	if updated == nil {
		return assets.UpdateResult{Outcome: assets.UpdateNotFound}, nil
	}

	return assets.UpdateResult{Outcome: assets.UpdateApplied, Asset: updated}, nil
}

// memCredentials is a map-backed CredentialStore.
type memCredentials map[string]assets.User

func (m memCredentials) FindByUsername(ctx context.Context, username string) (*assets.User, error) {
	if user, ok := m[username]; ok {
		return &user, nil
	}
	return nil, goerrors.New("user not found", goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound)
}

// staticVerifier accepts a single secret for every hash.
type staticVerifier struct {
	secret string
}

func (v staticVerifier) ComparePasswordAndHash(password, hash string) error {
	if password == v.secret {
		return nil
	}
	return assets.ErrInvalidCredentials
}
