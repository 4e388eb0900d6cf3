package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/authkit/authkit/pkg/identity"
)

// MockStore is a testify mock of identity.Store for error-path tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Find(ctx context.Context, filter identity.Filter) (*identity.Identity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}

func (m *MockStore) Insert(ctx context.Context, email string, passwordHash []byte) (*identity.Identity, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, id uuid.UUID, changes identity.Changes) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

// failingGenerator simulates an exhausted entropy source.
type failingGenerator struct {
	err error
}

func (f failingGenerator) Generate() (string, error) {
	return "", f.err
}
