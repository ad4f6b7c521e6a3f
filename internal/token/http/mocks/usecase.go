// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	tokenDomain "github.com/syter/media/internal/token/domain"
)

// MockUseCase is a mock implementation of the token UseCase for testing.
type MockUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockUseCase) Create(
	ctx context.Context,
	input *tokenDomain.CreateTokenInput,
) (*tokenDomain.CreateTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.CreateTokenOutput), args.Error(1)
}

// FindInfo mocks the FindInfo method.
func (m *MockUseCase) FindInfo(ctx context.Context, token string) (*tokenDomain.TokenInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.TokenInfo), args.Error(1)
}

// Deactivate mocks the Deactivate method.
func (m *MockUseCase) Deactivate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// GetRoles mocks the GetRoles method.
func (m *MockUseCase) GetRoles(ctx context.Context, token string) (tokenDomain.Permission, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(tokenDomain.Permission), args.Error(1)
}

// ChangePermissions mocks the ChangePermissions method.
func (m *MockUseCase) ChangePermissions(
	ctx context.Context,
	targetToken string,
	permissions tokenDomain.Permission,
	actingToken string,
) error {
	args := m.Called(ctx, targetToken, permissions, actingToken)
	return args.Error(0)
}
