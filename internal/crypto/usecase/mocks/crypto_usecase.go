package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

// MockCryptoUseCase is a mock implementation of CryptoUseCase for testing.
type MockCryptoUseCase struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of CryptoUseCase.
func (m *MockCryptoUseCase) Encrypt(
	ctx context.Context,
	plaintext, aad []byte,
) (*cryptoDomain.CipherEnvelope, error) {
	args := m.Called(ctx, plaintext, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.CipherEnvelope), args.Error(1)
}

// Decrypt mocks the Decrypt method of CryptoUseCase.
func (m *MockCryptoUseCase) Decrypt(ctx context.Context, ciphertext string, aad []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Hash mocks the Hash method of CryptoUseCase.
func (m *MockCryptoUseCase) Hash(ctx context.Context, password []byte) (*cryptoDomain.PasswordHash, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.PasswordHash), args.Error(1)
}

// Verify mocks the Verify method of CryptoUseCase.
func (m *MockCryptoUseCase) Verify(ctx context.Context, password []byte, encoded string) (bool, error) {
	args := m.Called(ctx, password, encoded)
	return args.Bool(0), args.Error(1)
}

// Halted mocks the Halted method of CryptoUseCase.
func (m *MockCryptoUseCase) Halted() bool {
	args := m.Called()
	return args.Bool(0)
}
