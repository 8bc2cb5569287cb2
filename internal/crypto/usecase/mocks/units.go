// Package mocks provides testify mocks for the engine units and the crypto use case.
package mocks

import (
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

// MockCipher is a mock implementation of service.Cipher for testing.
type MockCipher struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of Cipher.
func (m *MockCipher) Encrypt(plaintext, aad []byte) (cryptoDomain.CipherEnvelope, error) {
	args := m.Called(plaintext, aad)
	return args.Get(0).(cryptoDomain.CipherEnvelope), args.Error(1)
}

// Decrypt mocks the Decrypt method of Cipher.
func (m *MockCipher) Decrypt(envelope cryptoDomain.CipherEnvelope, aad []byte) ([]byte, error) {
	args := m.Called(envelope, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPasswordHasher is a mock implementation of service.PasswordHasher for testing.
type MockPasswordHasher struct {
	mock.Mock
}

// Hash mocks the Hash method of PasswordHasher.
func (m *MockPasswordHasher) Hash(
	password []byte,
	params *cryptoDomain.HashParams,
) (cryptoDomain.PasswordHash, error) {
	args := m.Called(password, params)
	return args.Get(0).(cryptoDomain.PasswordHash), args.Error(1)
}

// Verify mocks the Verify method of PasswordHasher.
func (m *MockPasswordHasher) Verify(password []byte, stored cryptoDomain.PasswordHash) (bool, error) {
	args := m.Called(password, stored)
	return args.Bool(0), args.Error(1)
}
