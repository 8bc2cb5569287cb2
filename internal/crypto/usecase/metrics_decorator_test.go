package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
	"github.com/allisson/crypto-api/internal/crypto/usecase"
	"github.com/allisson/crypto-api/internal/crypto/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordPayloadSize(ctx context.Context, domain, operation string, size int) {
	m.Called(ctx, domain, operation, size)
}

func (m *mockBusinessMetrics) AddInFlight(ctx context.Context, domain, operation string, delta int64) {
	m.Called(ctx, domain, operation, delta)
}

func expectOutcome(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "crypto", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "crypto", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestCryptoUseCaseWithMetrics_Encrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("Encrypt_Success", func(t *testing.T) {
		// Arrange
		mockNext := &mocks.MockCryptoUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)
		envelope := &cryptoDomain.CipherEnvelope{
			Nonce:      make([]byte, cryptoDomain.NonceSize),
			Ciphertext: []byte("abc"),
			Tag:        make([]byte, cryptoDomain.TagSize),
		}

		mockNext.On("Encrypt", ctx, []byte("hello"), []byte(nil)).Return(envelope, nil).Once()
		mockMetrics.On("RecordPayloadSize", ctx, "crypto", "encrypt", 5).Return().Once()
		expectOutcome(mockMetrics, ctx, "encrypt", "success")

		// Act
		result, err := uc.Encrypt(ctx, []byte("hello"), nil)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, envelope, result)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Encrypt_Error", func(t *testing.T) {
		mockNext := &mocks.MockCryptoUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Encrypt", ctx, []byte("hello"), []byte(nil)).
			Return(nil, cryptoDomain.ErrPayloadTooLarge).
			Once()
		mockMetrics.On("RecordPayloadSize", ctx, "crypto", "encrypt", 5).Return().Once()
		expectOutcome(mockMetrics, ctx, "encrypt", "error")

		result, err := uc.Encrypt(ctx, []byte("hello"), nil)

		assert.ErrorIs(t, err, cryptoDomain.ErrPayloadTooLarge)
		assert.Nil(t, result)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCryptoUseCaseWithMetrics_Decrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("Decrypt_Success", func(t *testing.T) {
		mockNext := &mocks.MockCryptoUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Decrypt", ctx, "Y2lwaGVydGV4dA==", []byte("aad")).Return([]byte("hello"), nil).Once()
		mockMetrics.On("RecordPayloadSize", ctx, "crypto", "decrypt", 16).Return().Once()
		expectOutcome(mockMetrics, ctx, "decrypt", "success")

		plaintext, err := uc.Decrypt(ctx, "Y2lwaGVydGV4dA==", []byte("aad"))

		assert.NoError(t, err)
		assert.Equal(t, []byte("hello"), plaintext)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Decrypt_Error", func(t *testing.T) {
		mockNext := &mocks.MockCryptoUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Decrypt", ctx, "bad", []byte(nil)).Return(nil, cryptoDomain.ErrMalformedEnvelope).Once()
		mockMetrics.On("RecordPayloadSize", ctx, "crypto", "decrypt", 3).Return().Once()
		expectOutcome(mockMetrics, ctx, "decrypt", "error")

		plaintext, err := uc.Decrypt(ctx, "bad", nil)

		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedEnvelope)
		assert.Nil(t, plaintext)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCryptoUseCaseWithMetrics_Hash(t *testing.T) {
	ctx := context.Background()

	t.Run("Hash_Success", func(t *testing.T) {
		mockNext := &mocks.MockCryptoUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)
		hash := &cryptoDomain.PasswordHash{Algorithm: cryptoDomain.Argon2id}

		mockNext.On("Hash", ctx, []byte("secret123")).Return(hash, nil).Once()
		mockMetrics.On("AddInFlight", ctx, "crypto", "hash", int64(1)).Return().Once()
		mockMetrics.On("AddInFlight", ctx, "crypto", "hash", int64(-1)).Return().Once()
		expectOutcome(mockMetrics, ctx, "hash", "success")

		result, err := uc.Hash(ctx, []byte("secret123"))

		assert.NoError(t, err)
		assert.Equal(t, hash, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Hash_Error", func(t *testing.T) {
		mockNext := &mocks.MockCryptoUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Hash", ctx, []byte("secret123")).Return(nil, cryptoDomain.ErrOperationTimeout).Once()
		mockMetrics.On("AddInFlight", ctx, "crypto", "hash", int64(1)).Return().Once()
		mockMetrics.On("AddInFlight", ctx, "crypto", "hash", int64(-1)).Return().Once()
		expectOutcome(mockMetrics, ctx, "hash", "error")

		result, err := uc.Hash(ctx, []byte("secret123"))

		assert.ErrorIs(t, err, cryptoDomain.ErrOperationTimeout)
		assert.Nil(t, result)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCryptoUseCaseWithMetrics_Verify(t *testing.T) {
	ctx := context.Background()
	encoded := "$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaA"

	t.Run("Verify_Mismatch_IsSuccess", func(t *testing.T) {
		mockNext := &mocks.MockCryptoUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Verify", ctx, []byte("wrong"), encoded).Return(false, nil).Once()
		mockMetrics.On("AddInFlight", ctx, "crypto", "verify", mock.AnythingOfType("int64")).Return().Twice()
		expectOutcome(mockMetrics, ctx, "verify", "success")

		valid, err := uc.Verify(ctx, []byte("wrong"), encoded)

		assert.NoError(t, err)
		assert.False(t, valid)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Verify_Error", func(t *testing.T) {
		mockNext := &mocks.MockCryptoUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Verify", ctx, []byte("x"), "bad").Return(false, errors.New("boom")).Once()
		mockMetrics.On("AddInFlight", ctx, "crypto", "verify", mock.AnythingOfType("int64")).Return().Twice()
		expectOutcome(mockMetrics, ctx, "verify", "error")

		_, err := uc.Verify(ctx, []byte("x"), "bad")

		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCryptoUseCaseWithMetrics_Halted(t *testing.T) {
	mockNext := &mocks.MockCryptoUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewCryptoUseCaseWithMetrics(mockNext, mockMetrics)

	mockNext.On("Halted").Return(true).Once()

	assert.True(t, uc.Halted())
	mockMetrics.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
