// Package http provides the HTTP handlers for the cryptographic engine.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
	"github.com/allisson/crypto-api/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/crypto-api/internal/crypto/usecase"
	"github.com/allisson/crypto-api/internal/httputil"
	customValidation "github.com/allisson/crypto-api/internal/validation"
)

// CryptoHandler handles HTTP requests for encryption, decryption, hashing and verification.
type CryptoHandler struct {
	cryptoUseCase cryptoUseCase.CryptoUseCase
	logger        *slog.Logger
}

// NewCryptoHandler creates a new crypto handler with required dependencies.
func NewCryptoHandler(useCase cryptoUseCase.CryptoUseCase, logger *slog.Logger) *CryptoHandler {
	return &CryptoHandler{
		cryptoUseCase: useCase,
		logger:        logger,
	}
}

// EncryptHandler encrypts a text payload.
// POST /security/encrypt - Returns 200 OK with the base64 envelope.
func (h *CryptoHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext := []byte(*req.Payload)
	defer cryptoDomain.Zero(plaintext)

	envelope, err := h.cryptoUseCase.Encrypt(c.Request.Context(), plaintext, req.AAD())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncryptResponse(envelope))
}

// DecryptHandler decrypts a base64 envelope.
// POST /security/decrypt - Returns 200 OK with the plaintext. SECURITY: Plaintext is zeroed after response.
func (h *CryptoHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := h.cryptoUseCase.Decrypt(c.Request.Context(), req.Ciphertext, req.AAD())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// SECURITY: Zero plaintext after mapping to response
	defer cryptoDomain.Zero(plaintext)

	c.JSON(http.StatusOK, dto.MapDecryptResponse(plaintext))
}

// HashHandler derives an Argon2id hash of a password.
// POST /security/hash - Returns 200 OK with the encoded hash.
func (h *CryptoHandler) HashHandler(c *gin.Context) {
	var req dto.HashRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	password := []byte(req.Payload)
	defer cryptoDomain.Zero(password)

	hash, err := h.cryptoUseCase.Hash(c.Request.Context(), password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHashResponse(hash))
}

// VerifyHandler checks a password against an encoded hash.
// POST /security/verify - Returns 200 OK with {"valid": bool}; a mismatch is not an error.
func (h *CryptoHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	password := []byte(*req.Payload)
	defer cryptoDomain.Zero(password)

	valid, err := h.cryptoUseCase.Verify(c.Request.Context(), password, req.Hash)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{Valid: valid})
}
