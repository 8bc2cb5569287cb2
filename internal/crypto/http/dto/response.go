package dto

import (
	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

// EncryptResponse contains the result of an encryption operation.
type EncryptResponse struct {
	Ciphertext string `json:"ciphertext"`
}

// MapEncryptResponse encodes an envelope for transport.
func MapEncryptResponse(envelope *cryptoDomain.CipherEnvelope) EncryptResponse {
	return EncryptResponse{Ciphertext: envelope.String()}
}

// DecryptResponse contains the result of a decryption operation.
// SECURITY: The Plaintext field contains sensitive data and should be transmitted over HTTPS.
type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// MapDecryptResponse converts decrypted bytes to a response.
func MapDecryptResponse(plaintext []byte) DecryptResponse {
	return DecryptResponse{Plaintext: string(plaintext)}
}

// HashResponse contains an encoded password hash.
type HashResponse struct {
	Hash string `json:"hash"`
}

// MapHashResponse encodes a password hash for transport.
func MapHashResponse(hash *cryptoDomain.PasswordHash) HashResponse {
	return HashResponse{Hash: hash.String()}
}

// VerifyResponse reports whether a password matched.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}
