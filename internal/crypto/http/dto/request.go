// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/crypto-api/internal/validation"
)

// MaxAssociatedDataSize caps the decoded associated data accepted with a request.
const MaxAssociatedDataSize = 64 * 1024

// EncryptRequest contains the parameters for encrypting a text payload.
type EncryptRequest struct {
	Payload        *string `json:"payload"`                   // UTF-8 text; may be empty but must be present
	AssociatedData string  `json:"associated_data,omitempty"` // Base64-encoded, optional
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload, validation.NotNil),
		validation.Field(&r.AssociatedData,
			customValidation.Base64,
			customValidation.Base64MaxDecodedLength(MaxAssociatedDataSize),
		),
	)
}

// AAD returns the decoded associated data, or nil when none was sent. Call after Validate.
func (r *EncryptRequest) AAD() []byte {
	return decodeAssociatedData(r.AssociatedData)
}

// DecryptRequest contains the parameters for decrypting a text envelope.
type DecryptRequest struct {
	Ciphertext     string `json:"ciphertext"`                // Base64 of nonce || ciphertext || tag
	AssociatedData string `json:"associated_data,omitempty"` // Base64-encoded, optional
}

// Validate checks if the decrypt request is valid. The ciphertext itself is only checked for
// presence; its format is judged by the engine so every bad envelope gets the same answer.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.AssociatedData,
			customValidation.Base64,
			customValidation.Base64MaxDecodedLength(MaxAssociatedDataSize),
		),
	)
}

// AAD returns the decoded associated data, or nil when none was sent. Call after Validate.
func (r *DecryptRequest) AAD() []byte {
	return decodeAssociatedData(r.AssociatedData)
}

// HashRequest contains the password to hash.
type HashRequest struct {
	Payload string `json:"payload"`
}

// Validate checks if the hash request is valid.
func (r *HashRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload, validation.Required),
	)
}

// VerifyRequest contains a password and the encoded hash to check it against.
type VerifyRequest struct {
	Payload *string `json:"payload"`
	Hash    string  `json:"hash"` // $argon2id$v=19$m=...,t=...,p=...$salt$hash
}

// Validate checks if the verify request is valid.
func (r *VerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload, validation.NotNil),
		validation.Field(&r.Hash,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
	)
}

func decodeAssociatedData(s string) []byte {
	if s == "" {
		return nil
	}
	aad, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	return aad
}
