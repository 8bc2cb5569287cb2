package domain

// Algorithm identifies the derivation function recorded in an encoded PasswordHash.
type Algorithm string

const (
	// Argon2id is the hybrid Argon2 variant, mixing data-independent and data-dependent memory access.
	Argon2id Algorithm = "argon2id"

	// Argon2Version is the only Argon2 version produced and accepted (0x13).
	Argon2Version = 19
)

// AES-256-GCM sizes in bytes.
const (
	// KeySize is the length of a SecretKey (256 bits).
	KeySize = 32

	// NonceSize is the length of the per-message GCM nonce (96 bits).
	NonceSize = 12

	// TagSize is the length of the GCM authentication tag (128 bits).
	TagSize = 16

	// MinEnvelopeSize is the shortest decodable envelope: a nonce and a tag around an empty ciphertext.
	MinEnvelopeSize = NonceSize + TagSize
)
