package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// PasswordHash is the self-describing result of hashing a password.
//
// The algorithm, version and cost parameters travel with the salt and derived bytes, so a stored
// hash can be verified without any external configuration even after the defaults change.
//
// Its textual form follows the Argon2 PHC convention:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
//
// where salt and hash use unpadded standard base64.
type PasswordHash struct {
	Algorithm Algorithm
	Version   int
	Params    HashParams
	Salt      []byte
	Hash      []byte
}

// ParsePasswordHash decodes the textual form produced by String.
//
// Returns ErrMalformedHash when the string has the wrong number of segments, names an algorithm
// other than argon2id, carries an unsupported version, has missing or out-of-range parameters, or
// contains invalid or truncated base64 salt and hash fields.
func ParsePasswordHash(encoded string) (PasswordHash, error) {
	// Leading "$" yields an empty first segment: "", alg, version, params, salt, hash.
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return PasswordHash{}, fmt.Errorf("%w: expected 5 '$'-separated fields", ErrMalformedHash)
	}

	if Algorithm(parts[1]) != Argon2id {
		return PasswordHash{}, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	version, err := parseVersion(parts[2])
	if err != nil {
		return PasswordHash{}, err
	}

	params, err := parseParams(parts[3])
	if err != nil {
		return PasswordHash{}, err
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return PasswordHash{}, fmt.Errorf("%w: invalid salt encoding", ErrMalformedHash)
	}

	hash, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil {
		return PasswordHash{}, fmt.Errorf("%w: invalid hash encoding", ErrMalformedHash)
	}

	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(hash))
	if err := params.Validate(); err != nil {
		return PasswordHash{}, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	return PasswordHash{
		Algorithm: Argon2id,
		Version:   version,
		Params:    params,
		Salt:      salt,
		Hash:      hash,
	}, nil
}

// String encodes the hash in PHC form.
func (h PasswordHash) String() string {
	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		h.Algorithm,
		h.Version,
		h.Params.Memory,
		h.Params.Iterations,
		h.Params.Parallelism,
		base64.RawStdEncoding.EncodeToString(h.Salt),
		base64.RawStdEncoding.EncodeToString(h.Hash),
	)
}

func parseVersion(field string) (int, error) {
	raw, ok := strings.CutPrefix(field, "v=")
	if !ok {
		return 0, fmt.Errorf("%w: missing version", ErrMalformedHash)
	}

	version, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid version", ErrMalformedHash)
	}
	if version != Argon2Version {
		return 0, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}
	return version, nil
}

// parseParams reads "m=<uint32>,t=<uint32>,p=<uint8>" in that exact order.
func parseParams(field string) (HashParams, error) {
	pairs := strings.Split(field, ",")
	if len(pairs) != 3 {
		return HashParams{}, fmt.Errorf("%w: expected m, t and p parameters", ErrMalformedHash)
	}

	values := make([]uint64, len(pairs))
	for i, name := range []string{"m", "t", "p"} {
		raw, ok := strings.CutPrefix(pairs[i], name+"=")
		if !ok {
			return HashParams{}, fmt.Errorf("%w: missing parameter %q", ErrMalformedHash, name)
		}

		bitSize := 32
		if name == "p" {
			bitSize = 8
		}
		v, err := strconv.ParseUint(raw, 10, bitSize)
		if err != nil {
			return HashParams{}, fmt.Errorf("%w: invalid parameter %q", ErrMalformedHash, name)
		}
		values[i] = v
	}

	return HashParams{
		Memory:      uint32(values[0]),
		Iterations:  uint32(values[1]),
		Parallelism: uint8(values[2]),
	}, nil
}
