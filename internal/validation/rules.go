// Package validation provides the jellydator rules shared by request DTOs.
package validation

import (
	"encoding/base64"
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/crypto-api/internal/errors"
)

// WrapValidationError tags a DTO validation failure as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank rejects strings that are empty once surrounding whitespace is trimmed.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace rejects leading or trailing whitespace. Encoded hashes and envelopes never carry any.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool { return s == strings.TrimSpace(s) },
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// Base64 accepts standard padded base64. Empty strings pass; combine with Required when needed.
var Base64 = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	},
	validation.NewError("validation_base64", "must be valid base64-encoded data"),
)

// Base64MaxDecodedLength caps the decoded size of a base64 string at n bytes. The size is computed
// from the encoded length, so oversized input is rejected without being decoded.
func Base64MaxDecodedLength(n int) validation.Rule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			return base64.StdEncoding.DecodedLen(len(s))-strings.Count(s, "=") <= n
		},
		validation.NewError("validation_base64_length", fmt.Sprintf("must decode to at most %d bytes", n)),
	)
}
