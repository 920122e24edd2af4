package xrpl

import (
	"encoding/hex"
	"regexp"

	"github.com/pkg/errors"
)

var (
	hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

	ErrInvalidHex = errors.New("credential type is not an even-length hex string")
)

// IsHex reports whether s consists of one or more hex digits. Length parity is not checked.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ToWireForm normalizes a credential type label into its hex wire form. A label made only of hex digits
// is taken as already encoded and returned unchanged, so a literal like "face" is never re-encoded.
// Everything else is hex-encoded from its UTF-8 bytes in lowercase.
func ToWireForm(label string) string {
	if IsHex(label) {
		return label
	}
	return hex.EncodeToString([]byte(label))
}

// EncodeCredentialType resolves the hex ambiguity of ToWireForm when the caller states the encoding
// explicitly. A nil flag falls back to ToWireForm. When alreadyEncoded is true the label must be valid,
// even-length hex; when false the label is always encoded, even if it looks like hex.
func EncodeCredentialType(label string, alreadyEncoded *bool) (string, error) {
	if alreadyEncoded == nil {
		return ToWireForm(label), nil
	}
	if *alreadyEncoded {
		if !IsHex(label) || len(label)%2 != 0 {
			return "", ErrInvalidHex
		}
		return label, nil
	}
	return hex.EncodeToString([]byte(label)), nil
}
