// Package xrpl holds the ledger-specific primitives of the credential service: account address validation,
// credential type wire encoding, and the credential transaction shapes.
package xrpl

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/mr-tron/base58"
)

const (
	// RippleAlphabet is the base58 dictionary used by the XRP Ledger address codec.
	RippleAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

	AccountIDLength = 20
	checksumLength  = 4

	// classic: version byte + account id + checksum
	classicAddressVersion = 0x00
	classicAddressLength  = 1 + AccountIDLength + checksumLength
	minClassicStrLength   = 25
	maxClassicStrLength   = 35

	// x-address: 2 prefix bytes + account id + tag flag + 8 tag bytes + checksum
	xAddressLength = 2 + AccountIDLength + 1 + 8 + checksumLength
)

var (
	rippleAlphabet = base58.NewAlphabet(RippleAlphabet)

	xAddressMainnetPrefix = []byte{0x05, 0x44}
	xAddressTestnetPrefix = []byte{0x04, 0x93}
)

// IsValidAddress reports whether s is a syntactically valid ledger account address, either in the
// classic r-address form or in the X-address form. It is the only place address validity is decided.
func IsValidAddress(s string) bool {
	return IsValidClassicAddress(s) || IsValidXAddress(s)
}

// IsValidClassicAddress checks a classic (r...) address: ripple base58, version byte 0x00, a 20 byte
// account id and a double SHA-256 checksum.
func IsValidClassicAddress(s string) bool {
	if len(s) < minClassicStrLength || len(s) > maxClassicStrLength || s[0] != 'r' {
		return false
	}
	payload, ok := decodeChecked(s, classicAddressLength)
	if !ok {
		return false
	}
	return payload[0] == classicAddressVersion
}

// IsValidXAddress checks an X-address: a classic account id packed with a network prefix and an
// optional 32 bit destination tag.
func IsValidXAddress(s string) bool {
	if s == "" || (s[0] != 'X' && s[0] != 'T') {
		return false
	}
	payload, ok := decodeChecked(s, xAddressLength)
	if !ok {
		return false
	}

	prefix := payload[:2]
	if !bytes.Equal(prefix, xAddressMainnetPrefix) && !bytes.Equal(prefix, xAddressTestnetPrefix) {
		return false
	}

	flag := payload[2+AccountIDLength]
	tag := payload[2+AccountIDLength+1:]
	switch flag {
	case 0:
		// no tag: every tag byte must be zero
		return isZero(tag)
	case 1:
		// 32 bit tag in the low bytes, the upper four are reserved
		return isZero(tag[4:])
	default:
		return false
	}
}

// decodeChecked decodes a ripple base58 string of the expected decoded length and verifies its trailing
// checksum. On success the payload without the checksum is returned.
func decodeChecked(s string, expectedLength int) ([]byte, bool) {
	decoded, err := base58.DecodeAlphabet(s, rippleAlphabet)
	if err != nil || len(decoded) != expectedLength {
		return nil, false
	}
	payload := decoded[:expectedLength-checksumLength]
	checksum := decoded[expectedLength-checksumLength:]
	if !bytes.Equal(addressChecksum(payload), checksum) {
		return nil, false
	}
	return payload, true
}

func addressChecksum(payload []byte) []byte {
	return chainhash.DoubleHashB(payload)[:checksumLength]
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
