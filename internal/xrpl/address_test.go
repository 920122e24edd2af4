package xrpl

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	genesisAddress = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	docsAddress    = "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"
	accountZero    = "rrrrrrrrrrrrrrrrrrrrrhoLvTp"

	genesisXAddress       = "XVPcpSm47b1CZkf5AkKM9a84dQHe3m4sBhsrA4XtnBECTAc"
	genesisTestXAddress   = "TVK3SYvMLZR6rEtLDZh3saYHaqFSeMfyuiuZdqF49Mhpsws"
	genesisMaxTagXAddress = "XVPcpSm47b1CZkf5AkKM9a84dQHe3mX6ZcxNZjq2wMvKo8a"
)

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		valid   bool
	}{
		{name: "genesis account", address: genesisAddress, valid: true},
		{name: "documentation account", address: docsAddress, valid: true},
		{name: "account zero", address: accountZero, valid: true},
		{name: "x-address no tag", address: genesisXAddress, valid: true},
		{name: "testnet x-address with tag", address: genesisTestXAddress, valid: true},
		{name: "x-address max tag", address: genesisMaxTagXAddress, valid: true},
		{name: "empty", address: "", valid: false},
		{name: "too short", address: "rInvalid", valid: false},
		{name: "bad checksum", address: "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTi", valid: false},
		{name: "truncated", address: genesisAddress[:len(genesisAddress)-1], valid: false},
		{name: "too long", address: genesisAddress + "r", valid: false},
		{name: "bitcoin alphabet char", address: "rHb9CJAWyB4rj91VRWn96DkukG4bwdty0h", valid: false},
		{name: "wrong leading char", address: "xHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", valid: false},
		{name: "did is not an address", address: "did:key:z6MkiTBz1ymuepAQ4HEHYSF1H8quG5GLVVQR3djdX3mDooWp", valid: false},
		{name: "x-address bad checksum", address: genesisXAddress[:len(genesisXAddress)-1] + "d", valid: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(tt *testing.T) {
			assert.Equal(tt, test.valid, IsValidAddress(test.address))
		})
	}
}

func TestClassicAndXAddressAreDistinct(t *testing.T) {
	assert.True(t, IsValidClassicAddress(genesisAddress))
	assert.False(t, IsValidXAddress(genesisAddress))

	assert.True(t, IsValidXAddress(genesisXAddress))
	assert.False(t, IsValidClassicAddress(genesisXAddress))
}

func TestIsValidXAddressTagRules(t *testing.T) {
	decoded, err := base58.DecodeAlphabet(genesisAddress, rippleAlphabet)
	require.NoError(t, err)
	accountID := decoded[1 : 1+AccountIDLength]

	encode := func(prefix []byte, flag byte, tag []byte) string {
		payload := append(append(append([]byte{}, prefix...), accountID...), flag)
		payload = append(payload, tag...)
		payload = append(payload, addressChecksum(payload)...)
		return base58.EncodeAlphabet(payload, rippleAlphabet)
	}

	t.Run("generated no tag address matches fixture", func(tt *testing.T) {
		assert.Equal(tt, genesisXAddress, encode(xAddressMainnetPrefix, 0, make([]byte, 8)))
	})

	t.Run("flag zero with tag bytes is rejected", func(tt *testing.T) {
		addr := encode(xAddressMainnetPrefix, 0, []byte{1, 0, 0, 0, 0, 0, 0, 0})
		assert.False(tt, IsValidXAddress(addr))
	})

	t.Run("reserved upper tag bytes are rejected", func(tt *testing.T) {
		addr := encode(xAddressMainnetPrefix, 1, []byte{1, 0, 0, 0, 0, 0, 0, 1})
		assert.False(tt, IsValidXAddress(addr))
	})

	t.Run("unsupported flag is rejected", func(tt *testing.T) {
		addr := encode(xAddressTestnetPrefix, 2, make([]byte, 8))
		assert.False(tt, IsValidXAddress(addr))
	})

	t.Run("unknown network prefix is rejected", func(tt *testing.T) {
		addr := encode([]byte{0x05, 0x45}, 0, make([]byte, 8))
		assert.False(tt, IsValidXAddress(addr))
	})
}
