package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// ZeroAddress is the address the storage contract reports for unset owners and recipients
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// ZeroHash is the hash the storage contract reports for an unset pair hash
	ZeroHash = "0x0000000000000000000000000000000000000000000000000000000000000000"
)

// IsValidAddress reports whether v is a 0x-prefixed, 40 hex digit EVM address.
// Checksum casing is not enforced.
func IsValidAddress(v string) bool {
	if len(v) < 2 || (v[:2] != "0x" && v[:2] != "0X") {
		return false
	}
	return common.IsHexAddress(v)
}

// IsZeroAddress reports whether v is the all-zero address.
func IsZeroAddress(v string) bool {
	return strings.EqualFold(v, ZeroAddress)
}

// IsZeroHash reports whether v is the all-zero 32 byte hash.
func IsZeroHash(v string) bool {
	return strings.EqualFold(v, ZeroHash)
}

// SameAddress compares two addresses ignoring checksum casing. Empty values never match.
func SameAddress(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
