package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrUnsupportedNetwork is returned when a chain is not in the supported network table
	ErrUnsupportedNetwork = errors.New("unsupported network")

	// ErrDomainLookup is returned when the current domain name cannot be determined
	ErrDomainLookup = errors.New("domain lookup failed")

	// ErrStorageRead is returned when the storage contract record cannot be read
	ErrStorageRead = errors.New("storage read failed")

	// ErrParse is returned when the stored settings payload is malformed
	ErrParse = errors.New("settings parse failed")

	// ErrEnrichment is returned when the factory info call fails
	ErrEnrichment = errors.New("factory enrichment failed")
)

// ParseError describes a settings payload that could not be decoded.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ParseError as ErrParse so callers can use errors.Is.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
