package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNetworkMismatch is returned when the RPC chain ID differs from the configured one
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrUnknownNetwork is returned when a network name is not configured
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNoPriceFeed is returned when no ETH/USD price feed is known for a chain
	ErrNoPriceFeed = errors.New("no price feed configured")

	// ErrNotDevelopmentChain is returned for operations restricted to local chains
	ErrNotDevelopmentChain = errors.New("not a development chain")

	// ErrNoSigner is returned when a named account cannot be resolved to a key
	ErrNoSigner = errors.New("no signer available")

	// ErrArtifactNotFound is returned when a compiled artifact can't be located
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrAlreadyVerified is returned by explorers for already verified sources
	ErrAlreadyVerified = errors.New("already verified")

	// ErrBelowMinimum is returned when a contribution is below the USD minimum
	ErrBelowMinimum = errors.New("contribution below minimum")

	// ErrCancelled is returned when the user declines a confirmation prompt
	ErrCancelled = errors.New("cancelled by user")
)

// UnknownNetworkErr carries the requested name and close matches
type UnknownNetworkErr struct {
	Name        string
	Suggestions []string
}

func (e UnknownNetworkErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("network '%s' is not configured", e.Name)
	}
	return fmt.Sprintf("network '%s' is not configured, did you mean: %s?", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e UnknownNetworkErr) Unwrap() error {
	return ErrUnknownNetwork
}
