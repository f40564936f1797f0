package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Context settings
	Network *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved configurations
	Project *ProjectConfig

	// EtherscanAPIKey gates explorer verification on live networks
	EtherscanAPIKey string
}

// Network represents a resolved network configuration
type Network struct {
	Name               string `json:"name"`
	ChainID            uint64 `json:"chainId"`
	RPCURL             string `json:"rpcUrl"`
	BlockConfirmations uint64 `json:"blockConfirmations"`
	ExplorerURL        string `json:"explorerUrl,omitempty"`
	ExplorerAPIURL     string `json:"explorerApiUrl,omitempty"`
	Development        bool   `json:"development"`
	// Accounts holds resolved private keys (hex) for live networks
	Accounts []string `json:"-"`
}

// Confirmations returns the number of confirmations to wait for, never less than one
func (n *Network) Confirmations() uint64 {
	if n == nil || n.BlockConfirmations == 0 {
		return 1
	}
	return n.BlockConfirmations
}
