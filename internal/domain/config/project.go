package config

import (
	"slices"
	"strconv"
)

// ProjectConfig represents the full fundme.toml configuration
type ProjectConfig struct {
	Networks          map[string]NetworkConfig `toml:"networks"`
	DevelopmentChains []string                 `toml:"development_chains"`
	NetworkConfig     map[string]NetworkEntry  `toml:"network_config"` // keyed by chain ID
	Mocks             MockConfig               `toml:"mocks"`
	NamedAccounts     map[string]int           `toml:"named_accounts"`
	Etherscan         EtherscanConfig          `toml:"etherscan"`
	Paths             PathsConfig              `toml:"paths"`
	DevAccounts       DevAccountsConfig        `toml:"dev_accounts"`
}

// NetworkConfig represents a [networks.<name>] section
type NetworkConfig struct {
	URL                string   `toml:"url"`
	ChainID            uint64   `toml:"chain_id"`
	BlockConfirmations uint64   `toml:"block_confirmations,omitempty"`
	Accounts           []string `toml:"accounts,omitempty"` // private keys, usually ${PRIVATE_KEY}
	Explorer           string   `toml:"explorer,omitempty"`
}

// NetworkEntry is the per-chain helper configuration
type NetworkEntry struct {
	Name            string `toml:"name"`
	EthUsdPriceFeed string `toml:"eth_usd_price_feed"`
}

// MockConfig holds the constructor arguments for the local price feed mock
type MockConfig struct {
	Decimals      uint8 `toml:"decimals"`
	InitialAnswer int64 `toml:"initial_answer"`
}

// EtherscanConfig represents block explorer credentials
type EtherscanConfig struct {
	APIKey string            `toml:"api_key,omitempty"`
	APIURL map[string]string `toml:"api_url,omitempty"` // per network override
}

// PathsConfig holds project relative paths
type PathsConfig struct {
	Artifacts   string `toml:"artifacts,omitempty"`
	Deployments string `toml:"deployments,omitempty"`
}

// DevAccountsConfig configures signers for development chains
type DevAccountsConfig struct {
	Mnemonic string `toml:"mnemonic,omitempty"`
	Count    int    `toml:"count,omitempty"`
}

// IsDevelopmentChain reports whether the network name is a local development chain
func (p *ProjectConfig) IsDevelopmentChain(name string) bool {
	return slices.Contains(p.DevelopmentChains, name)
}

// PriceFeedFor returns the configured ETH/USD feed for a chain ID
func (p *ProjectConfig) PriceFeedFor(chainID uint64) (string, bool) {
	entry, ok := p.NetworkConfig[strconv.FormatUint(chainID, 10)]
	if !ok || entry.EthUsdPriceFeed == "" {
		return "", false
	}
	return entry.EthUsdPriceFeed, true
}
