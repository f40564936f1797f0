package config

import (
	"github.com/trebuchet-org/fundme/internal/domain/config"
)

const (
	// ProjectFile is the project configuration file looked up from the working directory
	ProjectFile = "fundme.toml"

	// DefaultMnemonic is the well-known development mnemonic used by hardhat and anvil
	DefaultMnemonic = "test test test test test test test test test test test junk"

	// DefaultDevAccounts is the number of signers derived on development chains
	DefaultDevAccounts = 10

	// LocalChainID is the chain ID used by local development nodes
	LocalChainID = 31337

	// DefaultNetwork is used when neither --network nor FUNDME_NETWORK is set
	DefaultNetwork = "localhost"
)

// DefaultProjectConfig returns the helper configuration used when fundme.toml leaves a section empty
func DefaultProjectConfig() *config.ProjectConfig {
	return &config.ProjectConfig{
		Networks: map[string]config.NetworkConfig{
			"hardhat": {
				URL:     "http://127.0.0.1:8545",
				ChainID: LocalChainID,
			},
			"localhost": {
				URL:     "http://127.0.0.1:8545",
				ChainID: LocalChainID,
			},
		},
		DevelopmentChains: []string{"hardhat", "localhost"},
		NetworkConfig: map[string]config.NetworkEntry{
			"4": {
				Name:            "rinkeby",
				EthUsdPriceFeed: "0x8A753747A1Fa494EC906cE90E9f37563A8AF630e",
			},
			"5": {
				Name:            "goerli",
				EthUsdPriceFeed: "0xD4a33860578De61DBAbDc8BFdb98FD742fA7028e",
			},
			"137": {
				Name:            "polygon",
				EthUsdPriceFeed: "0xF9680D99D6C9589e92a6cf7D6B73Ba5EB6D0F1b5",
			},
			"11155111": {
				Name:            "sepolia",
				EthUsdPriceFeed: "0x694AA1769357215DE4FAC081bf1f309aDC325306",
			},
		},
		Mocks: config.MockConfig{
			Decimals:      8,
			InitialAnswer: 200000000000,
		},
		NamedAccounts: map[string]int{
			"deployer": 0,
		},
		Paths: config.PathsConfig{
			Artifacts:   "artifacts",
			Deployments: "deployments",
		},
		DevAccounts: config.DevAccountsConfig{
			Mnemonic: DefaultMnemonic,
			Count:    DefaultDevAccounts,
		},
	}
}
