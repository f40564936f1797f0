package config

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// explorer holds the browser and API endpoints of a block explorer
type explorer struct {
	URL    string
	APIURL string
}

// knownExplorers maps chain IDs to their default Etherscan-compatible explorers
var knownExplorers = map[uint64]explorer{
	1:        {"https://etherscan.io", "https://api.etherscan.io/api"},
	4:        {"https://rinkeby.etherscan.io", "https://api-rinkeby.etherscan.io/api"},
	5:        {"https://goerli.etherscan.io", "https://api-goerli.etherscan.io/api"},
	10:       {"https://optimistic.etherscan.io", "https://api-optimistic.etherscan.io/api"},
	56:       {"https://bscscan.com", "https://api.bscscan.com/api"},
	100:      {"https://gnosis.blockscout.com", "https://gnosis.blockscout.com/api"},
	137:      {"https://polygonscan.com", "https://api.polygonscan.com/api"},
	8453:     {"https://basescan.org", "https://api.basescan.org/api"},
	42161:    {"https://arbiscan.io", "https://api.arbiscan.io/api"},
	11155111: {"https://sepolia.etherscan.io", "https://api-sepolia.etherscan.io/api"},
}

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	project *config.ProjectConfig
	cache   map[string]uint64 // rpcURL -> chainID
	mu      sync.RWMutex
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	return &NetworkResolver{
		project: project,
		cache:   make(map[string]uint64),
	}
}

// Names returns the configured network names in sorted order
func (r *NetworkResolver) Names() []string {
	names := lo.Keys(r.project.Networks)
	sort.Strings(names)
	return names
}

// Suggest returns configured network names that fuzzily match the input
func (r *NetworkResolver) Suggest(name string) []string {
	names := r.Names()
	matches := fuzzy.Find(name, names)
	return lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	netCfg, exists := r.project.Networks[networkName]
	if !exists {
		return nil, domain.UnknownNetworkErr{
			Name:        networkName,
			Suggestions: r.Suggest(networkName),
		}
	}

	rpcURL := netCfg.URL
	if rpcURL == "" {
		rpcURL = "${" + GenerateEnvVarName(networkName) + "}"
	}
	rpcURL, err := ExpandEnv(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("network %s url: %w", networkName, err)
	}

	chainID := netCfg.ChainID
	if chainID == 0 {
		chainID, err = r.FetchChainID(ctx, rpcURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
		}
	}

	network := &config.Network{
		Name:               networkName,
		ChainID:            chainID,
		RPCURL:             rpcURL,
		BlockConfirmations: netCfg.BlockConfirmations,
		Development:        r.project.IsDevelopmentChain(networkName),
		Accounts:           resolveAccounts(netCfg.Accounts),
	}
	network.ExplorerURL, network.ExplorerAPIURL = r.explorerFor(networkName, netCfg, chainID)

	return network, nil
}

// FetchChainID asks the RPC endpoint for its chain ID
func (r *NetworkResolver) FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	r.mu.RLock()
	if chainID, ok := r.cache[rpcURL]; ok {
		r.mu.RUnlock()
		return chainID, nil
	}
	r.mu.RUnlock()

	client, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}
	defer client.Close()

	var result hexutil.Uint64
	if err := client.CallContext(ctx, &result, "eth_chainId"); err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}

	r.mu.Lock()
	r.cache[rpcURL] = uint64(result)
	r.mu.Unlock()

	return uint64(result), nil
}

// explorerFor returns the explorer URL and API URL for a network
func (r *NetworkResolver) explorerFor(networkName string, netCfg config.NetworkConfig, chainID uint64) (string, string) {
	known := knownExplorers[chainID]

	url := known.URL
	if netCfg.Explorer != "" {
		url = netCfg.Explorer
	}

	apiURL := known.APIURL
	if override, ok := r.project.Etherscan.APIURL[networkName]; ok && override != "" {
		apiURL = override
	}

	return url, apiURL
}

// resolveAccounts expands ${VAR} references, dropping entries whose variable is unset
func resolveAccounts(raw []string) []string {
	return lo.FilterMap(raw, func(entry string, _ int) (string, bool) {
		value, err := ExpandEnv(entry)
		if err != nil || value == "" {
			return "", false
		}
		return value, true
	})
}
