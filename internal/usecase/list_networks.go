package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// rpcCheckTimeout bounds each network's liveness probe
const rpcCheckTimeout = 5 * time.Second

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	CheckRPC bool // query each endpoint for its chain ID
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name          string
	ChainID       uint64
	RPCURL        string
	Development   bool
	PriceFeed     string
	RemoteChainID uint64
	Reachable     bool
	Error         error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
	project  *config.ProjectConfig
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, project *config.ProjectConfig) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		project:  project,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, len(networkNames))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range networkNames {
		g.Go(func() error {
			networks[i] = uc.status(gctx, name, params.CheckRPC)
			return nil
		})
	}
	_ = g.Wait()

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}

func (uc *ListNetworks) status(ctx context.Context, name string, checkRPC bool) NetworkStatus {
	status := NetworkStatus{Name: name}

	info, err := uc.resolver.ResolveNetwork(ctx, name)
	if err != nil {
		status.Error = err
		return status
	}
	status.ChainID = info.ChainID
	status.RPCURL = info.RPCURL
	status.Development = info.Development
	if feed, ok := uc.project.PriceFeedFor(info.ChainID); ok {
		status.PriceFeed = feed
	}

	if checkRPC {
		checkCtx, cancel := context.WithTimeout(ctx, rpcCheckTimeout)
		defer cancel()
		remote, err := uc.resolver.FetchChainID(checkCtx, info.RPCURL)
		if err != nil {
			status.Error = err
			return status
		}
		status.Reachable = true
		status.RemoteChainID = remote
	}

	return status
}
