package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/config"
	"github.com/trebuchet-org/fundme/internal/domain"
	domainconfig "github.com/trebuchet-org/fundme/internal/domain/config"
)

func TestNetworkResolverAdapter(t *testing.T) {
	project := &domainconfig.ProjectConfig{
		Networks: map[string]domainconfig.NetworkConfig{
			"localhost": {URL: "http://127.0.0.1:8545", ChainID: 31337},
			"sepolia":   {URL: "https://rpc.sepolia.org", ChainID: 11155111},
		},
		DevelopmentChains: []string{"localhost"},
	}
	adapter := NewNetworkResolverAdapter(config.NewNetworkResolver(project))
	ctx := context.Background()

	assert.Equal(t, []string{"localhost", "sepolia"}, adapter.GetNetworks(ctx))

	network, err := adapter.ResolveNetwork(ctx, "sepolia")
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), network.ChainID)
	assert.False(t, network.Development)

	_, err = adapter.ResolveNetwork(ctx, "sepolai")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownNetwork))
}
