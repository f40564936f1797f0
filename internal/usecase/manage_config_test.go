package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// memoryLocalConfig is an in-memory LocalConfigStore
type memoryLocalConfig struct {
	cfg *config.LocalConfig
}

func (m *memoryLocalConfig) Exists() bool { return m.cfg != nil }

func (m *memoryLocalConfig) Load(ctx context.Context) (*config.LocalConfig, error) {
	if m.cfg == nil {
		return config.DefaultLocalConfig(), nil
	}
	copied := *m.cfg
	return &copied, nil
}

func (m *memoryLocalConfig) Save(ctx context.Context, cfg *config.LocalConfig) error {
	m.cfg = cfg
	return nil
}

func (m *memoryLocalConfig) GetPath() string { return ".fundme/config.local.json" }

func TestManageConfig(t *testing.T) {
	ctx := context.Background()
	resolver := &MockNetworkResolver{}
	resolver.On("GetNetworks", mock.Anything).Return([]string{"localhost", "sepolia"})

	t.Run("show defaults", func(t *testing.T) {
		result, err := usecase.NewManageConfig(&memoryLocalConfig{}, resolver).Show(ctx)
		require.NoError(t, err)
		assert.False(t, result.Exists)
		assert.Empty(t, result.Config.Network)
	})

	t.Run("set then remove network", func(t *testing.T) {
		store := &memoryLocalConfig{}
		uc := usecase.NewManageConfig(store, resolver)

		result, err := uc.Set(ctx, "NET", "sepolia")
		require.NoError(t, err)
		assert.Equal(t, config.ConfigKeyNetwork, result.Key)
		assert.Equal(t, "sepolia", store.cfg.Network)

		result, err = uc.Remove(ctx, "network")
		require.NoError(t, err)
		assert.Equal(t, "sepolia", result.Value)
		assert.Empty(t, store.cfg.Network)
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := usecase.NewManageConfig(&memoryLocalConfig{}, resolver).Set(ctx, "network", "mainnet")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "localhost, sepolia")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := usecase.NewManageConfig(&memoryLocalConfig{}, resolver).Set(ctx, "namespace", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown config key")
	})

	t.Run("remove without file", func(t *testing.T) {
		_, err := usecase.NewManageConfig(&memoryLocalConfig{}, resolver).Remove(ctx, "network")
		assert.Error(t, err)
	})
}
