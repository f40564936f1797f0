package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

type codeSet map[common.Address]bool

func (c codeSet) HasCode(ctx context.Context, address common.Address) (bool, error) {
	if address == (common.Address{}) {
		return false, errors.New("rpc down")
	}
	return c[address], nil
}

func TestPruneDeployments(t *testing.T) {
	ctx := context.Background()
	live := common.HexToAddress("0x1001")
	gone := common.HexToAddress("0x1002")

	seed := func(t *testing.T) *memoryStore {
		store := newMemoryStore()
		require.NoError(t, store.Save(ctx, &models.Deployment{Name: "FundMe", Network: "localhost", Address: live.Hex()}))
		require.NoError(t, store.Save(ctx, &models.Deployment{Name: "MockV3Aggregator", Network: "localhost", Address: gone.Hex()}))
		require.NoError(t, store.Save(ctx, &models.Deployment{Name: "FundMe", Network: "sepolia", Address: gone.Hex()}))
		return store
	}
	checker := codeSet{live: true}

	t.Run("dry run reports only", func(t *testing.T) {
		store := seed(t)
		result, err := usecase.NewPruneDeployments(localhostConfig(), store, checker, nil).
			Run(ctx, usecase.PruneDeploymentsParams{DryRun: true})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Checked)
		require.Len(t, result.Pruned, 1)
		assert.Equal(t, "MockV3Aggregator", result.Pruned[0].Name)
		_, err = store.Get(ctx, "localhost", "MockV3Aggregator")
		assert.NoError(t, err)
	})

	t.Run("deletes missing contracts on the selected network", func(t *testing.T) {
		store := seed(t)
		_, err := usecase.NewPruneDeployments(localhostConfig(), store, checker, &recordingSink{}).
			Run(ctx, usecase.PruneDeploymentsParams{})
		require.NoError(t, err)

		_, err = store.Get(ctx, "localhost", "MockV3Aggregator")
		assert.Error(t, err)
		_, err = store.Get(ctx, "localhost", "FundMe")
		assert.NoError(t, err)
		_, err = store.Get(ctx, "sepolia", "FundMe")
		assert.NoError(t, err)
	})

	t.Run("checker errors abort", func(t *testing.T) {
		store := newMemoryStore()
		require.NoError(t, store.Save(ctx, &models.Deployment{Name: "FundMe", Network: "localhost", Address: common.Address{}.Hex()}))
		_, err := usecase.NewPruneDeployments(localhostConfig(), store, checker, nil).Run(ctx, usecase.PruneDeploymentsParams{})
		assert.Error(t, err)
	})
}
