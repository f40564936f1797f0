package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) (*DeploymentStoreAdapter, string) {
	t.Helper()
	root := t.TempDir()
	return NewDeploymentStoreAdapter(&config.RuntimeConfig{
		ProjectRoot: root,
		Project:     &config.ProjectConfig{Paths: config.PathsConfig{Deployments: "deployments"}},
	}), root
}

func fundMeDeployment(network string, chainID uint64) *models.Deployment {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Deployment{
		Name:            "FundMe",
		Address:         "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		ABI:             json.RawMessage(`[]`),
		Args:            []string{"0x694AA1769357215DE4FAC081bf1f309aDC325306"},
		TransactionHash: "0xabc",
		Network:         network,
		ChainID:         chainID,
		Tags:            []string{"all", "fundme"},
		Verification:    models.VerificationInfo{Status: models.VerificationStatusUnverified},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestDeploymentStore_SaveAndGet(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	dep := fundMeDeployment("sepolia", 11155111)
	require.NoError(t, store.Save(ctx, dep))

	assert.FileExists(t, filepath.Join(root, "deployments", "sepolia", "FundMe.json"))
	chainID, err := store.ChainID("sepolia")
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), chainID)

	got, err := store.Get(ctx, "sepolia", "FundMe")
	require.NoError(t, err)
	assert.Equal(t, dep, got)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Join(root, "deployments", "sepolia"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDeploymentStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Get(context.Background(), "localhost", "FundMe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = store.ChainID("localhost")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeploymentStore_SaveRequiresKey(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.Save(context.Background(), &models.Deployment{Name: "FundMe"}))
}

func TestDeploymentStore_List(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, fundMeDeployment("sepolia", 11155111)))
	require.NoError(t, store.Save(ctx, fundMeDeployment("localhost", 31337)))
	mock := fundMeDeployment("localhost", 31337)
	mock.Name = "MockV3Aggregator"
	mock.Tags = []string{"all", "mocks"}
	require.NoError(t, store.Save(ctx, mock))

	all, err := store.List(ctx, domain.DeploymentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	local, err := store.List(ctx, domain.DeploymentFilter{Network: "localhost"})
	require.NoError(t, err)
	assert.Len(t, local, 2)

	byChain, err := store.List(ctx, domain.DeploymentFilter{ChainID: 11155111})
	require.NoError(t, err)
	require.Len(t, byChain, 1)
	assert.Equal(t, "sepolia", byChain[0].Network)

	byName, err := store.List(ctx, domain.DeploymentFilter{ContractName: "FundMe"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byTag, err := store.List(ctx, domain.DeploymentFilter{Tag: "mocks"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "MockV3Aggregator", byTag[0].Name)

	t.Run("empty store", func(t *testing.T) {
		empty, _ := newTestStore(t)
		deps, err := empty.List(ctx, domain.DeploymentFilter{})
		require.NoError(t, err)
		assert.Empty(t, deps)
	})
}

func TestDeploymentStore_DeleteAndReset(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, fundMeDeployment("localhost", 31337)))
	require.NoError(t, store.Save(ctx, fundMeDeployment("sepolia", 11155111)))

	require.NoError(t, store.Delete(ctx, "localhost", "FundMe"))
	assert.True(t, errors.Is(store.Delete(ctx, "localhost", "FundMe"), domain.ErrNotFound))

	require.NoError(t, store.Reset(ctx, "sepolia"))
	_, err := store.Get(ctx, "sepolia", "FundMe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// resetting a network with no deployments is fine
	require.NoError(t, store.Reset(ctx, "goerli"))
	assert.Error(t, store.Reset(ctx, ""))
}

func TestDeploymentStore_ConcurrentSaves(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Save(ctx, fundMeDeployment("localhost", 31337)))
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "localhost", "FundMe")
	require.NoError(t, err)
	assert.Equal(t, "FundMe", got.Name)
}
