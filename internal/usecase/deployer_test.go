package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

func newTestDeployer(cfg *config.RuntimeConfig, chain *fakeChain, store *memoryStore, verifier *MockVerifier, sink *recordingSink) *usecase.Deployer {
	return usecase.NewDeployer(cfg, chain, store, staticArtifacts{}, fixedAccounts{}, verifier, sink, nopLogger())
}

func TestDeployStep_Matches(t *testing.T) {
	step := usecase.DeployStep{Name: "01-deploy-fund-me", Tags: []string{"all", "fundme"}}

	assert.True(t, step.Matches(nil))
	assert.True(t, step.Matches([]string{"all"}))
	assert.True(t, step.Matches([]string{"mocks", "fundme"}))
	assert.False(t, step.Matches([]string{"mocks"}))
}

func TestDefaultSteps(t *testing.T) {
	steps := usecase.DefaultSteps()
	require.Len(t, steps, 2)
	assert.Equal(t, "00-deploy-mocks", steps[0].Name)
	assert.Equal(t, []string{"all", "mocks"}, steps[0].Tags)
	assert.Equal(t, "01-deploy-fund-me", steps[1].Name)
	assert.Equal(t, []string{"all", "fundme"}, steps[1].Tags)
}

func TestDeployer_DevelopmentChain(t *testing.T) {
	ctx := context.Background()

	t.Run("all tags deploys mock then FundMe against the mock", func(t *testing.T) {
		chain := newFakeChain()
		store := newMemoryStore()
		verifier := &MockVerifier{}
		sink := &recordingSink{}

		result, err := newTestDeployer(localhostConfig(), chain, store, verifier, sink).
			Run(ctx, usecase.DeployParams{Tags: []string{"all"}})
		require.NoError(t, err)

		assert.Equal(t, []string{bindings.MockV3AggregatorName, bindings.FundMeName}, chain.deployed)
		require.Contains(t, result.Deployments, bindings.FundMeName)
		require.Contains(t, result.Deployments, bindings.MockV3AggregatorName)

		mockDeployment := result.Deployments[bindings.MockV3AggregatorName]
		fundMe := result.Deployments[bindings.FundMeName]
		assert.Equal(t, []string{"8", "200000000000"}, mockDeployment.Args)
		assert.Equal(t, []string{mockDeployment.Address}, fundMe.Args)
		assert.Equal(t, deployerAddr.Hex(), fundMe.Deployer)
		assert.Equal(t, "localhost", fundMe.Network)
		assert.Equal(t, uint64(31337), fundMe.ChainID)
		assert.Equal(t, "contracts/FundMe.sol:FundMe", fundMe.Artifact.Path)
		assert.Equal(t, models.VerificationStatusUnverified, fundMe.Verification.Status)

		// constructor args are ABI-encoded: one left-padded address word
		encoded := common.LeftPadBytes(common.HexToAddress(mockDeployment.Address).Bytes(), 32)
		assert.Equal(t, "0x"+common.Bytes2Hex(encoded), fundMe.ConstructorArgs)

		out := sink.output()
		assert.Contains(t, out, "Local network detected! Deploying mocks...")
		assert.Contains(t, out, "Mocks deployed!")
		assert.Contains(t, out, "FundMe deployed at: "+fundMe.Address+", Arguements: "+mockDeployment.Address)
		assert.Equal(t, strings.Repeat("-", 50), sink.infos[len(sink.infos)-1])

		stored, err := store.Get(ctx, "localhost", bindings.FundMeName)
		require.NoError(t, err)
		assert.Equal(t, fundMe.Address, stored.Address)

		verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("mocks tag only skips FundMe", func(t *testing.T) {
		chain := newFakeChain()
		result, err := newTestDeployer(localhostConfig(), chain, newMemoryStore(), &MockVerifier{}, &recordingSink{}).
			Run(ctx, usecase.DeployParams{Tags: []string{"mocks"}})
		require.NoError(t, err)

		assert.Equal(t, []string{bindings.MockV3AggregatorName}, chain.deployed)
		assert.Equal(t, []usecase.StepResult{
			{Name: "00-deploy-mocks"},
			{Name: "01-deploy-fund-me", Skipped: true},
		}, result.Steps)
	})

	t.Run("fundme tag without stored mock fails", func(t *testing.T) {
		_, err := newTestDeployer(localhostConfig(), newFakeChain(), newMemoryStore(), &MockVerifier{}, &recordingSink{}).
			Run(ctx, usecase.DeployParams{Tags: []string{"fundme"}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("fixture resets previous deployments", func(t *testing.T) {
		store := newMemoryStore()
		require.NoError(t, store.Save(ctx, &models.Deployment{Name: "Stale", Network: "localhost"}))
		require.NoError(t, store.Save(ctx, &models.Deployment{Name: "Other", Network: "sepolia"}))

		deployments, err := newTestDeployer(localhostConfig(), newFakeChain(), store, &MockVerifier{}, &recordingSink{}).
			Fixture(ctx, "all")
		require.NoError(t, err)

		assert.Len(t, deployments, 2)
		assert.NotContains(t, deployments, "Stale")
		_, err = store.Get(ctx, "sepolia", "Other")
		assert.NoError(t, err)
	})
}

func TestDeployer_LiveNetwork(t *testing.T) {
	ctx := context.Background()

	t.Run("uses configured feed and verifies with api key", func(t *testing.T) {
		chain := newFakeChain()
		store := newMemoryStore()
		sink := &recordingSink{}
		verifiedAt := &models.VerificationInfo{Status: models.VerificationStatusVerified, URL: "https://sepolia.etherscan.io/address/x#code"}

		verifier := &MockVerifier{}
		verifier.On("Verify", mock.Anything, mock.MatchedBy(func(req usecase.VerifyRequest) bool {
			return req.APIKey == "key" && req.Network.Name == "sepolia" && req.Artifact.ContractName == bindings.FundMeName
		})).Return(verifiedAt, nil).Once()

		result, err := newTestDeployer(sepoliaConfig("key"), chain, store, verifier, sink).
			Run(ctx, usecase.DeployParams{Tags: []string{"all"}})
		require.NoError(t, err)

		// mocks step is a no-op on live networks
		assert.Equal(t, []string{bindings.FundMeName}, chain.deployed)

		fundMe := result.Deployments[bindings.FundMeName]
		assert.Equal(t, []string{"0x694AA1769357215DE4FAC081bf1f309aDC325306"}, fundMe.Args)
		assert.Equal(t, uint64(6), fundMe.Receipt.Confirmations)

		stored, err := store.Get(ctx, "sepolia", bindings.FundMeName)
		require.NoError(t, err)
		assert.True(t, stored.IsVerified())
		assert.NotContains(t, sink.output(), "Local network detected")
		verifier.AssertExpectations(t)
	})

	t.Run("no api key skips verification", func(t *testing.T) {
		verifier := &MockVerifier{}
		_, err := newTestDeployer(sepoliaConfig(""), newFakeChain(), newMemoryStore(), verifier, &recordingSink{}).
			Run(ctx, usecase.DeployParams{Tags: []string{"all"}})
		require.NoError(t, err)
		verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("verification failure is recorded, deploy succeeds", func(t *testing.T) {
		store := newMemoryStore()
		sink := &recordingSink{}
		verifier := &MockVerifier{}
		verifier.On("Verify", mock.Anything, mock.Anything).
			Return(nil, errors.New("explorer unavailable")).Once()

		_, err := newTestDeployer(sepoliaConfig("key"), newFakeChain(), store, verifier, sink).
			Run(ctx, usecase.DeployParams{Tags: []string{"fundme"}})
		require.NoError(t, err)

		stored, err := store.Get(ctx, "sepolia", bindings.FundMeName)
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusFailed, stored.Verification.Status)
		assert.Contains(t, stored.Verification.Reason, "explorer unavailable")
		assert.NotEmpty(t, sink.errors)
		assert.Equal(t, strings.Repeat("-", 50), sink.infos[len(sink.infos)-1])
	})

	t.Run("unknown chain has no price feed", func(t *testing.T) {
		cfg := sepoliaConfig("")
		cfg.Network = &config.Network{Name: "mainnet", ChainID: 1}

		_, err := newTestDeployer(cfg, newFakeChain(), newMemoryStore(), &MockVerifier{}, &recordingSink{}).
			Run(ctx, usecase.DeployParams{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNoPriceFeed))
	})

	t.Run("fixture refuses live networks", func(t *testing.T) {
		_, err := newTestDeployer(sepoliaConfig(""), newFakeChain(), newMemoryStore(), &MockVerifier{}, &recordingSink{}).
			Fixture(ctx, "all")
		assert.True(t, errors.Is(err, domain.ErrNotDevelopmentChain))
	})
}

func TestPriceFeedAddress(t *testing.T) {
	ctx := context.Background()

	probe := func(cfg *config.RuntimeConfig, store *memoryStore) (common.Address, error) {
		var (
			addr    common.Address
			feedErr error
		)
		d := newTestDeployer(cfg, newFakeChain(), store, &MockVerifier{}, &recordingSink{}).
			WithSteps(usecase.DeployStep{Name: "probe", Run: func(ctx context.Context, env *usecase.DeployEnv) error {
				addr, feedErr = usecase.PriceFeedAddress(ctx, env)
				return nil
			}})
		_, err := d.Run(ctx, usecase.DeployParams{})
		require.NoError(t, err)
		return addr, feedErr
	}

	t.Run("development chain uses stored mock", func(t *testing.T) {
		store := newMemoryStore()
		require.NoError(t, store.Save(ctx, &models.Deployment{
			Name:    bindings.MockV3AggregatorName,
			Network: "localhost",
			Address: feedAddr.Hex(),
		}))
		addr, err := probe(localhostConfig(), store)
		require.NoError(t, err)
		assert.Equal(t, feedAddr, addr)
	})

	t.Run("live chain uses helper config", func(t *testing.T) {
		addr, err := probe(sepoliaConfig(""), newMemoryStore())
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x694AA1769357215DE4FAC081bf1f309aDC325306"), addr)
	})

	t.Run("invalid configured address", func(t *testing.T) {
		cfg := sepoliaConfig("")
		cfg.Project.NetworkConfig["11155111"] = config.NetworkEntry{EthUsdPriceFeed: "not-an-address"}
		_, err := probe(cfg, newMemoryStore())
		assert.True(t, errors.Is(err, domain.ErrInvalidAddress))
	})
}
