package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
)

// DeployFundMe deploys FundMe against the network's ETH/USD price feed and
// verifies it on live networks when an explorer API key is present.
func DeployFundMe(ctx context.Context, env *DeployEnv) error {
	deployer, err := env.NamedAccount(ctx, "deployer")
	if err != nil {
		return err
	}

	priceFeed, err := PriceFeedAddress(ctx, env)
	if err != nil {
		return err
	}

	args := []interface{}{priceFeed}
	fundMe, err := env.Deploy(ctx, DeployOptions{
		Contract:      bindings.FundMeName,
		From:          deployer,
		Args:          args,
		Confirmations: env.Network.Confirmations(),
		Tags:          []string{"all", "fundme"},
	})
	if err != nil {
		return err
	}
	env.Log(fmt.Sprintf("FundMe deployed at: %s, Arguements: %s", fundMe.Address, strings.Join(fundMe.Args, ",")))

	if !env.Project.IsDevelopmentChain(env.Network.Name) && env.APIKey != "" {
		env.Verify(ctx, fundMe)
	}
	env.Log(strings.Repeat("-", 50))

	return nil
}

// PriceFeedAddress selects the ETH/USD feed: the stored mock on development
// chains, the configured feed for the chain ID elsewhere.
func PriceFeedAddress(ctx context.Context, env *DeployEnv) (common.Address, error) {
	if env.Project.IsDevelopmentChain(env.Network.Name) {
		mock, err := env.Get(ctx, bindings.MockV3AggregatorName)
		if err != nil {
			return common.Address{}, fmt.Errorf("mock price feed not deployed on %s (run the mocks step first): %w", env.Network.Name, err)
		}
		return common.HexToAddress(mock.Address), nil
	}

	feed, ok := env.Project.PriceFeedFor(env.Network.ChainID)
	if !ok {
		return common.Address{}, fmt.Errorf("%w for chain %d (%s)", domain.ErrNoPriceFeed, env.Network.ChainID, env.Network.Name)
	}
	if !common.IsHexAddress(feed) {
		return common.Address{}, fmt.Errorf("price feed %q for chain %d: %w", feed, env.Network.ChainID, domain.ErrInvalidAddress)
	}
	return common.HexToAddress(feed), nil
}
