package usecase

import (
	"context"
	"math/big"
	"strings"

	"github.com/trebuchet-org/fundme/internal/domain/bindings"
)

// DeployMocks deploys the MockV3Aggregator price feed on development chains.
// Live networks use their real feed, so the step is a no-op there.
func DeployMocks(ctx context.Context, env *DeployEnv) error {
	if !env.Project.IsDevelopmentChain(env.Network.Name) {
		return nil
	}

	deployer, err := env.NamedAccount(ctx, "deployer")
	if err != nil {
		return err
	}

	env.Log("Local network detected! Deploying mocks...")
	_, err = env.Deploy(ctx, DeployOptions{
		Contract: bindings.MockV3AggregatorName,
		From:     deployer,
		Args: []interface{}{
			env.Project.Mocks.Decimals,
			big.NewInt(env.Project.Mocks.InitialAnswer),
		},
		Tags: []string{"all", "mocks"},
	})
	if err != nil {
		return err
	}
	env.Log("Mocks deployed!")
	env.Log(strings.Repeat("-", 50))

	return nil
}
