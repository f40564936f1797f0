package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// FundParams contains parameters for funding a FundMe contract
type FundParams struct {
	Address string   // explicit contract address, defaults to the stored deployment
	Account string   // named account, defaults to "deployer"
	Value   *big.Int // wei
	Force   bool     // skip the minimum contribution preflight
}

// FundResult contains the result of a fund transaction
type FundResult struct {
	Contract common.Address
	Funder   common.Address
	Value    *big.Int
	Minimum  *big.Int // nil when the preflight was skipped
	Total    *big.Int // amount recorded for the funder after the transaction
	Outcome  *models.TxOutcome
}

// Fund sends ETH to FundMe.fund() from a named account
type Fund struct {
	cfg       *config.RuntimeConfig
	chain     ChainClient
	store     DeploymentStore
	accounts  AccountProvider
	confirmer Confirmer
	progress  ProgressSink
	log       *zap.Logger
}

// NewFund creates a new Fund use case
func NewFund(
	cfg *config.RuntimeConfig,
	chain ChainClient,
	store DeploymentStore,
	accounts AccountProvider,
	confirmer Confirmer,
	progress ProgressSink,
	log *zap.Logger,
) *Fund {
	return &Fund{
		cfg:       cfg,
		chain:     chain,
		store:     store,
		accounts:  accounts,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// Run executes the use case
func (uc *Fund) Run(ctx context.Context, params FundParams) (*FundResult, error) {
	if params.Value == nil || params.Value.Sign() < 0 {
		return nil, fmt.Errorf("invalid fund amount")
	}

	contract, err := locateFundMe(ctx, uc.chain, uc.store, uc.cfg.Network, params.Address)
	if err != nil {
		return nil, err
	}

	account, err := uc.accounts.Named(ctx, accountOrDeployer(params.Account))
	if err != nil {
		return nil, err
	}

	result := &FundResult{
		Contract: contract.address,
		Funder:   account.Address,
		Value:    params.Value,
	}

	if !params.Force {
		minimum, err := minimumContribution(ctx, contract)
		if err != nil {
			return nil, fmt.Errorf("failed to compute minimum contribution: %w", err)
		}
		result.Minimum = minimum
		if params.Value.Cmp(minimum) < 0 {
			return nil, fmt.Errorf("%w: sending %s wei, need at least %s wei (use --force to send anyway)",
				domain.ErrBelowMinimum, params.Value, minimum)
		}
	}

	if err := confirmLive(ctx, uc.cfg, uc.confirmer,
		fmt.Sprintf("Fund %s with %s wei from %s on %s", contract.address.Hex(), params.Value, account.Address.Hex(), uc.cfg.Network.Name)); err != nil {
		return nil, err
	}

	outcome, err := sendAndWait(ctx, uc.chain, uc.progress, uc.cfg.Network, contract, account,
		contract.fundMe.PackFund(), params.Value, "fund")
	if err != nil {
		return nil, err
	}
	result.Outcome = outcome
	uc.log.Debug("fund mined", zap.String("tx", outcome.Hash.Hex()), zap.Uint64("gasUsed", outcome.GasUsed))

	total, err := contract.AmountFunded(ctx, account.Address)
	if err != nil {
		return nil, err
	}
	result.Total = total

	return result, nil
}

// minimumContribution reads MINIMUM_USD and the live feed price
func minimumContribution(ctx context.Context, contract *fundMeContract) (*big.Int, error) {
	minUSD, err := contract.MinimumUSD(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := contract.PriceFeed(ctx)
	if err != nil {
		return nil, err
	}
	answer, _, err := contract.LatestPrice(ctx, feed)
	if err != nil {
		return nil, err
	}
	minimum := bindings.MinimumContribution(minUSD, answer)
	if minimum == nil {
		return nil, fmt.Errorf("price feed %s returned a non-positive answer %s", feed.Hex(), answer)
	}
	return minimum, nil
}

// sendAndWait sends a transaction to the FundMe contract and waits for it to be mined
func sendAndWait(
	ctx context.Context,
	chain ChainClient,
	progress ProgressSink,
	network *config.Network,
	contract *fundMeContract,
	account *models.Account,
	data []byte,
	value *big.Int,
	method string,
) (*models.TxOutcome, error) {
	progress.OnProgress(ctx, ProgressEvent{Stage: "sending", Message: fmt.Sprintf("Sending %s()...", method), Spinner: true})
	defer progress.OnProgress(ctx, ProgressEvent{Stage: "done"})

	tx, err := chain.Transact(ctx, account, contract.address, data, value)
	if err != nil {
		return nil, contract.decode(method, err)
	}

	progress.OnProgress(ctx, ProgressEvent{Stage: "confirming", Message: "Waiting for confirmation...", Spinner: true})
	receipt, err := chain.WaitConfirmations(ctx, tx, network.Confirmations())
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", method, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s transaction %s reverted", method, tx.Hash().Hex())
	}

	return &models.TxOutcome{
		Hash:        tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		GasCost:     chain.GasCost(receipt),
	}, nil
}

// confirmLive prompts before state changes on live networks unless running non-interactively
func confirmLive(ctx context.Context, cfg *config.RuntimeConfig, confirmer Confirmer, prompt string) error {
	if cfg.NonInteractive || cfg.Network == nil || cfg.Network.Development {
		return nil
	}
	ok, err := confirmer.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCancelled
	}
	return nil
}

func accountOrDeployer(name string) string {
	if name == "" {
		return "deployer"
	}
	return name
}
