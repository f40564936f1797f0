package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// WithdrawParams contains parameters for withdrawing from FundMe
type WithdrawParams struct {
	Address string // explicit contract address, defaults to the stored deployment
	Account string // named account, defaults to "deployer"
	Cheaper bool   // use cheaperWithdraw()
}

// WithdrawResult contains the result of a withdraw transaction
type WithdrawResult struct {
	Contract      common.Address
	Owner         common.Address
	Withdrawn     *big.Int // contract balance before the withdrawal
	StartBalance  *big.Int
	EndBalance    *big.Int
	BalanceChange *big.Int // EndBalance - StartBalance, net of gas
	Outcome       *models.TxOutcome
}

// Withdraw sends FundMe.withdraw() or cheaperWithdraw() from a named account
type Withdraw struct {
	cfg       *config.RuntimeConfig
	chain     ChainClient
	store     DeploymentStore
	accounts  AccountProvider
	confirmer Confirmer
	progress  ProgressSink
	log       *zap.Logger
}

// NewWithdraw creates a new Withdraw use case
func NewWithdraw(
	cfg *config.RuntimeConfig,
	chain ChainClient,
	store DeploymentStore,
	accounts AccountProvider,
	confirmer Confirmer,
	progress ProgressSink,
	log *zap.Logger,
) *Withdraw {
	return &Withdraw{
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
func (uc *Withdraw) Run(ctx context.Context, params WithdrawParams) (*WithdrawResult, error) {
	contract, err := locateFundMe(ctx, uc.chain, uc.store, uc.cfg.Network, params.Address)
	if err != nil {
		return nil, err
	}

	account, err := uc.accounts.Named(ctx, accountOrDeployer(params.Account))
	if err != nil {
		return nil, err
	}

	method := "withdraw"
	data := contract.fundMe.PackWithdraw()
	if params.Cheaper {
		method = "cheaperWithdraw"
		data = contract.fundMe.PackCheaperWithdraw()
	}

	contractBalance, err := uc.chain.BalanceAt(ctx, contract.address)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract balance: %w", err)
	}
	startBalance, err := uc.chain.BalanceAt(ctx, account.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to read account balance: %w", err)
	}

	if err := confirmLive(ctx, uc.cfg, uc.confirmer,
		fmt.Sprintf("Call %s() on %s from %s on %s", method, contract.address.Hex(), account.Address.Hex(), uc.cfg.Network.Name)); err != nil {
		return nil, err
	}

	outcome, err := sendAndWait(ctx, uc.chain, uc.progress, uc.cfg.Network, contract, account, data, nil, method)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("withdraw mined", zap.String("method", method), zap.String("tx", outcome.Hash.Hex()))

	endBalance, err := uc.chain.BalanceAt(ctx, account.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to read account balance: %w", err)
	}

	return &WithdrawResult{
		Contract:      contract.address,
		Owner:         account.Address,
		Withdrawn:     contractBalance,
		StartBalance:  startBalance,
		EndBalance:    endBalance,
		BalanceChange: new(big.Int).Sub(endBalance, startBalance),
		Outcome:       outcome,
	}, nil
}
