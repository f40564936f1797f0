package usecase

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// AccountBalance pairs a signer with its balance
type AccountBalance struct {
	Account *models.Account
	Balance *big.Int // nil when balances were not requested
}

// ListAccountsParams contains parameters for listing accounts
type ListAccountsParams struct {
	WithBalances bool
}

// ListAccounts lists the signers available on the selected network
type ListAccounts struct {
	accounts AccountProvider
	chain    ChainClient
}

// NewListAccounts creates a new ListAccounts use case
func NewListAccounts(accounts AccountProvider, chain ChainClient) *ListAccounts {
	return &ListAccounts{
		accounts: accounts,
		chain:    chain,
	}
}

// Run executes the use case
func (uc *ListAccounts) Run(ctx context.Context, params ListAccountsParams) ([]AccountBalance, error) {
	signers, err := uc.accounts.Signers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]AccountBalance, len(signers))
	for i, signer := range signers {
		result[i] = AccountBalance{Account: signer}
	}
	if !params.WithBalances {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range result {
		g.Go(func() error {
			balance, err := uc.chain.BalanceAt(gctx, result[i].Account.Address)
			if err != nil {
				return err
			}
			result[i].Balance = balance
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
