package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// defaultMaxFunders bounds the getFunder probe when no limit is given
const defaultMaxFunders = 256

// ShowFundMeParams contains parameters for reading FundMe state
type ShowFundMeParams struct {
	Address    string
	MaxFunders int
}

// ShowFundMe reads a snapshot of a deployed FundMe contract
type ShowFundMe struct {
	cfg   *config.RuntimeConfig
	chain ChainClient
	store DeploymentStore
}

// NewShowFundMe creates a new ShowFundMe use case
func NewShowFundMe(cfg *config.RuntimeConfig, chain ChainClient, store DeploymentStore) *ShowFundMe {
	return &ShowFundMe{
		cfg:   cfg,
		chain: chain,
		store: store,
	}
}

// Run executes the use case
func (uc *ShowFundMe) Run(ctx context.Context, params ShowFundMeParams) (*models.FundMeState, error) {
	contract, err := locateFundMe(ctx, uc.chain, uc.store, uc.cfg.Network, params.Address)
	if err != nil {
		return nil, err
	}

	state := &models.FundMeState{Address: contract.address}
	if uc.cfg.Network != nil {
		state.Network = uc.cfg.Network.Name
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		state.Owner, err = contract.Owner(gctx)
		return err
	})
	g.Go(func() (err error) {
		state.MinimumUSD, err = contract.MinimumUSD(gctx)
		return err
	})
	g.Go(func() (err error) {
		state.FeedVersion, err = contract.Version(gctx)
		return err
	})
	g.Go(func() (err error) {
		state.Balance, err = uc.chain.BalanceAt(gctx, contract.address)
		return err
	})
	g.Go(func() error {
		feed, err := contract.PriceFeed(gctx)
		if err != nil {
			return err
		}
		state.PriceFeed = feed
		answer, decimals, err := contract.LatestPrice(gctx, feed)
		if err != nil {
			return err
		}
		state.EthUsdPrice, state.Decimals = answer, decimals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read FundMe at %s: %w", contract.address.Hex(), err)
	}

	funders, err := uc.readFunders(ctx, contract, params.MaxFunders)
	if err != nil {
		return nil, err
	}
	state.Funders = funders

	return state, nil
}

// readFunders walks getFunder(i) until it reverts, then fetches amounts concurrently
func (uc *ShowFundMe) readFunders(ctx context.Context, contract *fundMeContract, limit int) ([]models.Funder, error) {
	if limit <= 0 {
		limit = defaultMaxFunders
	}

	var addresses []common.Address
	for i := 0; i < limit; i++ {
		funder, err := contract.Funder(ctx, int64(i))
		if err != nil {
			if bindings.IsRevert(err) {
				break
			}
			return nil, err
		}
		addresses = append(addresses, funder)
	}

	funders := make([]models.Funder, len(addresses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, address := range addresses {
		g.Go(func() error {
			amount, err := contract.AmountFunded(gctx, address)
			if err != nil {
				return err
			}
			funders[i] = models.Funder{Index: i, Address: address, Amount: amount}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return funders, nil
}
