package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// QuoteParams contains parameters for quoting the minimum contribution
type QuoteParams struct {
	Address string
}

// QuoteResult describes the minimum contribution at the current feed price
type QuoteResult struct {
	Contract    common.Address
	PriceFeed   common.Address
	Answer      *big.Int // raw feed answer
	Decimals    uint8
	EthUsdPrice *big.Int // answer lifted by 1e10, as the contract prices it
	MinimumUSD  *big.Int // 18 decimals
	MinimumWei  *big.Int
}

// Quote computes the smallest accepted contribution from the live price feed
type Quote struct {
	cfg   *config.RuntimeConfig
	chain ChainClient
	store DeploymentStore
}

// NewQuote creates a new Quote use case
func NewQuote(cfg *config.RuntimeConfig, chain ChainClient, store DeploymentStore) *Quote {
	return &Quote{
		cfg:   cfg,
		chain: chain,
		store: store,
	}
}

// Run executes the use case
func (uc *Quote) Run(ctx context.Context, params QuoteParams) (*QuoteResult, error) {
	contract, err := locateFundMe(ctx, uc.chain, uc.store, uc.cfg.Network, params.Address)
	if err != nil {
		return nil, err
	}

	minUSD, err := contract.MinimumUSD(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := contract.PriceFeed(ctx)
	if err != nil {
		return nil, err
	}
	answer, decimals, err := contract.LatestPrice(ctx, feed)
	if err != nil {
		return nil, err
	}

	return &QuoteResult{
		Contract:    contract.address,
		PriceFeed:   feed,
		Answer:      answer,
		Decimals:    decimals,
		EthUsdPrice: bindings.FeedPrice(answer),
		MinimumUSD:  minUSD,
		MinimumWei:  bindings.MinimumContribution(minUSD, answer),
	}, nil
}
