package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// fundMeContract reads a deployed FundMe and its price feed through a ChainClient
type fundMeContract struct {
	chain   ChainClient
	address common.Address
	fundMe  *bindings.FundMe
	feed    *bindings.MockV3Aggregator
}

// locateFundMe returns the FundMe at the explicit address, or the one stored for the network
func locateFundMe(ctx context.Context, chain ChainClient, store DeploymentStore, network *config.Network, address string) (*fundMeContract, error) {
	var target common.Address
	switch {
	case address != "":
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("%q: %w", address, domain.ErrInvalidAddress)
		}
		target = common.HexToAddress(address)
	case network == nil:
		return nil, fmt.Errorf("no network selected")
	default:
		deployment, err := store.Get(ctx, network.Name, bindings.FundMeName)
		if err != nil {
			return nil, fmt.Errorf("no FundMe deployment on %s (run deploy first): %w", network.Name, err)
		}
		target = common.HexToAddress(deployment.Address)
	}

	return &fundMeContract{
		chain:   chain,
		address: target,
		fundMe:  bindings.NewFundMe(),
		feed:    bindings.NewMockV3Aggregator(),
	}, nil
}

func (c *fundMeContract) callAddress(ctx context.Context, method string, data []byte) (common.Address, error) {
	out, err := c.chain.Call(ctx, c.address, data)
	if err != nil {
		return common.Address{}, c.decode(method, err)
	}
	return c.fundMe.UnpackAddress(method, out)
}

func (c *fundMeContract) callUint(ctx context.Context, method string, data []byte) (*big.Int, error) {
	out, err := c.chain.Call(ctx, c.address, data)
	if err != nil {
		return nil, c.decode(method, err)
	}
	return c.fundMe.UnpackUint256(method, out)
}

func (c *fundMeContract) Owner(ctx context.Context) (common.Address, error) {
	return c.callAddress(ctx, "getOwner", c.fundMe.PackGetOwner())
}

func (c *fundMeContract) PriceFeed(ctx context.Context) (common.Address, error) {
	return c.callAddress(ctx, "getPriceFeed", c.fundMe.PackGetPriceFeed())
}

func (c *fundMeContract) Funder(ctx context.Context, index int64) (common.Address, error) {
	return c.callAddress(ctx, "getFunder", c.fundMe.PackGetFunder(big.NewInt(index)))
}

func (c *fundMeContract) Version(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, "getVersion", c.fundMe.PackGetVersion())
}

func (c *fundMeContract) MinimumUSD(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, "MINIMUM_USD", c.fundMe.PackMinimumUSD())
}

func (c *fundMeContract) AmountFunded(ctx context.Context, funder common.Address) (*big.Int, error) {
	return c.callUint(ctx, "getAddressToAmountFunded", c.fundMe.PackGetAddressToAmountFunded(funder))
}

// LatestPrice reads the feed's latest answer and decimals
func (c *fundMeContract) LatestPrice(ctx context.Context, feed common.Address) (*big.Int, uint8, error) {
	out, err := c.chain.Call(ctx, feed, c.feed.PackLatestRoundData())
	if err != nil {
		return nil, 0, fmt.Errorf("latestRoundData: %w", err)
	}
	round, err := c.feed.UnpackLatestRoundData(out)
	if err != nil {
		return nil, 0, err
	}

	out, err = c.chain.Call(ctx, feed, c.feed.PackDecimals())
	if err != nil {
		return nil, 0, fmt.Errorf("decimals: %w", err)
	}
	decimals, err := c.feed.UnpackDecimals(out)
	if err != nil {
		return nil, 0, err
	}

	return round.Answer, decimals, nil
}

// decode turns call errors into RevertErrors when the node returned revert data
func (c *fundMeContract) decode(method string, err error) error {
	if rev := bindings.DecodeRevert(err, c.fundMe.ABI()); rev != nil {
		return rev
	}
	return fmt.Errorf("%s: %w", method, err)
}
