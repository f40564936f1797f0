package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Funder is a single entry of the on-chain funder list
type Funder struct {
	Index   int            `json:"index" yaml:"index"`
	Address common.Address `json:"address" yaml:"address"`
	Amount  *big.Int       `json:"amount" yaml:"amount"`
}

// FundMeState is a snapshot of a deployed FundMe contract
type FundMeState struct {
	Network     string         `json:"network" yaml:"network"`
	Address     common.Address `json:"address" yaml:"address"`
	Owner       common.Address `json:"owner" yaml:"owner"`
	PriceFeed   common.Address `json:"priceFeed" yaml:"priceFeed"`
	FeedVersion *big.Int       `json:"feedVersion" yaml:"feedVersion"`
	MinimumUSD  *big.Int       `json:"minimumUsd" yaml:"minimumUsd"`
	EthUsdPrice *big.Int       `json:"ethUsdPrice" yaml:"ethUsdPrice"`
	Decimals    uint8          `json:"decimals" yaml:"decimals"`
	Balance     *big.Int       `json:"balance" yaml:"balance"`
	Funders     []Funder       `json:"funders" yaml:"funders"`
}

// TxOutcome summarises a mined state-changing transaction
type TxOutcome struct {
	Hash        common.Hash `json:"hash"`
	BlockNumber uint64      `json:"blockNumber"`
	GasUsed     uint64      `json:"gasUsed"`
	GasCost     *big.Int    `json:"gasCost"` // gasUsed * effectiveGasPrice
}
