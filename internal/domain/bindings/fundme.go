package bindings

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// FundMeABI is the input ABI used to generate the binding from.
const FundMeABI = `[
{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"priceFeed","type":"address","internalType":"address"}]},
{"type":"error","name":"FundMe__NotOwner","inputs":[]},
{"type":"fallback","stateMutability":"payable"},
{"type":"receive","stateMutability":"payable"},
{"type":"function","name":"MINIMUM_USD","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
{"type":"function","name":"cheaperWithdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]},
{"type":"function","name":"fund","stateMutability":"payable","inputs":[],"outputs":[]},
{"type":"function","name":"getAddressToAmountFunded","stateMutability":"view","inputs":[{"name":"fundingAddress","type":"address","internalType":"address"}],"outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
{"type":"function","name":"getFunder","stateMutability":"view","inputs":[{"name":"index","type":"uint256","internalType":"uint256"}],"outputs":[{"name":"","type":"address","internalType":"address"}]},
{"type":"function","name":"getOwner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address","internalType":"address"}]},
{"type":"function","name":"getPriceFeed","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address","internalType":"contract AggregatorV3Interface"}]},
{"type":"function","name":"getVersion","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

// Contract names as they appear in compiled artifacts
const (
	FundMeName           = "FundMe"
	MockV3AggregatorName = "MockV3Aggregator"
)

// Revert identifiers raised by FundMe
const (
	ErrMsgNotEnoughETH = "Didn't send enough!"
	ErrNameNotOwner    = "FundMe__NotOwner"
)

var (
	fundMeOnce   sync.Once
	fundMeParsed abi.ABI
)

// FundMe is a Go binding around the FundMe contract ABI.
type FundMe struct {
	abi abi.ABI
}

// NewFundMe creates a new instance of FundMe.
func NewFundMe() *FundMe {
	fundMeOnce.Do(func() {
		parsed, err := abi.JSON(strings.NewReader(FundMeABI))
		if err != nil {
			panic(errors.New("invalid ABI: " + err.Error()))
		}
		fundMeParsed = parsed
	})
	return &FundMe{abi: fundMeParsed}
}

// ABI returns the parsed contract ABI
func (f *FundMe) ABI() abi.ABI {
	return f.abi
}

// PackConstructor packs the constructor arguments.
//
// Solidity: constructor(address priceFeed)
func (f *FundMe) PackConstructor(priceFeed common.Address) []byte {
	enc, err := f.abi.Pack("", priceFeed)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackFund is the Go binding used to pack the parameters required for calling
// the contract method with ID 0xb60d4288.
//
// Solidity: function fund() payable returns()
func (f *FundMe) PackFund() []byte {
	return f.mustPack("fund")
}

// PackWithdraw packs a call to withdraw.
//
// Solidity: function withdraw() returns()
func (f *FundMe) PackWithdraw() []byte {
	return f.mustPack("withdraw")
}

// PackCheaperWithdraw packs a call to cheaperWithdraw.
//
// Solidity: function cheaperWithdraw() returns()
func (f *FundMe) PackCheaperWithdraw() []byte {
	return f.mustPack("cheaperWithdraw")
}

// PackGetOwner packs a call to getOwner.
//
// Solidity: function getOwner() view returns(address)
func (f *FundMe) PackGetOwner() []byte {
	return f.mustPack("getOwner")
}

// PackGetPriceFeed packs a call to getPriceFeed.
//
// Solidity: function getPriceFeed() view returns(address)
func (f *FundMe) PackGetPriceFeed() []byte {
	return f.mustPack("getPriceFeed")
}

// PackGetVersion packs a call to getVersion.
//
// Solidity: function getVersion() view returns(uint256)
func (f *FundMe) PackGetVersion() []byte {
	return f.mustPack("getVersion")
}

// PackMinimumUSD packs a call to MINIMUM_USD.
//
// Solidity: function MINIMUM_USD() view returns(uint256)
func (f *FundMe) PackMinimumUSD() []byte {
	return f.mustPack("MINIMUM_USD")
}

// PackGetFunder packs a call to getFunder.
//
// Solidity: function getFunder(uint256 index) view returns(address)
func (f *FundMe) PackGetFunder(index *big.Int) []byte {
	return f.mustPack("getFunder", index)
}

// PackGetAddressToAmountFunded packs a call to getAddressToAmountFunded.
//
// Solidity: function getAddressToAmountFunded(address fundingAddress) view returns(uint256)
func (f *FundMe) PackGetAddressToAmountFunded(funder common.Address) []byte {
	return f.mustPack("getAddressToAmountFunded", funder)
}

// UnpackAddress unpacks the single address returned by getOwner, getPriceFeed and getFunder.
func (f *FundMe) UnpackAddress(method string, data []byte) (common.Address, error) {
	out, err := f.abi.Unpack(method, data)
	if err != nil {
		return common.Address{}, err
	}
	if len(out) != 1 {
		return common.Address{}, fmt.Errorf("%s: expected 1 output, got %d", method, len(out))
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// UnpackUint256 unpacks the single uint256 returned by getVersion, MINIMUM_USD and getAddressToAmountFunded.
func (f *FundMe) UnpackUint256(method string, data []byte) (*big.Int, error) {
	out, err := f.abi.Unpack(method, data)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%s: expected 1 output, got %d", method, len(out))
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

func (f *FundMe) mustPack(method string, args ...interface{}) []byte {
	enc, err := f.abi.Pack(method, args...)
	if err != nil {
		panic(err)
	}
	return enc
}
