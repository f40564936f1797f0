package bindings

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// MockV3AggregatorABI is the input ABI used to generate the binding from.
// It covers both the mock and the AggregatorV3Interface read surface.
const MockV3AggregatorABI = `[
{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"_decimals","type":"uint8","internalType":"uint8"},{"name":"_initialAnswer","type":"int256","internalType":"int256"}]},
{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8","internalType":"uint8"}]},
{"type":"function","name":"description","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string","internalType":"string"}]},
{"type":"function","name":"latestAnswer","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"int256","internalType":"int256"}]},
{"type":"function","name":"latestRound","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
{"type":"function","name":"latestRoundData","stateMutability":"view","inputs":[],"outputs":[{"name":"roundId","type":"uint80","internalType":"uint80"},{"name":"answer","type":"int256","internalType":"int256"},{"name":"startedAt","type":"uint256","internalType":"uint256"},{"name":"updatedAt","type":"uint256","internalType":"uint256"},{"name":"answeredInRound","type":"uint80","internalType":"uint80"}]},
{"type":"function","name":"updateAnswer","stateMutability":"nonpayable","inputs":[{"name":"_answer","type":"int256","internalType":"int256"}],"outputs":[]},
{"type":"function","name":"version","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256","internalType":"uint256"}]}
]`

var (
	aggregatorOnce   sync.Once
	aggregatorParsed abi.ABI
)

// RoundData is the output of latestRoundData
type RoundData struct {
	RoundId         *big.Int
	Answer          *big.Int
	StartedAt       *big.Int
	UpdatedAt       *big.Int
	AnsweredInRound *big.Int
}

// MockV3Aggregator is a Go binding around the MockV3Aggregator contract ABI.
type MockV3Aggregator struct {
	abi abi.ABI
}

// NewMockV3Aggregator creates a new instance of MockV3Aggregator.
func NewMockV3Aggregator() *MockV3Aggregator {
	aggregatorOnce.Do(func() {
		parsed, err := abi.JSON(strings.NewReader(MockV3AggregatorABI))
		if err != nil {
			panic(errors.New("invalid ABI: " + err.Error()))
		}
		aggregatorParsed = parsed
	})
	return &MockV3Aggregator{abi: aggregatorParsed}
}

// ABI returns the parsed contract ABI
func (m *MockV3Aggregator) ABI() abi.ABI {
	return m.abi
}

// PackConstructor packs the constructor arguments.
//
// Solidity: constructor(uint8 _decimals, int256 _initialAnswer)
func (m *MockV3Aggregator) PackConstructor(decimals uint8, initialAnswer *big.Int) []byte {
	enc, err := m.abi.Pack("", decimals, initialAnswer)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackLatestRoundData packs a call to latestRoundData.
func (m *MockV3Aggregator) PackLatestRoundData() []byte {
	enc, err := m.abi.Pack("latestRoundData")
	if err != nil {
		panic(err)
	}
	return enc
}

// PackDecimals packs a call to decimals.
func (m *MockV3Aggregator) PackDecimals() []byte {
	enc, err := m.abi.Pack("decimals")
	if err != nil {
		panic(err)
	}
	return enc
}

// PackUpdateAnswer packs a call to updateAnswer.
func (m *MockV3Aggregator) PackUpdateAnswer(answer *big.Int) []byte {
	enc, err := m.abi.Pack("updateAnswer", answer)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackLatestRoundData unpacks the latestRoundData return values.
func (m *MockV3Aggregator) UnpackLatestRoundData(data []byte) (*RoundData, error) {
	out, err := m.abi.Unpack("latestRoundData", data)
	if err != nil {
		return nil, err
	}
	if len(out) != 5 {
		return nil, fmt.Errorf("latestRoundData: expected 5 outputs, got %d", len(out))
	}
	return &RoundData{
		RoundId:         abi.ConvertType(out[0], new(big.Int)).(*big.Int),
		Answer:          abi.ConvertType(out[1], new(big.Int)).(*big.Int),
		StartedAt:       abi.ConvertType(out[2], new(big.Int)).(*big.Int),
		UpdatedAt:       abi.ConvertType(out[3], new(big.Int)).(*big.Int),
		AnsweredInRound: abi.ConvertType(out[4], new(big.Int)).(*big.Int),
	}, nil
}

// UnpackDecimals unpacks the decimals return value.
func (m *MockV3Aggregator) UnpackDecimals(data []byte) (uint8, error) {
	out, err := m.abi.Unpack("decimals", data)
	if err != nil {
		return 0, err
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("decimals: expected 1 output, got %d", len(out))
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}
