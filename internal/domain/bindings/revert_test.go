package bindings

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcDataError mimics the JSON-RPC error returned by ethclient for reverts
type rpcDataError struct {
	msg  string
	data interface{}
}

func (e rpcDataError) Error() string          { return e.msg }
func (e rpcDataError) ErrorCode() int         { return 3 }
func (e rpcDataError) ErrorData() interface{} { return e.data }

func encodeReason(t *testing.T, reason string) []byte {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	return append(append([]byte{}, errorStringSelector...), packed...)
}

func TestDecodeRevert(t *testing.T) {
	fundMe := NewFundMe()

	t.Run("require reason", func(t *testing.T) {
		data := encodeReason(t, ErrMsgNotEnoughETH)
		err := rpcDataError{msg: "execution reverted: Didn't send enough!", data: hexutil.Encode(data)}

		rev := DecodeRevert(err, fundMe.ABI())
		require.NotNil(t, rev)
		assert.Equal(t, ErrMsgNotEnoughETH, rev.Reason)
		assert.True(t, rev.Matches(ErrMsgNotEnoughETH))
		assert.True(t, RevertedWith(err, ErrMsgNotEnoughETH))
	})

	t.Run("custom error", func(t *testing.T) {
		selector := fundMe.ABI().Errors[ErrNameNotOwner].ID.Bytes()[:4]
		err := rpcDataError{msg: "execution reverted", data: hexutil.Encode(selector)}

		rev := DecodeRevert(err, fundMe.ABI())
		require.NotNil(t, rev)
		assert.Equal(t, ErrNameNotOwner, rev.ErrorName)
		assert.Empty(t, rev.Reason)
		assert.Contains(t, rev.Error(), "FundMe__NotOwner")
	})

	t.Run("custom error without abi stays undecoded", func(t *testing.T) {
		selector := fundMe.ABI().Errors[ErrNameNotOwner].ID.Bytes()[:4]
		err := rpcDataError{msg: "execution reverted", data: hexutil.Encode(selector)}

		rev := DecodeRevert(err)
		require.NotNil(t, rev)
		assert.Empty(t, rev.ErrorName)
		assert.False(t, RevertedWith(err, ErrNameNotOwner))
	})

	t.Run("panic code", func(t *testing.T) {
		data := append(append([]byte{}, panicSelector...), make([]byte, 32)...)
		data[len(data)-1] = 0x32
		err := rpcDataError{msg: "execution reverted", data: hexutil.Encode(data)}

		rev := DecodeRevert(err)
		require.NotNil(t, rev)
		assert.Equal(t, big.NewInt(0x32), rev.PanicCode)
		assert.True(t, IsRevert(err))
	})

	t.Run("wrapped error is found", func(t *testing.T) {
		data := encodeReason(t, "nope")
		err := fmt.Errorf("failed to send fund(): %w", rpcDataError{msg: "execution reverted: nope", data: hexutil.Encode(data)})

		rev := DecodeRevert(err)
		require.NotNil(t, rev)
		assert.Equal(t, "nope", rev.Reason)
		assert.NotNil(t, rev.Unwrap())
	})

	t.Run("message only", func(t *testing.T) {
		err := errors.New("estimate gas: execution reverted: Didn't send enough!")
		assert.True(t, RevertedWith(err, ErrMsgNotEnoughETH))
	})

	t.Run("not a revert", func(t *testing.T) {
		assert.Nil(t, DecodeRevert(errors.New("connection refused")))
		assert.Nil(t, DecodeRevert(nil))
		assert.False(t, IsRevert(errors.New("nonce too low")))
	})
}

func TestFundMeBinding(t *testing.T) {
	fundMe := NewFundMe()

	assert.Equal(t, fundMe.ABI().Methods["fund"].ID, fundMe.PackFund())
	assert.Len(t, fundMe.PackGetFunder(big.NewInt(0)), 4+32)
	assert.Len(t, fundMe.PackConstructor(common.Address{1}), 32)

	owner := common.HexToAddress("0xaa00000000000000000000000000000000000000")
	encoded, err := fundMe.ABI().Methods["getOwner"].Outputs.Pack(owner)
	require.NoError(t, err)
	decoded, err := fundMe.UnpackAddress("getOwner", encoded)
	require.NoError(t, err)
	assert.Equal(t, owner, decoded)

	amount, err := fundMe.ABI().Methods["getAddressToAmountFunded"].Outputs.Pack(Ether(1))
	require.NoError(t, err)
	got, err := fundMe.UnpackUint256("getAddressToAmountFunded", amount)
	require.NoError(t, err)
	assert.Equal(t, Ether(1), got)
}

func TestMockV3AggregatorBinding(t *testing.T) {
	agg := NewMockV3Aggregator()

	ctor := agg.PackConstructor(8, big.NewInt(200000000000))
	assert.Len(t, ctor, 64)

	out, err := agg.ABI().Methods["latestRoundData"].Outputs.Pack(
		big.NewInt(1), big.NewInt(200000000000), big.NewInt(10), big.NewInt(11), big.NewInt(1),
	)
	require.NoError(t, err)
	round, err := agg.UnpackLatestRoundData(out)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200000000000), round.Answer)

	dec, err := agg.ABI().Methods["decimals"].Outputs.Pack(uint8(8))
	require.NoError(t, err)
	decimals, err := agg.UnpackDecimals(dec)
	require.NoError(t, err)
	assert.Equal(t, uint8(8), decimals)
}
