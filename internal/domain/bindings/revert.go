package bindings

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/samber/lo"
)

var (
	errorStringSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	panicSelector       = crypto.Keccak256([]byte("Panic(uint256)"))[:4]
)

// RevertError is a decoded EVM revert.
// Exactly one of Reason, ErrorName or PanicCode is set when the payload could be decoded.
type RevertError struct {
	Reason    string   // require(cond, "reason")
	ErrorName string   // custom error, e.g. FundMe__NotOwner
	ErrorArgs []any    // custom error arguments
	PanicCode *big.Int // Panic(uint256)
	Data      []byte   // raw revert payload
	cause     error
}

func (e *RevertError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("execution reverted: %s", e.Reason)
	case e.ErrorName != "":
		return fmt.Sprintf("execution reverted: custom error %s", e.ErrorName)
	case e.PanicCode != nil:
		return fmt.Sprintf("execution reverted: panic code 0x%x", e.PanicCode)
	case len(e.Data) > 0:
		return fmt.Sprintf("execution reverted: %s", hexutil.Encode(e.Data))
	default:
		return "execution reverted"
	}
}

func (e *RevertError) Unwrap() error {
	return e.cause
}

// Matches reports whether the revert carries the given reason string or custom error name.
func (e *RevertError) Matches(reasonOrName string) bool {
	return e.Reason == reasonOrName || e.ErrorName == reasonOrName
}

// DecodeRevert extracts revert information from an RPC error.
// The returned error is nil when err does not describe a revert.
// Custom errors are resolved against the provided ABIs.
func DecodeRevert(err error, abis ...abi.ABI) *RevertError {
	if err == nil {
		return nil
	}

	var existing *RevertError
	if errors.As(err, &existing) {
		return existing
	}

	data, ok := revertData(err)
	if !ok {
		if msg, found := strings.CutPrefix(errorMessageTail(err), "execution reverted"); found {
			return &RevertError{Reason: strings.TrimPrefix(msg, ": "), cause: err}
		}
		return nil
	}

	return decodeRevertData(data, err, abis)
}

// RevertedWith reports whether err is a revert with the given reason or custom error name.
func RevertedWith(err error, reasonOrName string, abis ...abi.ABI) bool {
	rev := DecodeRevert(err, abis...)
	return rev != nil && rev.Matches(reasonOrName)
}

// IsRevert reports whether err describes any EVM revert.
func IsRevert(err error) bool {
	return DecodeRevert(err) != nil
}

func decodeRevertData(data []byte, cause error, abis []abi.ABI) *RevertError {
	rev := &RevertError{Data: data, cause: cause}
	if len(data) < 4 {
		return rev
	}

	selector := data[:4]
	switch {
	case bytes.Equal(selector, errorStringSelector):
		if reason, err := abi.UnpackRevert(data); err == nil {
			rev.Reason = reason
		}
		return rev
	case bytes.Equal(selector, panicSelector):
		if len(data) >= 36 {
			rev.PanicCode = new(big.Int).SetBytes(data[4:36])
		}
		return rev
	}

	for _, contractABI := range abis {
		customErr, found := lo.Find(lo.Values(contractABI.Errors), func(e abi.Error) bool {
			return bytes.Equal(e.ID[:4], selector)
		})
		if !found {
			continue
		}
		rev.ErrorName = customErr.Name
		if args, err := customErr.Inputs.Unpack(data[4:]); err == nil {
			rev.ErrorArgs = args
		}
		return rev
	}
	return rev
}

// revertData pulls the hex payload out of a JSON-RPC data error
func revertData(err error) ([]byte, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}
	raw, ok := dataErr.ErrorData().(string)
	if !ok {
		return nil, false
	}
	data, decodeErr := hexutil.Decode(raw)
	if decodeErr != nil {
		return nil, false
	}
	return data, true
}

func errorMessageTail(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, "execution reverted"); idx >= 0 {
		return msg[idx:]
	}
	return msg
}
