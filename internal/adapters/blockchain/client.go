package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// Backend is the node surface the client needs. Both *ethclient.Client and
// the simulated backend's client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Client implements ChainClient using go-ethereum
type Client struct {
	network      *config.Network
	pollInterval time.Duration

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewClient creates a client for the network. The RPC connection is opened on first use.
func NewClient(network *config.Network) *Client {
	return &Client{
		network:      network,
		pollInterval: time.Second,
	}
}

// NewClientWithBackend creates a client over an already connected backend
func NewClientWithBackend(backend Backend, network *config.Network) *Client {
	c := NewClient(network)
	c.backend = backend
	return c
}

// WithPollInterval sets how often receipts and block heights are polled
func (c *Client) WithPollInterval(d time.Duration) *Client {
	c.pollInterval = d
	return c
}

// connect dials the network and checks the node serves the expected chain
func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		if c.network == nil || c.network.RPCURL == "" {
			return nil, fmt.Errorf("no RPC URL configured")
		}
		client, err := ethclient.DialContext(ctx, c.network.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.backend = client
	}

	if c.chainID == nil {
		chainID, err := c.backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
		if c.network != nil && c.network.ChainID != 0 && chainID.Uint64() != c.network.ChainID {
			return nil, fmt.Errorf("%s: expected chain %d, node reports %d: %w",
				c.network.Name, c.network.ChainID, chainID.Uint64(), domain.ErrNetworkMismatch)
		}
		c.chainID = chainID
	}

	return c.backend, nil
}

// ChainID returns the chain ID reported by the node
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	if _, err := c.connect(ctx); err != nil {
		return nil, err
	}
	return new(big.Int).Set(c.chainID), nil
}

// Deploy sends a contract creation transaction
func (c *Client) Deploy(ctx context.Context, signer *models.Account, contractABI abi.ABI, bytecode []byte, args ...interface{}) (common.Address, *types.Transaction, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return common.Address{}, nil, err
	}
	opts, err := c.transactOpts(ctx, signer)
	if err != nil {
		return common.Address{}, nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, contractABI, bytecode, backend, args...)
	if err != nil {
		return common.Address{}, nil, err
	}
	return address, tx, nil
}

// Transact signs and sends a transaction carrying data and an optional value.
// The destination may be a contract or a plain account.
func (c *Client) Transact(ctx context.Context, signer *models.Account, to common.Address, data []byte, value *big.Int) (*types.Transaction, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := c.transactOpts(ctx, signer)
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := backend.PendingNonceAt(ctx, opts.From)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasLimit, err := backend.EstimateGas(ctx, ethereum.CallMsg{From: opts.From, To: &to, Value: value, Data: data})
	if err != nil {
		return nil, err
	}

	var txData types.TxData
	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	if head.BaseFee != nil {
		tip, err := backend.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
		}
		txData = &types.DynamicFeeTx{
			ChainID:   c.chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2))),
			Gas:       gasLimit,
			To:        &to,
			Value:     value,
			Data:      data,
		}
	} else {
		gasPrice, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas price: %w", err)
		}
		txData = &types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gasLimit,
			To:       &to,
			Value:    value,
			Data:     data,
		}
	}

	tx, err := opts.Signer(opts.From, types.NewTx(txData))
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := backend.SendTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Call executes a read-only call against the latest block
func (c *Client) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// BalanceAt returns the latest balance of an address
func (c *Client) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return backend.BalanceAt(ctx, address, nil)
}

// WaitConfirmations waits until the transaction is mined and buried under
// confirmations-1 further blocks.
func (c *Client) WaitConfirmations(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := c.waitReceipt(ctx, backend, tx.Hash())
	if err != nil {
		return nil, err
	}
	if confirmations <= 1 {
		return receipt, nil
	}

	target := receipt.BlockNumber.Uint64() + confirmations - 1
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		head, err := backend.BlockNumber(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("waiting for %d confirmations of %s: %w", confirmations, tx.Hash().Hex(), ctx.Err())
			}
			return nil, fmt.Errorf("failed to get block number: %w", err)
		}
		if head >= target {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %d confirmations of %s: %w", confirmations, tx.Hash().Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) waitReceipt(ctx context.Context, backend Backend, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		receipt, err := backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("waiting for %s to be mined: %w", hash.Hex(), ctx.Err())
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt for %s: %w", hash.Hex(), err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s to be mined: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// GasCost returns gasUsed * effectiveGasPrice for a mined transaction
func (c *Client) GasCost(receipt *types.Receipt) *big.Int {
	if receipt == nil || receipt.EffectiveGasPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), receipt.EffectiveGasPrice)
}

// HasCode reports whether a contract exists at the given address
func (c *Client) HasCode(ctx context.Context, address common.Address) (bool, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return false, err
	}
	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

func (c *Client) transactOpts(ctx context.Context, signer *models.Account) (*bind.TransactOpts, error) {
	if signer == nil || signer.Key == nil {
		return nil, domain.ErrNoSigner
	}
	opts, err := bind.NewKeyedTransactorWithChainID(signer.Key, c.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

var _ usecase.ChainClient = (*Client)(nil)
