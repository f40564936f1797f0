package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// deploys a contract whose runtime code is a single STOP
var initCode = common.FromHex("0x6001600c60003960016000f300")

func newSimulated(t *testing.T, chainID uint64) (*simulated.Backend, *Client, *models.Account) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := &models.Account{Address: crypto.PubkeyToAddress(key.PublicKey), Key: key}

	sim := simulated.NewBackend(types.GenesisAlloc{
		signer.Address: {Balance: bindings.Ether(100)},
	})
	t.Cleanup(func() { _ = sim.Close() })

	client := NewClientWithBackend(sim.Client(), &config.Network{Name: "simulated", ChainID: chainID}).
		WithPollInterval(10 * time.Millisecond)
	return sim, client, signer
}

func TestClient_DeployAndConfirm(t *testing.T) {
	ctx := context.Background()
	sim, client, signer := newSimulated(t, 1337)

	address, tx, err := client.Deploy(ctx, signer, abi.ABI{}, initCode)
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(signer.Address, 0), address)
	sim.Commit()

	receipt, err := client.WaitConfirmations(ctx, tx, 1)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	assert.Equal(t, address, receipt.ContractAddress)
	assert.Equal(t, 1, client.GasCost(receipt).Sign())

	exists, err := client.HasCode(ctx, address)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.HasCode(ctx, common.HexToAddress("0xdead"))
	require.NoError(t, err)
	assert.False(t, exists)

	out, err := client.Call(ctx, address, nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	t.Run("waits for further blocks", func(t *testing.T) {
		sim.Commit()
		sim.Commit()
		receipt, err := client.WaitConfirmations(ctx, tx, 3)
		require.NoError(t, err)
		assert.Equal(t, address, receipt.ContractAddress)
	})

	t.Run("gives up when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()
		_, err := client.WaitConfirmations(ctx, tx, 50)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestClient_TransactValue(t *testing.T) {
	ctx := context.Background()
	sim, client, signer := newSimulated(t, 1337)
	recipient := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	tx, err := client.Transact(ctx, signer, recipient, nil, bindings.Ether(1))
	require.NoError(t, err)
	sim.Commit()

	receipt, err := client.WaitConfirmations(ctx, tx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), receipt.GasUsed)

	balance, err := client.BalanceAt(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, bindings.Ether(1), balance)

	// sender paid the value plus gas
	senderBalance, err := client.BalanceAt(ctx, signer.Address)
	require.NoError(t, err)
	expected := new(big.Int).Sub(bindings.Ether(99), client.GasCost(receipt))
	assert.Equal(t, expected, senderBalance)
}

func TestClient_TransactToContract(t *testing.T) {
	ctx := context.Background()
	sim, client, signer := newSimulated(t, 1337)

	address, deployTx, err := client.Deploy(ctx, signer, abi.ABI{}, initCode)
	require.NoError(t, err)
	sim.Commit()
	_, err = client.WaitConfirmations(ctx, deployTx, 1)
	require.NoError(t, err)

	// nonce follows the deployment
	tx, err := client.Transact(ctx, signer, address, []byte{0x01, 0x02}, bindings.Ether(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tx.Nonce())
	assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
	sim.Commit()

	receipt, err := client.WaitConfirmations(ctx, tx, 1)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	balance, err := client.BalanceAt(ctx, address)
	require.NoError(t, err)
	assert.Equal(t, bindings.Ether(2), balance)
}

func TestClient_ChainMismatch(t *testing.T) {
	_, client, signer := newSimulated(t, 5)

	_, err := client.ChainID(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNetworkMismatch))

	_, _, err = client.Deploy(context.Background(), signer, abi.ABI{}, initCode)
	assert.True(t, errors.Is(err, domain.ErrNetworkMismatch))
}

func TestClient_NoSigner(t *testing.T) {
	_, client, _ := newSimulated(t, 1337)
	_, err := client.Transact(context.Background(), &models.Account{}, common.Address{}, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrNoSigner))
}

func TestClient_NoRPC(t *testing.T) {
	_, err := NewClient(&config.Network{Name: "nowhere"}).ChainID(context.Background())
	assert.Error(t, err)
}
