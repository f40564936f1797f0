package usecase_test

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

var (
	deployerAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	userAddr     = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	fundMeAddr   = common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
	feedAddr     = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
)

// rpcDataError mimics a JSON-RPC error carrying revert data
type rpcDataError struct {
	data string
}

func (e rpcDataError) Error() string          { return "execution reverted" }
func (e rpcDataError) ErrorCode() int         { return 3 }
func (e rpcDataError) ErrorData() interface{} { return e.data }

func panicRevert(code int64) error {
	data := append(hexutil.MustDecode("0x4e487b71"), common.LeftPadBytes(big.NewInt(code).Bytes(), 32)...)
	return rpcDataError{data: hexutil.Encode(data)}
}

func reasonRevert(reason string) error {
	typ, _ := abi.NewType("string", "", nil)
	packed, _ := abi.Arguments{{Type: typ}}.Pack(reason)
	data := append(hexutil.MustDecode("0x08c379a0"), packed...)
	return rpcDataError{data: hexutil.Encode(data)}
}

// fakeChain is an in-memory ChainClient.
// Calls are answered from a calldata -> return data table.
type fakeChain struct {
	mu        sync.Mutex
	responses map[string][]byte
	balances  map[common.Address]*big.Int
	deployed  []string
	sent      [][]byte
	sendErr   error
	nextAddr  int64
	gasPrice  *big.Int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		responses: make(map[string][]byte),
		balances:  make(map[common.Address]*big.Int),
		gasPrice:  big.NewInt(1_000_000_000),
	}
}

func (f *fakeChain) respond(calldata []byte, output []byte) {
	f.responses[hexutil.Encode(calldata)] = output
}

func (f *fakeChain) ChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(31337), nil
}

func (f *fakeChain) Deploy(ctx context.Context, signer *models.Account, contractABI abi.ABI, bytecode []byte, args ...interface{}) (common.Address, *types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextAddr++
	if _, ok := contractABI.Methods["fund"]; ok {
		f.deployed = append(f.deployed, bindings.FundMeName)
	} else {
		f.deployed = append(f.deployed, bindings.MockV3AggregatorName)
	}
	addr := common.BigToAddress(big.NewInt(0x1000 + f.nextAddr))
	return addr, types.NewTx(&types.LegacyTx{Nonce: uint64(f.nextAddr)}), nil
}

func (f *fakeChain) WaitConfirmations(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	return &types.Receipt{
		Status:            types.ReceiptStatusSuccessful,
		BlockNumber:       big.NewInt(int64(tx.Nonce()) + 1),
		GasUsed:           21000,
		EffectiveGasPrice: f.gasPrice,
		TxHash:            tx.Hash(),
	}, nil
}

func (f *fakeChain) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, ok := f.responses[hexutil.Encode(data)]
	if !ok {
		return nil, panicRevert(0x32)
	}
	return out, nil
}

func (f *fakeChain) Transact(ctx context.Context, signer *models.Account, to common.Address, data []byte, value *big.Int) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, data)
	return types.NewTx(&types.LegacyTx{Nonce: uint64(len(f.sent)), To: &to, Value: value, Data: data}), nil
}

func (f *fakeChain) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.balances[address]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (f *fakeChain) GasCost(receipt *types.Receipt) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), receipt.EffectiveGasPrice)
}

// stubFundMe registers view responses for a FundMe backed by a 2000 USD feed
func stubFundMe(f *fakeChain, funders map[common.Address]*big.Int, order []common.Address) {
	fundMe := bindings.NewFundMe()
	fundMeABI := fundMe.ABI()
	feed := bindings.NewMockV3Aggregator()
	feedABI := feed.ABI()

	pack := func(method string, contractABI abi.ABI, values ...interface{}) []byte {
		out, err := contractABI.Methods[method].Outputs.Pack(values...)
		if err != nil {
			panic(err)
		}
		return out
	}

	f.respond(fundMe.PackGetOwner(), pack("getOwner", fundMeABI, deployerAddr))
	f.respond(fundMe.PackGetPriceFeed(), pack("getPriceFeed", fundMeABI, feedAddr))
	f.respond(fundMe.PackGetVersion(), pack("getVersion", fundMeABI, big.NewInt(4)))
	f.respond(fundMe.PackMinimumUSD(), pack("MINIMUM_USD", fundMeABI, new(big.Int).Mul(big.NewInt(50), bindings.Ether(1))))
	f.respond(feed.PackDecimals(), pack("decimals", feedABI, uint8(8)))
	f.respond(feed.PackLatestRoundData(), pack("latestRoundData", feedABI,
		big.NewInt(1), big.NewInt(200000000000), big.NewInt(1), big.NewInt(1), big.NewInt(1)))

	for i, addr := range order {
		f.respond(fundMe.PackGetFunder(big.NewInt(int64(i))), pack("getFunder", fundMeABI, addr))
	}
	for addr, amount := range funders {
		f.respond(fundMe.PackGetAddressToAmountFunded(addr), pack("getAddressToAmountFunded", fundMeABI, amount))
	}
}

// memoryStore is an in-memory DeploymentStore
type memoryStore struct {
	mu          sync.Mutex
	deployments map[string]*models.Deployment
}

func newMemoryStore() *memoryStore {
	return &memoryStore{deployments: make(map[string]*models.Deployment)}
}

func (s *memoryStore) Get(ctx context.Context, network, name string) (*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deployments[network+"/"+name]
	if !ok {
		return nil, fmt.Errorf("deployment %s/%s: %w", network, name, domain.ErrNotFound)
	}
	return d, nil
}

func (s *memoryStore) Save(ctx context.Context, deployment *models.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deployments[deployment.ID()] = deployment
	return nil
}

func (s *memoryStore) List(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Deployment
	for _, d := range s.deployments {
		if filter.Network != "" && d.Network != filter.Network {
			continue
		}
		if filter.ContractName != "" && d.Name != filter.ContractName {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *memoryStore) Delete(ctx context.Context, network, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deployments, network+"/"+name)
	return nil
}

func (s *memoryStore) Reset(ctx context.Context, network string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range s.deployments {
		if d.Network == network {
			delete(s.deployments, id)
		}
	}
	return nil
}

// staticArtifacts serves the bundled ABIs with placeholder bytecode
type staticArtifacts struct{}

func (staticArtifacts) Load(ctx context.Context, contractName string) (*models.Artifact, error) {
	switch contractName {
	case bindings.FundMeName:
		return &models.Artifact{ContractName: contractName, SourceName: "contracts/FundMe.sol", ABI: []byte(bindings.FundMeABI), Bytecode: []byte{0x60, 0x80}}, nil
	case bindings.MockV3AggregatorName:
		return &models.Artifact{ContractName: contractName, SourceName: "contracts/test/MockV3Aggregator.sol", ABI: []byte(bindings.MockV3AggregatorABI), Bytecode: []byte{0x60, 0x80}}, nil
	}
	return nil, fmt.Errorf("%s: %w", contractName, domain.ErrArtifactNotFound)
}

// fixedAccounts resolves "deployer" to index 0 and "user" to index 1
type fixedAccounts struct{}

func (fixedAccounts) Signers(ctx context.Context) ([]*models.Account, error) {
	return []*models.Account{
		{Index: 0, Name: "deployer", Address: deployerAddr, Source: models.SignerSourceMnemonic},
		{Index: 1, Name: "user", Address: userAddr, Source: models.SignerSourceMnemonic},
	}, nil
}

func (a fixedAccounts) Named(ctx context.Context, name string) (*models.Account, error) {
	signers, _ := a.Signers(ctx)
	for _, s := range signers {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("named account %s: %w", name, domain.ErrNoSigner)
}

// MockVerifier is a mock implementation of ContractVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, req usecase.VerifyRequest) (*models.VerificationInfo, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationInfo), args.Error(1)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// recordingSink collects info and error lines
type recordingSink struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (r *recordingSink) OnProgress(context.Context, usecase.ProgressEvent) {}

func (r *recordingSink) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, message)
}

func (r *recordingSink) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recordingSink) output() string {
	return strings.Join(r.infos, "\n")
}

func devProject() *config.ProjectConfig {
	return &config.ProjectConfig{
		DevelopmentChains: []string{"hardhat", "localhost"},
		NetworkConfig: map[string]config.NetworkEntry{
			"11155111": {Name: "sepolia", EthUsdPriceFeed: "0x694AA1769357215DE4FAC081bf1f309aDC325306"},
		},
		Mocks:         config.MockConfig{Decimals: 8, InitialAnswer: 200000000000},
		NamedAccounts: map[string]int{"deployer": 0, "user": 1},
	}
}

func localhostConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: &config.Network{Name: "localhost", ChainID: 31337, Development: true},
		Project: devProject(),
	}
}

func sepoliaConfig(apiKey string) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: &config.Network{
			Name:               "sepolia",
			ChainID:            11155111,
			BlockConfirmations: 6,
			ExplorerAPIURL:     "https://api-sepolia.etherscan.io/api",
		},
		Project:         devProject(),
		EtherscanAPIKey: apiKey,
	}
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
