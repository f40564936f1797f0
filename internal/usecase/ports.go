package usecase

import (
	"context"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// ChainClient is the deploy primitive and contract interaction surface of a network
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	Deploy(ctx context.Context, signer *models.Account, contractABI abi.ABI, bytecode []byte, args ...interface{}) (common.Address, *types.Transaction, error)
	WaitConfirmations(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error)
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	Transact(ctx context.Context, signer *models.Account, to common.Address, data []byte, value *big.Int) (*types.Transaction, error)
	BalanceAt(ctx context.Context, address common.Address) (*big.Int, error)
	GasCost(receipt *types.Receipt) *big.Int
}

// DeploymentStore handles persistence of deployments
type DeploymentStore interface {
	Get(ctx context.Context, network, name string) (*models.Deployment, error)
	Save(ctx context.Context, deployment *models.Deployment) error
	List(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	Delete(ctx context.Context, network, name string) error
	Reset(ctx context.Context, network string) error
}

// ArtifactLoader provides access to compiled contracts
type ArtifactLoader interface {
	Load(ctx context.Context, contractName string) (*models.Artifact, error)
}

// AccountProvider resolves the signers of the selected network
type AccountProvider interface {
	Signers(ctx context.Context) ([]*models.Account, error)
	Named(ctx context.Context, name string) (*models.Account, error)
}

// VerifyRequest describes a contract to verify on a block explorer
type VerifyRequest struct {
	Network         *config.Network
	APIKey          string
	Address         common.Address
	Artifact        *models.Artifact
	ConstructorArgs string // ABI-encoded, 0x-prefixed
}

// ContractVerifier handles contract verification
type ContractVerifier interface {
	Verify(ctx context.Context, req VerifyRequest) (*models.VerificationInfo, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
	FetchChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// AnvilManager manages local anvil node instances
type AnvilManager interface {
	Start(ctx context.Context, instance *domain.AnvilInstance) error
	Stop(ctx context.Context, instance *domain.AnvilInstance) error
	GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error)
	StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error
	TakeSnapshot(ctx context.Context, rpcURL string) (string, error)
	RevertSnapshot(ctx context.Context, rpcURL, snapshotID string) error
}

// Confirmer asks the user before state-changing operations on live networks
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// DeploymentSelector lets the user pick one of several deployments
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// CodeChecker reports whether a contract is still deployed at an address
type CodeChecker interface {
	HasCode(ctx context.Context, address common.Address) (bool, error)
}

// FileWriter writes project files relative to the project root
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content string) error
	FileExists(ctx context.Context, path string) (bool, error)
	EnsureDirectory(ctx context.Context, path string) error
}

// LocalConfigStore persists per-checkout settings
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	GetPath() string
}

// Compiler builds the project's contracts
type Compiler interface {
	Available() bool
	Build(ctx context.Context, out io.Writer) error
}
