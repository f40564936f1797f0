package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// DeployEnv is the environment handed to each deploy step
type DeployEnv struct {
	Network *config.Network
	Project *config.ProjectConfig
	APIKey  string

	chain     ChainClient
	store     DeploymentStore
	artifacts ArtifactLoader
	accounts  AccountProvider
	verifier  ContractVerifier
	progress  ProgressSink
	log       *zap.Logger

	deployed map[string]*models.Deployment
}

// DeployOptions describes a single contract deployment
type DeployOptions struct {
	Contract      string
	From          *models.Account
	Args          []interface{}
	Confirmations uint64
	Tags          []string
}

// Log prints a line to the user
func (e *DeployEnv) Log(message string) {
	e.progress.Info(message)
}

// NamedAccount resolves a named account such as "deployer"
func (e *DeployEnv) NamedAccount(ctx context.Context, name string) (*models.Account, error) {
	return e.accounts.Named(ctx, name)
}

// Get returns the stored deployment of a contract on the current network
func (e *DeployEnv) Get(ctx context.Context, contract string) (*models.Deployment, error) {
	return e.store.Get(ctx, e.Network.Name, contract)
}

// Deploy deploys a contract from its artifact, waits for confirmations, and
// records the deployment.
func (e *DeployEnv) Deploy(ctx context.Context, opts DeployOptions) (*models.Deployment, error) {
	if opts.From == nil {
		return nil, fmt.Errorf("no signer for %s deployment", opts.Contract)
	}

	artifact, err := e.artifacts.Load(ctx, opts.Contract)
	if err != nil {
		return nil, err
	}

	contractABI, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s ABI: %w", opts.Contract, err)
	}

	encodedArgs, err := contractABI.Pack("", opts.Args...)
	if err != nil {
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", opts.Contract, err)
	}

	e.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s...", opts.Contract),
		Spinner: true,
	})
	address, tx, err := e.chain.Deploy(ctx, opts.From, contractABI, artifact.Bytecode, opts.Args...)
	if err != nil {
		e.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, fmt.Errorf("failed to deploy %s: %w", opts.Contract, err)
	}
	e.log.Debug("deployment sent",
		zap.String("contract", opts.Contract),
		zap.String("tx", tx.Hash().Hex()),
		zap.String("address", address.Hex()))

	confirmations := opts.Confirmations
	if confirmations == 0 {
		confirmations = e.Network.Confirmations()
	}
	e.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "confirming",
		Message: fmt.Sprintf("Waiting for %d confirmation(s)...", confirmations),
		Spinner: true,
	})
	receipt, err := e.chain.WaitConfirmations(ctx, tx, confirmations)
	e.progress.OnProgress(ctx, ProgressEvent{Stage: "mined"})
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s deployment: %w", opts.Contract, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s deployment transaction %s reverted", opts.Contract, tx.Hash().Hex())
	}

	now := time.Now()
	deployment := &models.Deployment{
		Name:            opts.Contract,
		Address:         address.Hex(),
		ABI:             json.RawMessage(artifact.ABI),
		Args:            lo.Map(opts.Args, func(arg interface{}, _ int) string { return formatArg(arg) }),
		ConstructorArgs: hexutil.Encode(encodedArgs),
		TransactionHash: tx.Hash().Hex(),
		Receipt: &models.Receipt{
			BlockNumber:       receipt.BlockNumber.Uint64(),
			GasUsed:           receipt.GasUsed,
			EffectiveGasPrice: e.effectiveGasPrice(receipt),
			Status:            receipt.Status,
			Confirmations:     confirmations,
		},
		Network:  e.Network.Name,
		ChainID:  e.Network.ChainID,
		Deployer: opts.From.Address.Hex(),
		Bytecode: hexutil.Encode(artifact.Bytecode),
		Tags:     opts.Tags,
		Artifact: models.ArtifactInfo{
			Path:            artifact.FullyQualifiedName(),
			CompilerVersion: artifact.CompilerVersion,
		},
		Verification: models.VerificationInfo{
			Status: models.VerificationStatusUnverified,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := e.store.Save(ctx, deployment); err != nil {
		return nil, fmt.Errorf("failed to save %s deployment: %w", opts.Contract, err)
	}
	e.deployed[deployment.Name] = deployment

	return deployment, nil
}

// Verify submits a deployment to the network's explorer and records the outcome.
// Failures are logged and recorded, never returned.
func (e *DeployEnv) Verify(ctx context.Context, deployment *models.Deployment) {
	e.Log("Verifying contract...")
	err := verifyAndRecord(ctx, e.artifacts, e.verifier, e.store, e.Network, e.APIKey, deployment)
	if err != nil {
		e.log.Warn("verification failed", zap.String("contract", deployment.Name), zap.Error(err))
		e.progress.Error(err.Error())
		return
	}
	if deployment.Verification.Reason != "" {
		e.Log(deployment.Verification.Reason)
	}
}

func (e *DeployEnv) effectiveGasPrice(receipt *types.Receipt) string {
	if receipt.EffectiveGasPrice == nil {
		return "0"
	}
	return receipt.EffectiveGasPrice.String()
}

// verifyAndRecord verifies a deployment and writes the outcome back to the store
func verifyAndRecord(
	ctx context.Context,
	artifacts ArtifactLoader,
	verifier ContractVerifier,
	store DeploymentStore,
	network *config.Network,
	apiKey string,
	deployment *models.Deployment,
) error {
	artifact, err := artifacts.Load(ctx, deployment.Name)
	if err != nil {
		return err
	}

	info, verifyErr := verifier.Verify(ctx, VerifyRequest{
		Network:         network,
		APIKey:          apiKey,
		Address:         common.HexToAddress(deployment.Address),
		Artifact:        artifact,
		ConstructorArgs: deployment.ConstructorArgs,
	})
	if verifyErr != nil {
		deployment.Verification = models.VerificationInfo{
			Status: models.VerificationStatusFailed,
			Reason: verifyErr.Error(),
		}
	} else {
		deployment.Verification = *info
	}
	deployment.UpdatedAt = time.Now()

	if err := store.Save(ctx, deployment); err != nil {
		return fmt.Errorf("failed to record verification: %w", err)
	}
	return verifyErr
}

// formatArg renders a constructor argument the way it is logged and stored
func formatArg(arg interface{}) string {
	switch v := arg.(type) {
	case common.Address:
		return v.Hex()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
