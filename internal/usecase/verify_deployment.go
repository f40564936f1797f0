package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// VerifyDeployment handles contract verification on block explorers
type VerifyDeployment struct {
	cfg              *config.RuntimeConfig
	deploymentStore  DeploymentStore
	artifactLoader   ArtifactLoader
	contractVerifier ContractVerifier
	selector         DeploymentSelector
	progress         ProgressSink
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	deploymentStore DeploymentStore,
	artifactLoader ArtifactLoader,
	contractVerifier ContractVerifier,
	selector DeploymentSelector,
	progress ProgressSink,
) *VerifyDeployment {
	return &VerifyDeployment{
		cfg:              cfg,
		deploymentStore:  deploymentStore,
		artifactLoader:   artifactLoader,
		contractVerifier: contractVerifier,
		selector:         selector,
		progress:         progress,
	}
}

// VerifyOptions contains options for verification
type VerifyOptions struct {
	ContractName string // defaults to FundMe
	Force        bool   // Re-verify even if already verified
	Select       bool   // pick the deployment interactively
}

// VerifyResult contains the result of verification
type VerifyResult struct {
	Deployment *models.Deployment
	Skipped    bool
	Success    bool
	Message    string
}

// Run verifies a stored deployment of the selected network
func (v *VerifyDeployment) Run(ctx context.Context, options VerifyOptions) (*VerifyResult, error) {
	network := v.cfg.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected")
	}
	if network.Development {
		return nil, fmt.Errorf("cannot verify on %s: %w", network.Name, domain.ErrNotDevelopmentChain)
	}
	if v.cfg.EtherscanAPIKey == "" {
		return nil, fmt.Errorf("ETHERSCAN_API_KEY is not set")
	}

	deployment, err := v.resolveDeployment(ctx, network.Name, options)
	if err != nil {
		return nil, err
	}

	if deployment.IsVerified() && !options.Force {
		return &VerifyResult{
			Deployment: deployment,
			Skipped:    true,
			Success:    true,
			Message:    "Already verified",
		}, nil
	}

	v.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "verifying",
		Message: fmt.Sprintf("Verifying %s at %s...", deployment.Name, deployment.Address),
		Spinner: true,
	})
	err = verifyAndRecord(ctx, v.artifactLoader, v.contractVerifier, v.deploymentStore, network, v.cfg.EtherscanAPIKey, deployment)
	v.progress.OnProgress(ctx, ProgressEvent{Stage: "done"})

	result := &VerifyResult{
		Deployment: deployment,
		Success:    err == nil,
		Message:    deployment.Verification.Reason,
	}
	if err != nil {
		result.Message = err.Error()
	}
	return result, nil
}

func (v *VerifyDeployment) resolveDeployment(ctx context.Context, network string, options VerifyOptions) (*models.Deployment, error) {
	if options.Select && options.ContractName == "" {
		if v.selector == nil || v.cfg.NonInteractive {
			return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
		}
		deployments, err := v.deploymentStore.List(ctx, domain.DeploymentFilter{Network: network})
		if err != nil {
			return nil, err
		}
		if len(deployments) == 0 {
			return nil, fmt.Errorf("no deployments on %s: %w", network, domain.ErrNotFound)
		}
		if len(deployments) == 1 {
			return deployments[0], nil
		}
		return v.selector.SelectDeployment(ctx, deployments, fmt.Sprintf("Select a deployment to verify on %s", network))
	}

	name := options.ContractName
	if name == "" {
		name = bindings.FundMeName
	}
	deployment, err := v.deploymentStore.Get(ctx, network, name)
	if err != nil {
		return nil, fmt.Errorf("deployment %s not found on %s: %w", name, network, err)
	}
	return deployment, nil
}
