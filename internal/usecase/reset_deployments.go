package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// ResetDeploymentsParams contains parameters for resetting stored deployments
type ResetDeploymentsParams struct {
	DryRun bool // If true, only collect records without deleting them
}

// ResetDeploymentsResult lists the records removed, or that would be removed
type ResetDeploymentsResult struct {
	Network     string
	Deployments []*models.Deployment
}

// ResetDeployments removes every stored deployment of the selected network
type ResetDeployments struct {
	config    *config.RuntimeConfig
	store     DeploymentStore
	confirmer Confirmer
}

// NewResetDeployments creates a new ResetDeployments use case
func NewResetDeployments(cfg *config.RuntimeConfig, store DeploymentStore, confirmer Confirmer) *ResetDeployments {
	return &ResetDeployments{
		config:    cfg,
		store:     store,
		confirmer: confirmer,
	}
}

// Run executes the reset. Live networks ask for confirmation first.
func (uc *ResetDeployments) Run(ctx context.Context, params ResetDeploymentsParams) (*ResetDeploymentsResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("network is required for reset")
	}
	network := uc.config.Network

	deployments, err := uc.store.List(ctx, domain.DeploymentFilter{Network: network.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	result := &ResetDeploymentsResult{Network: network.Name, Deployments: deployments}
	if len(deployments) == 0 || params.DryRun {
		return result, nil
	}

	if !network.Development && !uc.config.NonInteractive {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Forget %d deployment(s) on %s", len(deployments), network.Name))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrCancelled
		}
	}

	if err := uc.store.Reset(ctx, network.Name); err != nil {
		return nil, fmt.Errorf("failed to reset deployments: %w", err)
	}
	return result, nil
}
