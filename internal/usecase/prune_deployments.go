package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// PruneDeploymentsParams contains parameters for pruning stale deployments
type PruneDeploymentsParams struct {
	DryRun bool // only report, don't delete
}

// PruneDeploymentsResult contains the result of pruning
type PruneDeploymentsResult struct {
	Network string
	Checked int
	Pruned  []*models.Deployment
}

// PruneDeployments removes records whose contract no longer exists on chain,
// typically after a local node was restarted.
type PruneDeployments struct {
	config   *config.RuntimeConfig
	store    DeploymentStore
	checker  CodeChecker
	progress ProgressSink
}

// NewPruneDeployments creates a new PruneDeployments use case
func NewPruneDeployments(cfg *config.RuntimeConfig, store DeploymentStore, checker CodeChecker, progress ProgressSink) *PruneDeployments {
	if progress == nil {
		progress = NopProgress{}
	}
	return &PruneDeployments{
		config:   cfg,
		store:    store,
		checker:  checker,
		progress: progress,
	}
}

// Run executes the use case
func (uc *PruneDeployments) Run(ctx context.Context, params PruneDeploymentsParams) (*PruneDeploymentsResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("no network selected")
	}
	network := uc.config.Network.Name

	deployments, err := uc.store.List(ctx, domain.DeploymentFilter{Network: network})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "checking",
		Message: fmt.Sprintf("Checking %d deployment(s) on %s", len(deployments), network),
		Spinner: true,
		Total:   len(deployments),
	})

	result := &PruneDeploymentsResult{Network: network, Checked: len(deployments)}
	for i, d := range deployments {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "checking", Current: i + 1, Total: len(deployments), Message: d.Name, Spinner: true})

		exists, err := uc.checker.HasCode(ctx, common.HexToAddress(d.Address))
		if err != nil {
			uc.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
			return nil, fmt.Errorf("failed to check %s: %w", d.ID(), err)
		}
		if exists {
			continue
		}
		result.Pruned = append(result.Pruned, d)
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "done"})

	if params.DryRun {
		return result, nil
	}
	for _, d := range result.Pruned {
		if err := uc.store.Delete(ctx, network, d.Name); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", d.ID(), err)
		}
	}
	return result, nil
}
