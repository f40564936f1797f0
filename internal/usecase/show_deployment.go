package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	// Either a contract name or an address on the selected network
	Name    string
	Address string
}

// ShowDeployment is the use case for showing a stored deployment record
type ShowDeployment struct {
	cfg   *config.RuntimeConfig
	store DeploymentStore
	sink  ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentStore, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		cfg:   cfg,
		store: store,
		sink:  sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*models.Deployment, error) {
	if uc.cfg.Network == nil {
		return nil, fmt.Errorf("no network selected")
	}
	network := uc.cfg.Network.Name

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment details",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete"})

	switch {
	case params.Name != "":
		deployment, err := uc.store.Get(ctx, network, params.Name)
		if err != nil {
			return nil, fmt.Errorf("deployment %s not found on %s: %w", params.Name, network, err)
		}
		return deployment, nil
	case params.Address != "":
		deployments, err := uc.store.List(ctx, domain.DeploymentFilter{Network: network})
		if err != nil {
			return nil, err
		}
		for _, d := range deployments {
			if strings.EqualFold(d.Address, params.Address) {
				return d, nil
			}
		}
		return nil, fmt.Errorf("no deployment at %s on %s: %w", params.Address, network, domain.ErrNotFound)
	default:
		return nil, fmt.Errorf("either a contract name or an address must be provided")
	}
}
