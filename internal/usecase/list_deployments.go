package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Network      string
	ContractName string
	Tag          string
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total     int
	ByNetwork map[string]int
	Verified  int
}

// ListDeployments lists stored deployments
type ListDeployments struct {
	store DeploymentStore
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(store DeploymentStore) *ListDeployments {
	return &ListDeployments{store: store}
}

// Run executes the use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	deployments, err := uc.store.List(ctx, domain.DeploymentFilter{
		Network:      params.Network,
		ContractName: params.ContractName,
		Tag:          params.Tag,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	sort.Slice(deployments, func(i, j int) bool {
		if deployments[i].Network != deployments[j].Network {
			return deployments[i].Network < deployments[j].Network
		}
		return deployments[i].CreatedAt.Before(deployments[j].CreatedAt)
	})

	summary := DeploymentSummary{
		Total:     len(deployments),
		ByNetwork: make(map[string]int),
	}
	for _, d := range deployments {
		summary.ByNetwork[d.Network]++
		if d.IsVerified() {
			summary.Verified++
		}
	}

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     summary,
	}, nil
}
