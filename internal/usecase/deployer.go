package usecase

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// DeployStep is a single tagged unit of the deployment procedure
type DeployStep struct {
	Name string
	Tags []string
	Run  func(ctx context.Context, env *DeployEnv) error
}

// Matches reports whether the step carries any of the requested tags.
// An empty tag list selects every step.
func (s DeployStep) Matches(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if slices.Contains(s.Tags, tag) {
			return true
		}
	}
	return false
}

// DefaultSteps returns the project's deploy steps in execution order
func DefaultSteps() []DeployStep {
	return []DeployStep{
		{Name: "00-deploy-mocks", Tags: []string{"all", "mocks"}, Run: DeployMocks},
		{Name: "01-deploy-fund-me", Tags: []string{"all", "fundme"}, Run: DeployFundMe},
	}
}

// DeployParams contains parameters for a deployment run
type DeployParams struct {
	Tags  []string
	Reset bool // wipe stored deployments first (development chains only)
}

// StepResult records what happened to one deploy step
type StepResult struct {
	Name    string
	Skipped bool
}

// DeployResult contains the result of a deployment run
type DeployResult struct {
	Network     *config.Network
	Steps       []StepResult
	Deployments map[string]*models.Deployment
}

// Deployer runs tagged deploy steps against the selected network
type Deployer struct {
	cfg       *config.RuntimeConfig
	chain     ChainClient
	store     DeploymentStore
	artifacts ArtifactLoader
	accounts  AccountProvider
	verifier  ContractVerifier
	progress  ProgressSink
	log       *zap.Logger
	steps     []DeployStep
}

// NewDeployer creates a new deployer with the default steps
func NewDeployer(
	cfg *config.RuntimeConfig,
	chain ChainClient,
	store DeploymentStore,
	artifacts ArtifactLoader,
	accounts AccountProvider,
	verifier ContractVerifier,
	progress ProgressSink,
	log *zap.Logger,
) *Deployer {
	return &Deployer{
		cfg:       cfg,
		chain:     chain,
		store:     store,
		artifacts: artifacts,
		accounts:  accounts,
		verifier:  verifier,
		progress:  progress,
		log:       log,
		steps:     DefaultSteps(),
	}
}

// WithSteps replaces the registered deploy steps
func (d *Deployer) WithSteps(steps ...DeployStep) *Deployer {
	d.steps = steps
	return d
}

// Run executes every registered step whose tags intersect params.Tags, in order
func (d *Deployer) Run(ctx context.Context, params DeployParams) (*DeployResult, error) {
	if d.cfg.Network == nil {
		return nil, fmt.Errorf("no network selected")
	}

	if params.Reset {
		if !d.cfg.Network.Development {
			return nil, fmt.Errorf("cannot reset deployments on %s: %w", d.cfg.Network.Name, domain.ErrNotDevelopmentChain)
		}
		if err := d.store.Reset(ctx, d.cfg.Network.Name); err != nil {
			return nil, fmt.Errorf("failed to reset deployments: %w", err)
		}
	}

	env := d.newEnv()
	result := &DeployResult{
		Network:     d.cfg.Network,
		Deployments: make(map[string]*models.Deployment),
	}

	for _, step := range d.steps {
		if !step.Matches(params.Tags) {
			result.Steps = append(result.Steps, StepResult{Name: step.Name, Skipped: true})
			continue
		}

		d.log.Debug("running deploy step", zap.String("step", step.Name), zap.String("network", d.cfg.Network.Name))
		if err := step.Run(ctx, env); err != nil {
			return nil, fmt.Errorf("deploy step %s failed: %w", step.Name, err)
		}
		result.Steps = append(result.Steps, StepResult{Name: step.Name})
	}

	for name, deployment := range env.deployed {
		result.Deployments[name] = deployment
	}

	return result, nil
}

// Fixture resets the development chain's stored deployments and runs the
// tagged steps, returning every deployment recorded for the network.
func (d *Deployer) Fixture(ctx context.Context, tags ...string) (map[string]*models.Deployment, error) {
	if d.cfg.Network == nil || !d.cfg.Network.Development {
		return nil, fmt.Errorf("fixtures need a development chain: %w", domain.ErrNotDevelopmentChain)
	}

	if _, err := d.Run(ctx, DeployParams{Tags: tags, Reset: true}); err != nil {
		return nil, err
	}

	deployments, err := d.store.List(ctx, domain.DeploymentFilter{Network: d.cfg.Network.Name})
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*models.Deployment, len(deployments))
	for _, deployment := range deployments {
		byName[deployment.Name] = deployment
	}
	return byName, nil
}

func (d *Deployer) newEnv() *DeployEnv {
	return &DeployEnv{
		Network:   d.cfg.Network,
		Project:   d.cfg.Project,
		APIKey:    d.cfg.EtherscanAPIKey,
		chain:     d.chain,
		store:     d.store,
		artifacts: d.artifacts,
		accounts:  d.accounts,
		verifier:  d.verifier,
		progress:  d.progress,
		log:       d.log,
		deployed:  make(map[string]*models.Deployment),
	}
}
