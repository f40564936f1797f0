package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// InitProject writes the starter files of a FundMe project
type InitProject struct {
	cfg        *config.RuntimeConfig
	fileWriter FileWriter
	progress   ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(cfg *config.RuntimeConfig, fileWriter FileWriter, progress ProgressSink) *InitProject {
	return &InitProject{
		cfg:        cfg,
		fileWriter: fileWriter,
		progress:   progress,
	}
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	ConfigCreated      bool
	EnvExampleCreated  bool
	DeploymentsCreated bool
	AlreadyInitialized bool
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
	Error   error
}

// ProjectTemplate is the fundme.toml written by init
const ProjectTemplate = `# fundme.toml

development_chains = ["hardhat", "localhost"]

[networks.localhost]
url = "http://127.0.0.1:8545"
chain_id = 31337

[networks.sepolia]
url = "${SEPOLIA_RPC_URL}"
chain_id = 11155111
block_confirmations = 6
accounts = ["${PRIVATE_KEY}"]

[network_config.11155111]
name = "sepolia"
eth_usd_price_feed = "0x694AA1769357215DE4FAC081bf1f309aDC325306"

[mocks]
decimals = 8
initial_answer = 200000000000

[named_accounts]
deployer = 0

[etherscan]
api_key = "${ETHERSCAN_API_KEY}"

[paths]
artifacts = "artifacts"
deployments = "deployments"
`

// EnvExampleTemplate is the .env.example written by init
const EnvExampleTemplate = `# fundme environment

# Signer for live networks
PRIVATE_KEY=

# RPC URLs
SEPOLIA_RPC_URL=

# Contract verification, unset to skip
ETHERSCAN_API_KEY=

# Optional
# FUNDME_NETWORK=localhost
# FUNDME_LOG_LEVEL=info
`

// Execute initializes the project in the configured root
func (i *InitProject) Execute(ctx context.Context) (*InitProjectResult, error) {
	result := &InitProjectResult{}

	step := i.writeIfMissing(ctx, "Create fundme.toml", "fundme.toml", ProjectTemplate)
	result.Steps = append(result.Steps, step)
	if step.Error != nil {
		return result, step.Error
	}
	result.ConfigCreated = step.Success && step.Message == "Created fundme.toml"
	result.AlreadyInitialized = !result.ConfigCreated

	step = i.writeIfMissing(ctx, "Create Environment Example", ".env.example", EnvExampleTemplate)
	result.Steps = append(result.Steps, step)
	if step.Error != nil {
		return result, step.Error
	}
	result.EnvExampleCreated = step.Message == "Created .env.example"

	step = i.createDeploymentsDir(ctx)
	result.Steps = append(result.Steps, step)
	if step.Error != nil {
		return result, step.Error
	}
	result.DeploymentsCreated = true

	for _, s := range result.Steps {
		i.progress.Info(s.Message)
	}
	return result, nil
}

func (i *InitProject) writeIfMissing(ctx context.Context, name, path, content string) InitStep {
	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		return InitStep{
			Name:  name,
			Error: fmt.Errorf("failed to check %s: %w", path, err),
		}
	}

	if exists {
		return InitStep{
			Name:    name,
			Success: true,
			Message: fmt.Sprintf("%s already exists", path),
		}
	}

	if err := i.fileWriter.WriteFile(ctx, path, content); err != nil {
		return InitStep{
			Name:  name,
			Error: fmt.Errorf("failed to create %s: %w", path, err),
		}
	}

	return InitStep{
		Name:    name,
		Success: true,
		Message: fmt.Sprintf("Created %s", path),
	}
}

func (i *InitProject) createDeploymentsDir(ctx context.Context) InitStep {
	dir := "deployments"
	if i.cfg.Project != nil && i.cfg.Project.Paths.Deployments != "" {
		dir = i.cfg.Project.Paths.Deployments
	}
	if err := i.fileWriter.EnsureDirectory(ctx, dir); err != nil {
		return InitStep{
			Name:  "Create Deployments Directory",
			Error: fmt.Errorf("failed to create %s: %w", dir, err),
		}
	}
	return InitStep{
		Name:    "Create Deployments Directory",
		Success: true,
		Message: fmt.Sprintf("Deployments are stored in %s/", dir),
	}
}
