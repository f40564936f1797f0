package adapters

import (
	"github.com/google/wire"

	"github.com/trebuchet-org/fundme/internal/adapters/accounts"
	"github.com/trebuchet-org/fundme/internal/adapters/anvil"
	"github.com/trebuchet-org/fundme/internal/adapters/artifacts"
	"github.com/trebuchet-org/fundme/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/fundme/internal/adapters/config"
	"github.com/trebuchet-org/fundme/internal/adapters/forge"
	"github.com/trebuchet-org/fundme/internal/adapters/fs"
	"github.com/trebuchet-org/fundme/internal/adapters/interactive"
	"github.com/trebuchet-org/fundme/internal/adapters/progress"
	"github.com/trebuchet-org/fundme/internal/adapters/verification"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// ProvideFoundryManager reads foundry.toml from the project root
func ProvideFoundryManager(cfg *config.RuntimeConfig) *internalconfig.FoundryManager {
	return internalconfig.NewFoundryManager(cfg.ProjectRoot)
}

// ProvideArtifactLoader searches the configured artifacts directory, then forge's output directory
func ProvideArtifactLoader(cfg *config.RuntimeConfig, foundry *internalconfig.FoundryManager) *artifacts.Loader {
	dirs := []string{}
	if cfg.Project != nil && cfg.Project.Paths.Artifacts != "" {
		dirs = append(dirs, artifacts.ResolvePath(cfg.ProjectRoot, cfg.Project.Paths.Artifacts))
	}
	dirs = append(dirs, foundry.OutDir())
	return artifacts.NewLoaderWithDirs(dirs...)
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeploymentStoreAdapter,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.DeploymentStoreAdapter)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// ArtifactSet provides compiled contract lookup and the compiler
var ArtifactSet = wire.NewSet(
	ProvideFoundryManager,
	ProvideArtifactLoader,
	wire.Bind(new(usecase.ArtifactLoader), new(*artifacts.Loader)),

	forge.NewForgeAdapter,
	wire.Bind(new(usecase.Compiler), new(*forge.ForgeAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPrompter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.Prompter)),
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.Prompter)),

	progress.NewProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
	wire.Bind(new(usecase.CodeChecker), new(*blockchain.Client)),

	accounts.NewProvider,
	wire.Bind(new(usecase.AccountProvider), new(*accounts.Provider)),

	verification.NewService,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.Service)),

	anvil.NewManager,
	wire.Bind(new(usecase.AnvilManager), new(*anvil.Manager)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ArtifactSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
