package app

import (
	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Log      *zap.Logger
	Progress usecase.ProgressSink

	// Deployment
	Deployer         *usecase.Deployer
	CompileContracts *usecase.CompileContracts
	VerifyDeployment *usecase.VerifyDeployment

	// Interaction
	Fund       *usecase.Fund
	Withdraw   *usecase.Withdraw
	ShowFundMe *usecase.ShowFundMe
	Quote      *usecase.Quote

	// Management
	ListNetworks     *usecase.ListNetworks
	ListAccounts     *usecase.ListAccounts
	ListDeployments  *usecase.ListDeployments
	ShowDeployment   *usecase.ShowDeployment
	PruneDeployments *usecase.PruneDeployments
	ResetDeployments *usecase.ResetDeployments
	ManageAnvil      *usecase.ManageAnvil
	ManageConfig     *usecase.ManageConfig
	InitProject      *usecase.InitProject

	// Adapters (needed for special cases like log streaming)
	AnvilManager usecase.AnvilManager
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *zap.Logger,
	progress usecase.ProgressSink,
	deployer *usecase.Deployer,
	compileContracts *usecase.CompileContracts,
	verifyDeployment *usecase.VerifyDeployment,
	fund *usecase.Fund,
	withdraw *usecase.Withdraw,
	showFundMe *usecase.ShowFundMe,
	quote *usecase.Quote,
	listNetworks *usecase.ListNetworks,
	listAccounts *usecase.ListAccounts,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	pruneDeployments *usecase.PruneDeployments,
	resetDeployments *usecase.ResetDeployments,
	manageAnvil *usecase.ManageAnvil,
	manageConfig *usecase.ManageConfig,
	initProject *usecase.InitProject,
	anvilManager usecase.AnvilManager,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		Progress:         progress,
		Deployer:         deployer,
		CompileContracts: compileContracts,
		VerifyDeployment: verifyDeployment,
		Fund:             fund,
		Withdraw:         withdraw,
		ShowFundMe:       showFundMe,
		Quote:            quote,
		ListNetworks:     listNetworks,
		ListAccounts:     listAccounts,
		ListDeployments:  listDeployments,
		ShowDeployment:   showDeployment,
		PruneDeployments: pruneDeployments,
		ResetDeployments: resetDeployments,
		ManageAnvil:      manageAnvil,
		ManageConfig:     manageConfig,
		InitProject:      initProject,
		AnvilManager:     anvilManager,
	}, nil
}
