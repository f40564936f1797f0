//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/fundme/internal/adapters"
	"github.com/trebuchet-org/fundme/internal/config"
	"github.com/trebuchet-org/fundme/internal/logging"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.ProvideNetwork,
		config.ProvideProjectConfig,
		config.ProvideNetworkResolver,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployer,
		usecase.NewCompileContracts,
		usecase.NewVerifyDeployment,
		usecase.NewFund,
		usecase.NewWithdraw,
		usecase.NewShowFundMe,
		usecase.NewQuote,
		usecase.NewListNetworks,
		usecase.NewListAccounts,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewPruneDeployments,
		usecase.NewResetDeployments,
		usecase.NewManageAnvil,
		usecase.NewManageConfig,
		usecase.NewInitProject,

		// App
		NewApp,
	)
	return nil, nil
}
