package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundme/internal/cli/render"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Long: `List all networks configured in fundme.toml [networks] together with the
built-in defaults, their chain IDs and ETH/USD price feeds.

With --check each RPC endpoint is queried for its chain ID.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{CheckRPC: check})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout(), useColor()).RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Query each RPC endpoint")

	return cmd
}

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	var balances bool

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the signers available on the selected network",
		Long: `List the signers of the selected network. Development chains use the
standard test mnemonic, live networks the keys listed in fundme.toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			accounts, err := app.ListAccounts.Run(cmd.Context(), usecase.ListAccountsParams{WithBalances: balances})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), accounts)
			}
			return render.NewAccountsRenderer(cmd.OutOrStdout(), useColor()).Render(accounts, app.Config.Network.Name)
		},
	}

	cmd.Flags().BoolVar(&balances, "balances", false, "Fetch account balances")

	return cmd
}
