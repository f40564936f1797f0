package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundme/internal/cli/render"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// NewDeploymentsCmd creates the deployments command group
func NewDeploymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"ls"},
		Short:   "Inspect and manage stored deployments",
	}

	cmd.AddCommand(newDeploymentsListCmd())
	cmd.AddCommand(newDeploymentsShowCmd())
	cmd.AddCommand(newDeploymentsPruneCmd())
	cmd.AddCommand(newDeploymentsResetCmd())

	return cmd
}

func newDeploymentsListCmd() *cobra.Command {
	var (
		all      bool
		contract string
		tag      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored deployments",
		Long: `List deployments stored under deployments/<network>/.
By default only the selected network is shown; use --all for every network.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{
				ContractName: contract,
				Tag:          tag,
			}
			if !all {
				params.Network = app.Config.Network.Name
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result.Deployments)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), useColor()).RenderDeploymentList(result)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show deployments of every network")
	cmd.Flags().StringVar(&contract, "contract", "", "Filter by contract name")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by deploy tag")

	return cmd
}

func newDeploymentsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <contract|address>",
		Short: "Show a stored deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ShowDeploymentParams{Name: args[0]}
			if common.IsHexAddress(args[0]) {
				params = usecase.ShowDeploymentParams{Address: args[0]}
			}

			deployment, err := app.ShowDeployment.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), deployment)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), useColor()).RenderDeployment(deployment)
		},
	}
}

func newDeploymentsPruneCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove stored deployments that have no code on-chain",
		Long: `Check every stored deployment of the selected network for contract code
and remove the records whose address is empty. Useful after restarting a
local chain.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.PruneDeployments.Run(cmd.Context(), usecase.PruneDeploymentsParams{DryRun: dryRun})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checked %d deployment(s)\n", result.Checked)
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), useColor()).
				RenderRemoved("prune", "Pruned", result.Network, result.Pruned, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only show what would be removed")

	return cmd
}

func newDeploymentsResetCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget every stored deployment of the selected network",
		Long: `Delete all deployment records of the selected network. Live networks ask
for confirmation unless --non-interactive is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ResetDeployments.Run(cmd.Context(), usecase.ResetDeploymentsParams{DryRun: dryRun})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), useColor()).
				RenderRemoved("reset", "Forgot", result.Network, result.Deployments, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only show what would be removed")

	return cmd
}
