package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundme/internal/cli/render"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		tags    []string
		reset   bool
		compile bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run the deploy steps against the selected network",
		Long: `Run the tagged deploy steps in order against the selected network.

Steps:
  00-deploy-mocks     tags: all, mocks   (development chains only)
  01-deploy-fund-me   tags: all, fundme

On development chains the price feed is the deployed MockV3Aggregator,
otherwise the ETH/USD feed configured for the chain id. On live networks
the deployment is verified when ETHERSCAN_API_KEY is set.

Examples:
  fundme deploy
  fundme deploy --tags mocks
  fundme deploy --network sepolia`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if compile {
				out := cmd.ErrOrStderr()
				if app.Config.JSON {
					out = nil
				}
				if _, err := app.CompileContracts.Run(cmd.Context(), usecase.CompileContractsParams{Output: out}); err != nil {
					return err
				}
			}

			result, err := app.Deployer.Run(cmd.Context(), usecase.DeployParams{
				Tags:  tags,
				Reset: reset,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result.Deployments)
			}
			return render.NewDeployRenderer(cmd.OutOrStdout(), useColor()).Render(result)
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", []string{"all"}, "Only run steps with one of these tags")
	cmd.Flags().BoolVar(&reset, "reset", false, "Forget stored deployments first (development chains only)")
	cmd.Flags().BoolVar(&compile, "compile", false, "Run forge build before deploying")

	return cmd
}

// NewCompileCmd creates the compile command
func NewCompileCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the contracts with forge",
		Long: `Run forge build in the project root and check that the FundMe and
MockV3Aggregator artifacts can be loaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.CompileContractsParams{}
			if !quiet && !app.Config.JSON {
				params.Output = cmd.OutOrStdout()
			}

			result, err := app.CompileContracts.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				names := make([]string, 0, len(result.Artifacts))
				for _, a := range result.Artifacts {
					names = append(names, a.ContractName)
				}
				return render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{"artifacts": names})
			}
			return render.RenderCompile(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide compiler output")

	return cmd
}

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var (
		force      bool
		selectMode bool
	)

	cmd := &cobra.Command{
		Use:   "verify [contract]",
		Short: "Verify a deployed contract on the block explorer",
		Long: `Verify a stored deployment of the selected network on its block explorer.
Defaults to FundMe. Requires ETHERSCAN_API_KEY and a live network.

Examples:
  fundme verify --network sepolia
  fundme verify MockV3Aggregator --network sepolia --force
  fundme verify --select --network sepolia`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			options := usecase.VerifyOptions{
				Force:  force,
				Select: selectMode,
			}
			if len(args) > 0 {
				options.ContractName = args[0]
			}

			result, err := app.VerifyDeployment.Run(cmd.Context(), options)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			if err := render.NewVerifyRenderer(cmd.OutOrStdout(), useColor()).Render(result); err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("verification of %s failed", result.Deployment.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-verify even if already verified")
	cmd.Flags().BoolVar(&selectMode, "select", false, "Pick the deployment interactively")

	return cmd
}
