package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundme/internal/adapters/anvil"
	"github.com/trebuchet-org/fundme/internal/cli/render"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// NewNodeCmd creates the node command with subcommands
func NewNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage the local anvil node",
		Long: `Manage a local anvil node backing the localhost network.
PID and log files are kept in the system temp directory.`,
	}

	cmd.AddCommand(newNodeCmd(usecase.AnvilStart, "Start local anvil node", "Start a local anvil node. Fails if already running."))
	cmd.AddCommand(newNodeCmd(usecase.AnvilStop, "Stop local anvil node", "Stop the local anvil node if running."))
	cmd.AddCommand(newNodeCmd(usecase.AnvilRestart, "Restart local anvil node", "Restart the local anvil node with a fresh chain."))
	cmd.AddCommand(newNodeCmd(usecase.AnvilStatus, "Show anvil status", "Show status of the local anvil node."))
	cmd.AddCommand(newNodeCmd(usecase.AnvilLogs, "Show anvil logs", "Follow the logs of the local anvil node."))
	cmd.AddCommand(newNodeCmd(usecase.AnvilSnapshot, "Snapshot the chain state", "Take an evm_snapshot of the running node."))
	cmd.AddCommand(newNodeRevertCmd())

	return cmd
}

// anvilFlags holds common flags for anvil commands
type anvilFlags struct {
	name    string
	port    string
	chainID string
}

// addAnvilFlags adds common flags to an anvil command
func addAnvilFlags(cmd *cobra.Command, flags *anvilFlags) {
	cmd.Flags().StringVar(&flags.name, "name", anvil.DefaultAnvilName, "Instance name")
	cmd.Flags().StringVar(&flags.port, "port", anvil.DefaultAnvilPort, "RPC port to bind")
	cmd.Flags().StringVar(&flags.chainID, "chain-id", "", "Chain ID to use for the instance (optional)")
}

func newNodeCmd(operation, short, long string) *cobra.Command {
	flags := &anvilFlags{}

	cmd := &cobra.Command{
		Use:   operation,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnvilCommand(cmd, usecase.ManageAnvilParams{
				Operation: operation,
				Name:      flags.name,
				Port:      flags.port,
				ChainID:   flags.chainID,
			})
		},
	}

	addAnvilFlags(cmd, flags)
	return cmd
}

func newNodeRevertCmd() *cobra.Command {
	flags := &anvilFlags{}

	cmd := &cobra.Command{
		Use:   "revert <snapshot-id>",
		Short: "Revert the chain to a snapshot",
		Long:  `Revert the running node to a snapshot taken with 'fundme node snapshot'.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnvilCommand(cmd, usecase.ManageAnvilParams{
				Operation:  usecase.AnvilRevert,
				Name:       flags.name,
				Port:       flags.port,
				SnapshotID: args[0],
			})
		},
	}

	addAnvilFlags(cmd, flags)
	return cmd
}

// runAnvilCommand executes an anvil management command
func runAnvilCommand(cmd *cobra.Command, params usecase.ManageAnvilParams) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ManageAnvil.Execute(cmd.Context(), params)
	if err != nil {
		return err
	}

	renderer := render.NewAnvilRenderer(cmd.OutOrStdout())

	// logs stream until interrupted
	if params.Operation == usecase.AnvilLogs {
		if err := renderer.RenderLogsHeader(result); err != nil {
			return err
		}
		return app.AnvilManager.StreamLogs(cmd.Context(), result.Instance, cmd.OutOrStdout())
	}

	if app.Config.JSON {
		return render.RenderJSON(cmd.OutOrStdout(), result)
	}
	return renderer.Render(result)
}
