package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundme/internal/cli/render"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a FundMe project in the current directory",
		Long: `Create fundme.toml, .env.example and the deployments directory.
Existing files are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.InitProject.Execute(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewInitRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
