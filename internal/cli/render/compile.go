package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/trebuchet-org/fundme/internal/usecase"
)

// RenderCompile lists the artifacts found after a build
func RenderCompile(out io.Writer, result *usecase.CompileContractsResult) error {
	fmt.Fprintln(out, FormatSuccess("Compilation complete"))
	for _, artifact := range result.Artifacts {
		fmt.Fprintf(out, "  %s %s\n",
			color.New(color.FgYellow).Sprintf("%-18s", artifact.ContractName),
			color.New(color.Faint).Sprint(getRelativePath(artifact.Path)))
	}
	return nil
}
