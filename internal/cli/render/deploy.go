package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// DeployRenderer renders the outcome of a deploy run
type DeployRenderer struct {
	out   io.Writer
	color bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, color bool) *DeployRenderer {
	return &DeployRenderer{
		out:   out,
		color: color,
	}
}

// Render renders the executed steps and the resulting deployments
func (r *DeployRenderer) Render(result *usecase.DeployResult) error {
	if len(result.Steps) == 0 {
		fmt.Fprintln(r.out, FormatWarning("No deploy steps matched the requested tags"))
		return nil
	}

	fmt.Fprintln(r.out)
	for _, step := range result.Steps {
		if step.Skipped {
			color.New(color.Faint).Fprintf(r.out, "⏭️  %s (skipped)\n", step.Name)
			continue
		}
		color.New(color.FgGreen).Fprintf(r.out, "✅ %s\n", step.Name)
	}

	if len(result.Deployments) == 0 {
		return nil
	}

	names := make([]string, 0, len(result.Deployments))
	for name := range result.Deployments {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(r.out)
	color.New(color.Bold).Fprintf(r.out, "Deployments on %s (chain %d):\n", result.Network.Name, result.Network.ChainID)
	t := newTable(r.out)
	t.AppendHeader(table.Row{"Contract", "Address", "Transaction", "Verified"})
	for _, name := range names {
		dep := result.Deployments[name]
		t.AppendRow(table.Row{
			color.New(color.FgYellow).Sprint(dep.Name),
			dep.Address,
			shortHash(dep.TransactionHash),
			verificationLabel(dep),
		})
	}
	t.Render()
	return nil
}

func verificationLabel(dep *models.Deployment) string {
	switch dep.Verification.Status {
	case models.VerificationStatusVerified:
		return color.New(color.FgGreen).Sprint("verified")
	case models.VerificationStatusFailed:
		return color.New(color.FgRed).Sprint("failed")
	case models.VerificationStatusPending:
		return color.New(color.FgYellow).Sprint("pending")
	default:
		return color.New(color.Faint).Sprint("-")
	}
}
