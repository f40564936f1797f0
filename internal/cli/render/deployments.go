package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// Color styles for table format
var (
	networkHeader  = color.New(color.BgCyan, color.FgBlack, color.Bold)
	contractStyle  = color.New(color.FgYellow)
	timestampStyle = color.New(color.Faint)
	tagsStyle      = color.New(color.FgCyan)
)

// DeploymentsRenderer renders deployment lists as tables grouped by network
type DeploymentsRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, color bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:   out,
		color: color,
	}
}

// RenderDeploymentList renders deployments grouped by network
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byNetwork := make(map[string][]*models.Deployment)
	for _, dep := range result.Deployments {
		byNetwork[dep.Network] = append(byNetwork[dep.Network], dep)
	}
	networks := make([]string, 0, len(byNetwork))
	for network := range byNetwork {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	for i, network := range networks {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		deps := byNetwork[network]
		networkHeader.Fprintf(r.out, " %s (chain %d) ", network, deps[0].ChainID)
		fmt.Fprintln(r.out)

		t := newTable(r.out)
		for _, dep := range deps {
			tags := ""
			if len(dep.Tags) > 0 {
				tags = tagsStyle.Sprint(strings.Join(dep.Tags, ","))
			}
			t.AppendRow(table.Row{
				contractStyle.Sprint(dep.Name),
				dep.Address,
				verificationLabel(dep),
				tags,
				timestampStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
			})
		}
		t.Render()
	}

	fmt.Fprintf(r.out, "\nTotal: %d deployment(s), %d verified\n", result.Summary.Total, result.Summary.Verified)
	return nil
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentsRenderer) RenderDeployment(deployment *models.Deployment) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", deployment.ID())
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", contractStyle.Sprint(deployment.Name))
	fmt.Fprintf(r.out, "  Address: %s\n", deployment.Address)
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", deployment.Network, deployment.ChainID)
	fmt.Fprintf(r.out, "  Deployer: %s\n", deployment.Deployer)
	if len(deployment.Tags) > 0 {
		fmt.Fprintf(r.out, "  Tags: %s\n", tagsStyle.Sprint(strings.Join(deployment.Tags, ", ")))
	}
	if len(deployment.Args) > 0 {
		fmt.Fprintf(r.out, "  Constructor args: [%s]\n", strings.Join(deployment.Args, ", "))
	}

	fmt.Fprintln(r.out, "\nTransaction:")
	fmt.Fprintf(r.out, "  Hash: %s\n", deployment.TransactionHash)
	if deployment.Receipt != nil {
		fmt.Fprintf(r.out, "  Block: %d\n", deployment.Receipt.BlockNumber)
		fmt.Fprintf(r.out, "  Gas used: %s\n", printer.Sprintf("%d", deployment.Receipt.GasUsed))
		if deployment.Receipt.Confirmations > 0 {
			fmt.Fprintf(r.out, "  Confirmations: %d\n", deployment.Receipt.Confirmations)
		}
	}

	if deployment.Artifact.Path != "" {
		fmt.Fprintln(r.out, "\nArtifact:")
		fmt.Fprintf(r.out, "  Path: %s\n", deployment.Artifact.Path)
		if deployment.Artifact.CompilerVersion != "" {
			fmt.Fprintf(r.out, "  Compiler: %s\n", deployment.Artifact.CompilerVersion)
		}
	}

	fmt.Fprintln(r.out, "\nVerification:")
	fmt.Fprintf(r.out, "  Status: %s\n", verificationLabel(deployment))
	if deployment.Verification.URL != "" {
		fmt.Fprintf(r.out, "  URL: %s\n", deployment.Verification.URL)
	}
	if deployment.Verification.Reason != "" {
		fmt.Fprintf(r.out, "  Reason: %s\n", deployment.Verification.Reason)
	}

	fmt.Fprintf(r.out, "\nCreated: %s\n", timestampStyle.Sprint(deployment.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	return nil
}

// RenderRemoved renders deployments deleted (or to be deleted) by prune or reset.
// action is the imperative verb, done its past tense.
func (r *DeploymentsRenderer) RenderRemoved(action, done, network string, deployments []*models.Deployment, dryRun bool) error {
	if len(deployments) == 0 {
		fmt.Fprintf(r.out, "Nothing to %s on %s\n", action, network)
		return nil
	}

	verb := done
	if dryRun {
		verb = "Would " + action
	}
	fmt.Fprintf(r.out, "%s %d deployment(s) on %s:\n", verb, len(deployments), network)
	for _, dep := range deployments {
		fmt.Fprintf(r.out, "  - %s at %s\n", contractStyle.Sprint(dep.Name), dep.Address)
	}
	return nil
}
