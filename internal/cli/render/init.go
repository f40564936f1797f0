package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/trebuchet-org/fundme/internal/usecase"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	failed := false
	for _, step := range result.Steps {
		if step.Success {
			if step.Message != "" {
				color.New(color.FgGreen).Fprintf(r.out, "✅ %s\n", step.Message)
			} else {
				color.New(color.FgGreen).Fprintf(r.out, "✅ %s\n", step.Name)
			}
			continue
		}
		failed = true
		color.New(color.FgRed).Fprintf(r.out, "❌ %s\n", step.Name)
		if step.Message != "" {
			fmt.Fprintf(r.out, "   %s\n", step.Message)
		}
		if step.Error != nil {
			fmt.Fprintf(r.out, "   %s\n", step.Error.Error())
		}
	}

	if failed {
		return nil
	}

	fmt.Fprintln(r.out)
	if result.AlreadyInitialized {
		color.New(color.FgYellow).Fprintln(r.out, "⚠️  fundme was already initialized in this project")
	} else {
		color.New(color.FgGreen, color.Bold).Fprintln(r.out, "🎉 fundme initialized successfully!")
	}

	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "📋 Next steps:")
	fmt.Fprintln(r.out, "1. Copy .env.example to .env and set PRIVATE_KEY, SEPOLIA_RPC_URL and ETHERSCAN_API_KEY")
	fmt.Fprintln(r.out, "2. Compile the contracts: fundme compile")
	fmt.Fprintln(r.out, "3. Start a local chain: fundme node start")
	fmt.Fprintln(r.out, "4. Deploy: fundme deploy --network localhost")
	return nil
}
