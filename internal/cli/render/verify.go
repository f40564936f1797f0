package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/trebuchet-org/fundme/internal/usecase"
)

// VerifyRenderer renders verification results
type VerifyRenderer struct {
	out   io.Writer
	color bool
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer, color bool) *VerifyRenderer {
	return &VerifyRenderer{
		out:   out,
		color: color,
	}
}

// Render renders the verification outcome of a deployment
func (r *VerifyRenderer) Render(result *usecase.VerifyResult) error {
	dep := result.Deployment
	status := Title(string(dep.Verification.Status))
	switch {
	case result.Skipped:
		color.New(color.FgYellow).Fprintf(r.out, "⏭️  %s at %s is already verified\n", dep.Name, dep.Address)
	case result.Success:
		color.New(color.FgGreen).Fprintf(r.out, "✅ %s at %s: %s\n", dep.Name, dep.Address, status)
	default:
		color.New(color.FgRed).Fprintf(r.out, "❌ %s at %s: verification failed\n", dep.Name, dep.Address)
	}

	if result.Message != "" && !result.Skipped {
		fmt.Fprintf(r.out, "   %s\n", result.Message)
	}
	if dep.Verification.URL != "" {
		fmt.Fprintf(r.out, "   %s\n", color.New(color.FgBlue).Sprint(dep.Verification.URL))
	}
	return nil
}
