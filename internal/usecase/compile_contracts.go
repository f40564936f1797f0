package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/domain/models"
)

// CompileContractsParams contains parameters for compiling
type CompileContractsParams struct {
	Output io.Writer // streams compiler output when set
}

// CompileContractsResult lists the artifacts the deploy steps need
type CompileContractsResult struct {
	Artifacts []*models.Artifact
}

// CompileContracts builds the project and checks the deployable artifacts exist
type CompileContracts struct {
	compiler  Compiler
	artifacts ArtifactLoader
	progress  ProgressSink
}

// NewCompileContracts creates a new CompileContracts use case
func NewCompileContracts(compiler Compiler, artifacts ArtifactLoader, progress ProgressSink) *CompileContracts {
	return &CompileContracts{
		compiler:  compiler,
		artifacts: artifacts,
		progress:  progress,
	}
}

// Run executes the build
func (uc *CompileContracts) Run(ctx context.Context, params CompileContractsParams) (*CompileContractsResult, error) {
	if !uc.compiler.Available() {
		return nil, fmt.Errorf("forge not found in PATH, install foundry from https://getfoundry.sh")
	}

	if params.Output == nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "compiling", Message: "Compiling contracts...", Spinner: true})
	}
	err := uc.compiler.Build(ctx, params.Output)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "compiled"})
	if err != nil {
		return nil, err
	}

	result := &CompileContractsResult{}
	for _, name := range []string{bindings.MockV3AggregatorName, bindings.FundMeName} {
		artifact, err := uc.artifacts.Load(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("compiled without %s: %w", name, err)
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}
	return result, nil
}
