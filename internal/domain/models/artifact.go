package models

import (
	"encoding/json"
)

// Artifact is a compiled contract loaded from the artifacts directory
type Artifact struct {
	ContractName     string
	SourceName       string // e.g. "contracts/FundMe.sol"
	ABI              json.RawMessage
	Bytecode         []byte
	DeployedBytecode []byte
	Path             string // file the artifact was read from

	// Compiler settings, when the artifact carries metadata
	CompilerVersion string
	Optimizer       bool
	OptimizerRuns   int
	EVMVersion      string

	// StandardJSONInput is the solc input from build info, used for verification
	StandardJSONInput json.RawMessage
}

// FullyQualifiedName returns "<source>:<contract>" as expected by explorers
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.ContractName
	}
	return a.SourceName + ":" + a.ContractName
}
