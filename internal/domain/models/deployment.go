package models

import (
	"encoding/json"
	"time"
)

// VerificationStatus represents the verification status
type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "UNVERIFIED"
	VerificationStatusPending    VerificationStatus = "PENDING"
	VerificationStatusVerified   VerificationStatus = "VERIFIED"
	VerificationStatusFailed     VerificationStatus = "FAILED"
)

// Deployment represents a contract deployment record.
// The JSON shape follows the deployments/<network>/<Name>.json layout.
type Deployment struct {
	Name            string          `json:"contractName"`
	Address         string          `json:"address"`
	ABI             json.RawMessage `json:"abi"`
	Args            []string        `json:"args"`
	ConstructorArgs string          `json:"constructorArgs,omitempty"` // ABI-encoded, 0x-prefixed
	TransactionHash string          `json:"transactionHash"`
	Receipt         *Receipt        `json:"receipt,omitempty"`
	Network         string          `json:"network"`
	ChainID         uint64          `json:"chainId"`
	Deployer        string          `json:"deployer"`
	Bytecode        string          `json:"bytecode,omitempty"`
	Tags            []string        `json:"tags,omitempty"`

	// Source information used by verification
	Artifact ArtifactInfo `json:"artifact"`

	// Verification information
	Verification VerificationInfo `json:"verification"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Receipt summarises the mined deployment transaction
type Receipt struct {
	BlockNumber       uint64 `json:"blockNumber"`
	GasUsed           uint64 `json:"gasUsed"`
	EffectiveGasPrice string `json:"effectiveGasPrice"` // decimal wei
	Status            uint64 `json:"status"`
	Confirmations     uint64 `json:"confirmations"`
}

// ArtifactInfo contains contract artifact information
type ArtifactInfo struct {
	Path            string `json:"path"`            // e.g., "contracts/FundMe.sol:FundMe"
	CompilerVersion string `json:"compilerVersion"` // e.g., "v0.8.8+commit.dddeac2f"
}

// VerificationInfo contains verification details
type VerificationInfo struct {
	Status     VerificationStatus `json:"status"`
	URL        string             `json:"url,omitempty"`
	GUID       string             `json:"guid,omitempty"`
	VerifiedAt *time.Time         `json:"verifiedAt,omitempty"`
	Reason     string             `json:"reason,omitempty"`
}

// ID returns the network scoped identifier, e.g. "sepolia/FundMe"
func (d *Deployment) ID() string {
	return d.Network + "/" + d.Name
}

// IsVerified reports whether the deployment has verified source
func (d *Deployment) IsVerified() bool {
	return d.Verification.Status == VerificationStatusVerified
}
