package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	foundryFile       = "foundry.toml"
	defaultProfile    = "default"
	defaultFoundryOut = "out"
)

// FoundryConfig is the part of foundry.toml the CLI reads
type FoundryConfig struct {
	Profile map[string]ProfileConfig `toml:"profile"`
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath       string `toml:"src,omitempty"`
	OutPath       string `toml:"out,omitempty"`
	SolcVersion   string `toml:"solc_version,omitempty"`
	Optimizer     bool   `toml:"optimizer,omitempty"`
	OptimizerRuns int    `toml:"optimizer_runs,omitempty"`
}

// FoundryManager reads foundry.toml when the project is also a forge project
type FoundryManager struct {
	projectRoot string
	configPath  string
}

// NewFoundryManager creates a new foundry configuration reader
func NewFoundryManager(projectRoot string) *FoundryManager {
	return &FoundryManager{
		projectRoot: projectRoot,
		configPath:  filepath.Join(projectRoot, foundryFile),
	}
}

// Load reads the foundry configuration
func (fm *FoundryManager) Load() (*FoundryConfig, error) {
	var cfg FoundryConfig
	if _, err := toml.DecodeFile(fm.configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", foundryFile, err)
	}
	return &cfg, nil
}

// OutDir returns the absolute forge output directory for the active profile.
// FOUNDRY_PROFILE selects the profile, falling back to default.
func (fm *FoundryManager) OutDir() string {
	out := defaultFoundryOut
	if _, err := os.Stat(fm.configPath); err == nil {
		if cfg, err := fm.Load(); err == nil {
			profile := os.Getenv("FOUNDRY_PROFILE")
			if profile == "" {
				profile = defaultProfile
			}
			if p, ok := cfg.Profile[profile]; ok && p.OutPath != "" {
				out = p.OutPath
			} else if p, ok := cfg.Profile[defaultProfile]; ok && p.OutPath != "" {
				out = p.OutPath
			}
		}
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(fm.projectRoot, out)
}
