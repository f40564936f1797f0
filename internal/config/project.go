package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// LoadDotEnv loads <projectRoot>/.env into the process environment.
// Variables that are already set are left untouched.
func LoadDotEnv(projectRoot string) error {
	envPath := filepath.Join(projectRoot, ".env")
	if _, err := os.Stat(envPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return nil
}

// LoadProjectConfig reads fundme.toml from the project root and merges it
// over the built-in defaults. A missing file yields the defaults.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	cfg := DefaultProjectConfig()

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	var file config.ProjectConfig
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", ProjectFile, undecoded)
	}

	mergeProjectConfig(cfg, &file)
	return cfg, nil
}

// mergeProjectConfig overlays non-zero values of src onto dst
func mergeProjectConfig(dst, src *config.ProjectConfig) {
	if dst.Networks == nil {
		dst.Networks = make(map[string]config.NetworkConfig)
	}
	maps.Copy(dst.Networks, src.Networks)

	if src.DevelopmentChains != nil {
		dst.DevelopmentChains = src.DevelopmentChains
	}

	if dst.NetworkConfig == nil {
		dst.NetworkConfig = make(map[string]config.NetworkEntry)
	}
	maps.Copy(dst.NetworkConfig, src.NetworkConfig)

	if src.Mocks.Decimals != 0 {
		dst.Mocks.Decimals = src.Mocks.Decimals
	}
	if src.Mocks.InitialAnswer != 0 {
		dst.Mocks.InitialAnswer = src.Mocks.InitialAnswer
	}

	if dst.NamedAccounts == nil {
		dst.NamedAccounts = make(map[string]int)
	}
	maps.Copy(dst.NamedAccounts, src.NamedAccounts)

	if src.Etherscan.APIKey != "" {
		dst.Etherscan.APIKey = src.Etherscan.APIKey
	}
	if len(src.Etherscan.APIURL) > 0 {
		if dst.Etherscan.APIURL == nil {
			dst.Etherscan.APIURL = make(map[string]string)
		}
		maps.Copy(dst.Etherscan.APIURL, src.Etherscan.APIURL)
	}

	if src.Paths.Artifacts != "" {
		dst.Paths.Artifacts = src.Paths.Artifacts
	}
	if src.Paths.Deployments != "" {
		dst.Paths.Deployments = src.Paths.Deployments
	}

	if src.DevAccounts.Mnemonic != "" {
		dst.DevAccounts.Mnemonic = src.DevAccounts.Mnemonic
	}
	if src.DevAccounts.Count > 0 {
		dst.DevAccounts.Count = src.DevAccounts.Count
	}
}
