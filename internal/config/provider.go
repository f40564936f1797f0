package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// resolveTimeout bounds the chain ID lookup done while resolving a network
const resolveTimeout = 10 * time.Second

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	if err := LoadDotEnv(projectRoot); err != nil {
		return nil, err
	}

	project, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		Project:        project,
	}

	// .env may have introduced the key after viper was set up
	cfg.EtherscanAPIKey = os.Getenv("ETHERSCAN_API_KEY")
	if cfg.EtherscanAPIKey == "" && project.Etherscan.APIKey != "" {
		if key, err := ExpandEnv(project.Etherscan.APIKey); err == nil {
			cfg.EtherscanAPIKey = key
		}
	}

	networkName := v.GetString("network")
	if networkName == "" {
		local, err := LoadLocalConfig(projectRoot)
		if err != nil {
			return nil, err
		}
		networkName = local.Network
	}
	if networkName == "" {
		networkName = DefaultNetwork
	}
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()
	network, err := NewNetworkResolver(project).Resolve(ctx, networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find fundme.toml.
// Falls back to the working directory when no project file exists.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("FUNDME")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.Project)
}

// ProvideProjectConfig exposes the loaded project configuration to Wire
func ProvideProjectConfig(cfg *config.RuntimeConfig) *config.ProjectConfig {
	return cfg.Project
}

// ProvideNetwork exposes the resolved network to Wire
func ProvideNetwork(cfg *config.RuntimeConfig) *config.Network {
	return cfg.Network
}
