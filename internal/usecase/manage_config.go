package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// ConfigResult contains the local settings after a config operation
type ConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
	Key        config.ConfigKey
	Value      string // set value, or the removed one
}

// ManageConfig reads and edits the local settings file
type ManageConfig struct {
	store    LocalConfigStore
	networks NetworkResolver
}

// NewManageConfig creates a new ManageConfig use case
func NewManageConfig(store LocalConfigStore, networks NetworkResolver) *ManageConfig {
	return &ManageConfig{
		store:    store,
		networks: networks,
	}
}

// Show returns the current local settings
func (uc *ManageConfig) Show(ctx context.Context) (*ConfigResult, error) {
	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &ConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     uc.store.Exists(),
	}, nil
}

// Set stores a value. Network names must be configured.
func (uc *ManageConfig) Set(ctx context.Context, key, value string) (*ConfigResult, error) {
	normalizedKey, err := parseConfigKey(key)
	if err != nil {
		return nil, err
	}

	if normalizedKey == config.ConfigKeyNetwork {
		known := uc.networks.GetNetworks(ctx)
		found := false
		for _, name := range known {
			if name == value {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("network '%s' is not configured, available: %s", value, strings.Join(known, ", "))
		}
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Set(normalizedKey, value)
	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &ConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     true,
		Key:        normalizedKey,
		Value:      value,
	}, nil
}

// Remove clears a value
func (uc *ManageConfig) Remove(ctx context.Context, key string) (*ConfigResult, error) {
	if !uc.store.Exists() {
		return nil, fmt.Errorf("no config file found at %s", uc.store.GetPath())
	}

	normalizedKey, err := parseConfigKey(key)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	removed := cfg.Get(normalizedKey)
	cfg.Set(normalizedKey, "")
	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &ConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     true,
		Key:        normalizedKey,
		Value:      removed,
	}, nil
}

func parseConfigKey(key string) (config.ConfigKey, error) {
	key = strings.ToLower(key)
	if !config.IsValidConfigKey(key) {
		validKeys := []string{}
		for _, k := range config.ValidConfigKeys() {
			validKeys = append(validKeys, string(k))
		}
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", key, strings.Join(validKeys, ", "))
	}
	return config.NormalizeConfigKey(key), nil
}
