package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/fundme/internal/domain/config"
)

// LocalConfigFile is the per-checkout settings file, relative to the project root
const LocalConfigFile = ".fundme/config.local.json"

// LocalConfigPath returns the local settings path for a project
func LocalConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, LocalConfigFile)
}

// LoadLocalConfig reads the local settings. A missing file yields the defaults.
func LoadLocalConfig(projectRoot string) (*config.LocalConfig, error) {
	data, err := os.ReadFile(LocalConfigPath(projectRoot))
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	local := config.DefaultLocalConfig()
	if err := json.Unmarshal(data, local); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", LocalConfigFile, err)
	}
	return local, nil
}
