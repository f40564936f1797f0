package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

const chainIDFile = ".chainId"

// DeploymentStoreAdapter implements DeploymentStore with one JSON file per
// contract under deployments/<network>/
type DeploymentStoreAdapter struct {
	root string
	mu   sync.RWMutex
}

// NewDeploymentStoreAdapter creates a store rooted at the configured deployments directory
func NewDeploymentStoreAdapter(cfg *config.RuntimeConfig) *DeploymentStoreAdapter {
	dir := "deployments"
	if cfg.Project != nil && cfg.Project.Paths.Deployments != "" {
		dir = cfg.Project.Paths.Deployments
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &DeploymentStoreAdapter{root: dir}
}

func (s *DeploymentStoreAdapter) path(network, name string) string {
	return filepath.Join(s.root, network, name+".json")
}

// Get reads a single deployment
func (s *DeploymentStoreAdapter) Get(_ context.Context, network, name string) (*models.Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.path(network, name), network, name)
}

func (s *DeploymentStoreAdapter) read(path, network, name string) (*models.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s/%s: %w", network, name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read deployment file: %w", err)
	}

	var deployment models.Deployment
	if err := json.Unmarshal(data, &deployment); err != nil {
		return nil, fmt.Errorf("failed to parse deployment file %s: %w", path, err)
	}
	if deployment.Network == "" {
		deployment.Network = network
	}
	if deployment.Name == "" {
		deployment.Name = name
	}
	return &deployment, nil
}

// Save writes the deployment, replacing any previous record for the same contract
func (s *DeploymentStoreAdapter) Save(_ context.Context, deployment *models.Deployment) error {
	if deployment.Network == "" || deployment.Name == "" {
		return fmt.Errorf("deployment requires a network and a contract name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.root, deployment.Network)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}

	if deployment.ChainID != 0 {
		chainID := []byte(strconv.FormatUint(deployment.ChainID, 10))
		if err := writeFileAtomic(filepath.Join(dir, chainIDFile), chainID); err != nil {
			return fmt.Errorf("failed to write chain id: %w", err)
		}
	}

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment: %w", err)
	}
	if err := writeFileAtomic(s.path(deployment.Network, deployment.Name), data); err != nil {
		return fmt.Errorf("failed to write deployment file: %w", err)
	}
	return nil
}

// List returns the deployments matching the filter
func (s *DeploymentStoreAdapter) List(_ context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	networks, err := s.networks()
	if err != nil {
		return nil, err
	}
	if filter.Network != "" {
		networks = lo.Filter(networks, func(n string, _ int) bool { return n == filter.Network })
	}

	var result []*models.Deployment
	for _, network := range networks {
		entries, err := os.ReadDir(filepath.Join(s.root, network))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s deployments: %w", network, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".json")
			dep, err := s.read(filepath.Join(s.root, network, entry.Name()), network, name)
			if err != nil {
				return nil, err
			}

			if filter.ChainID != 0 && dep.ChainID != filter.ChainID {
				continue
			}
			if filter.ContractName != "" && dep.Name != filter.ContractName {
				continue
			}
			if filter.Tag != "" && !lo.Contains(dep.Tags, filter.Tag) {
				continue
			}
			result = append(result, dep)
		}
	}

	return result, nil
}

// Delete removes a single deployment record
func (s *DeploymentStoreAdapter) Delete(_ context.Context, network, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(network, name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%s/%s: %w", network, name, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete deployment file: %w", err)
	}
	return nil
}

// Reset removes every deployment of a network
func (s *DeploymentStoreAdapter) Reset(_ context.Context, network string) error {
	if network == "" {
		return fmt.Errorf("network is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(s.root, network)); err != nil {
		return fmt.Errorf("failed to reset %s deployments: %w", network, err)
	}
	return nil
}

// ChainID returns the chain id recorded for a network directory
func (s *DeploymentStoreAdapter) ChainID(network string) (uint64, error) {
	data, err := os.ReadFile(filepath.Join(s.root, network, chainIDFile))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
}

func (s *DeploymentStoreAdapter) networks() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read deployments directory: %w", err)
	}
	return lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), e.IsDir()
	}), nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentStore = (*DeploymentStoreAdapter)(nil)
