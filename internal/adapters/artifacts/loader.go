package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// foundryOut is the default forge output directory
const foundryOut = "out"

// Loader finds compiled contracts in Hardhat and Foundry output directories
type Loader struct {
	dirs  []string
	cache map[string]*models.Artifact
	mu    sync.Mutex
}

// NewLoader creates a loader over the configured artifacts directory and forge's out/
func NewLoader(cfg *config.RuntimeConfig) *Loader {
	dirs := []string{}
	if cfg.Project != nil && cfg.Project.Paths.Artifacts != "" {
		dirs = append(dirs, ResolvePath(cfg.ProjectRoot, cfg.Project.Paths.Artifacts))
	}
	dirs = append(dirs, ResolvePath(cfg.ProjectRoot, foundryOut))
	return NewLoaderWithDirs(dirs...)
}

// NewLoaderWithDirs creates a loader searching the given directories in order
func NewLoaderWithDirs(dirs ...string) *Loader {
	return &Loader{
		dirs:  dirs,
		cache: make(map[string]*models.Artifact),
	}
}

// Load returns the artifact for a contract name or "<source>:<name>" key
func (l *Loader) Load(ctx context.Context, contractName string) (*models.Artifact, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[contractName]; ok {
		return cached, nil
	}

	sourceName, name := "", contractName
	if idx := strings.LastIndex(contractName, ":"); idx >= 0 {
		sourceName, name = contractName[:idx], contractName[idx+1:]
	}

	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		artifact, err := l.search(dir, sourceName, name)
		if err != nil {
			return nil, err
		}
		if artifact != nil {
			l.cache[contractName] = artifact
			return artifact, nil
		}
	}

	return nil, fmt.Errorf("%s (searched %s): %w", contractName, strings.Join(l.dirs, ", "), domain.ErrArtifactNotFound)
}

func (l *Loader) search(dir, sourceName, name string) (*models.Artifact, error) {
	var found *models.Artifact
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != name+".json" {
			return nil
		}

		artifact, err := parseArtifact(path)
		if err != nil {
			return err
		}
		// skip interfaces and abstract contracts
		if artifact == nil || len(artifact.Bytecode) == 0 {
			return nil
		}
		if sourceName != "" && artifact.SourceName != sourceName {
			return nil
		}
		found = artifact
		return filepath.SkipAll
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read artifacts in %s: %w", dir, err)
	}
	if found == nil {
		return nil, nil
	}

	if len(found.StandardJSONInput) == 0 {
		input, version, err := findBuildInfo(found, dir)
		if err != nil {
			return nil, err
		}
		found.StandardJSONInput = input
		if found.CompilerVersion == "" {
			found.CompilerVersion = version
		}
	}
	return found, nil
}

// artifactFile covers both the hardhat and the forge artifact layouts
type artifactFile struct {
	Format           string          `json:"_format"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         bytecodeField   `json:"bytecode"`
	DeployedBytecode bytecodeField   `json:"deployedBytecode"`
	Metadata         *solcMetadata   `json:"metadata,omitempty"`
}

type solcMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
		EVMVersion        string            `json:"evmVersion"`
		Optimizer         struct {
			Enabled bool `json:"enabled"`
			Runs    int  `json:"runs"`
		} `json:"optimizer"`
	} `json:"settings"`
}

// bytecodeField accepts "0x..." (hardhat) and {"object": "0x..."} (forge)
type bytecodeField string

func (b *bytecodeField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*b = bytecodeField(obj.Object)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = bytecodeField(s)
	return nil
}

func (b bytecodeField) decode() ([]byte, error) {
	s := string(b)
	if s == "" || s == "0x" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func parseArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		// not an artifact, e.g. a hardhat .dbg.json sibling
		return nil, nil
	}
	if len(file.ABI) == 0 {
		return nil, nil
	}
	if _, err := abi.JSON(bytes.NewReader(file.ABI)); err != nil {
		return nil, fmt.Errorf("invalid ABI in %s: %w", path, err)
	}

	bytecode, err := file.Bytecode.decode()
	if err != nil {
		// unlinked library placeholders are not valid hex
		return nil, fmt.Errorf("invalid bytecode in %s: %w", path, err)
	}
	deployed, err := file.DeployedBytecode.decode()
	if err != nil {
		return nil, fmt.Errorf("invalid deployed bytecode in %s: %w", path, err)
	}

	artifact := &models.Artifact{
		ContractName:     file.ContractName,
		SourceName:       file.SourceName,
		ABI:              file.ABI,
		Bytecode:         bytecode,
		DeployedBytecode: deployed,
		Path:             path,
	}

	if meta := file.Metadata; meta != nil {
		for source, contract := range meta.Settings.CompilationTarget {
			artifact.SourceName = source
			artifact.ContractName = contract
		}
		artifact.CompilerVersion = normalizeVersion(meta.Compiler.Version)
		artifact.Optimizer = meta.Settings.Optimizer.Enabled
		artifact.OptimizerRuns = meta.Settings.Optimizer.Runs
		artifact.EVMVersion = meta.Settings.EVMVersion
	}
	if artifact.ContractName == "" {
		artifact.ContractName = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	return artifact, nil
}

type buildInfo struct {
	SolcLongVersion string `json:"solcLongVersion"`
	Input           struct {
		Sources map[string]json.RawMessage `json:"sources"`
	} `json:"input"`
}

// findBuildInfo locates the solc standard JSON input that compiled the artifact.
// Hardhat points at it from a .dbg.json sibling, forge keeps it under out/build-info.
func findBuildInfo(artifact *models.Artifact, root string) (json.RawMessage, string, error) {
	candidates := []string{}

	dbgPath := strings.TrimSuffix(artifact.Path, ".json") + ".dbg.json"
	if data, err := os.ReadFile(dbgPath); err == nil {
		var dbg struct {
			BuildInfo string `json:"buildInfo"`
		}
		if json.Unmarshal(data, &dbg) == nil && dbg.BuildInfo != "" {
			candidates = append(candidates, filepath.Join(filepath.Dir(dbgPath), dbg.BuildInfo))
		}
	}

	matches, _ := filepath.Glob(filepath.Join(root, "build-info", "*.json"))
	candidates = append(candidates, matches...)

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var info buildInfo
		if err := json.Unmarshal(data, &info); err != nil {
			continue
		}
		if _, ok := info.Input.Sources[artifact.SourceName]; !ok {
			continue
		}

		var raw struct {
			Input json.RawMessage `json:"input"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, "", fmt.Errorf("invalid build info %s: %w", path, err)
		}
		return raw.Input, normalizeVersion(info.SolcLongVersion), nil
	}

	return nil, "", nil
}

// normalizeVersion returns the compiler version in explorer form, e.g. v0.8.8+commit.dddeac2f
func normalizeVersion(version string) string {
	if version == "" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

// ResolvePath joins a project relative path onto root
func ResolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

var _ usecase.ArtifactLoader = (*Loader)(nil)
