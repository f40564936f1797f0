package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

const (
	explorerEtherscan  = "etherscan"
	explorerBlockscout = "blockscout"

	defaultPollInterval = 5 * time.Second
	defaultMaxPolls     = 24
)

// Service verifies contracts on Etherscan-compatible and Blockscout explorers
type Service struct {
	client       *http.Client
	projectRoot  string
	pollInterval time.Duration
	maxPolls     int
	log          *zap.Logger
}

// NewService creates a new verification service
func NewService(cfg *config.RuntimeConfig, log *zap.Logger) *Service {
	return &Service{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		projectRoot:  cfg.ProjectRoot,
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
		log:          log,
	}
}

// WithPolling overrides how often and how many times verification status is polled
func (s *Service) WithPolling(interval time.Duration, maxPolls int) *Service {
	s.pollInterval = interval
	s.maxPolls = maxPolls
	return s
}

// Verify submits the contract source and waits for the explorer's verdict
func (s *Service) Verify(ctx context.Context, req usecase.VerifyRequest) (*models.VerificationInfo, error) {
	if req.Network == nil {
		return nil, fmt.Errorf("no network selected")
	}
	if req.Artifact == nil {
		return nil, fmt.Errorf("no artifact for %s", req.Address.Hex())
	}

	switch s.getExplorerType(req.Network) {
	case explorerBlockscout:
		return s.verifyOnBlockscout(ctx, req)
	default:
		return s.verifyOnEtherscan(ctx, req)
	}
}

// getExplorerType determines the explorer type for a network
func (s *Service) getExplorerType(network *config.Network) string {
	// Most EVM chains use Etherscan-compatible APIs
	for _, bn := range []string{"gnosis", "xdai", "sokol"} {
		if strings.EqualFold(network.Name, bn) {
			return explorerBlockscout
		}
	}
	return explorerEtherscan
}

// submission is the source and compiler settings sent to an explorer
type submission struct {
	codeFormat string
	source     string
	name       string
}

func (s *Service) buildSubmission(artifact *models.Artifact) (*submission, error) {
	if len(artifact.StandardJSONInput) > 0 {
		return &submission{
			codeFormat: "solidity-standard-json-input",
			source:     string(artifact.StandardJSONInput),
			name:       artifact.FullyQualifiedName(),
		}, nil
	}

	if artifact.SourceName == "" {
		return nil, fmt.Errorf("artifact %s has no source information", artifact.ContractName)
	}
	source, err := os.ReadFile(filepath.Join(s.projectRoot, artifact.SourceName))
	if err != nil {
		return nil, fmt.Errorf("failed to read source for %s: %w", artifact.ContractName, err)
	}
	return &submission{
		codeFormat: "solidity-single-file",
		source:     string(source),
		name:       artifact.ContractName,
	}, nil
}

// verifyOnEtherscan verifies a contract using Etherscan API
func (s *Service) verifyOnEtherscan(ctx context.Context, req usecase.VerifyRequest) (*models.VerificationInfo, error) {
	if req.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for network %s", req.Network.Name)
	}
	apiURL := req.Network.ExplorerAPIURL
	if apiURL == "" {
		return nil, fmt.Errorf("no explorer API URL configured for network %s", req.Network.Name)
	}
	if req.Artifact.CompilerVersion == "" {
		return nil, fmt.Errorf("compiler version unknown for %s", req.Artifact.ContractName)
	}

	sub, err := s.buildSubmission(req.Artifact)
	if err != nil {
		return nil, err
	}

	// Build verification request
	data := url.Values{}
	data.Set("apikey", req.APIKey)
	data.Set("module", "contract")
	data.Set("action", "verifysourcecode")
	data.Set("contractaddress", req.Address.Hex())
	data.Set("sourceCode", sub.source)
	data.Set("codeformat", sub.codeFormat)
	data.Set("contractname", sub.name)
	data.Set("compilerversion", req.Artifact.CompilerVersion)
	if sub.codeFormat == "solidity-single-file" {
		data.Set("optimizationUsed", boolToString(req.Artifact.Optimizer))
		if req.Artifact.Optimizer {
			data.Set("runs", strconv.Itoa(req.Artifact.OptimizerRuns))
		}
		if req.Artifact.EVMVersion != "" {
			data.Set("evmversion", req.Artifact.EVMVersion)
		}
	}
	if args := strings.TrimPrefix(req.ConstructorArgs, "0x"); args != "" {
		data.Set("constructorArguements", args) // Note: Etherscan typo
	}

	s.log.Debug("submitting verification",
		zap.String("network", req.Network.Name),
		zap.String("address", req.Address.Hex()),
		zap.String("codeformat", sub.codeFormat))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := s.doEtherscan(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to submit verification: %w", err)
	}

	explorerURL := fmt.Sprintf("%s/address/%s#code", req.Network.ExplorerURL, req.Address.Hex())
	if result.Status != "1" {
		if isAlreadyVerified(result.Result) {
			return verified(explorerURL, "", "already verified"), nil
		}
		return nil, fmt.Errorf("%s: %w", result.Result, domain.ErrVerificationFailed)
	}

	guid := result.Result
	if err := s.waitForVerification(ctx, apiURL, req.APIKey, guid); err != nil {
		return nil, err
	}
	return verified(explorerURL, guid, ""), nil
}

// waitForVerification polls checkverifystatus until the explorer reaches a verdict
func (s *Service) waitForVerification(ctx context.Context, apiURL, apiKey, guid string) error {
	for attempt := 0; attempt < s.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.pollInterval):
		}

		done, err := s.checkVerificationStatus(ctx, apiURL, apiKey, guid)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return fmt.Errorf("verification %s still pending after %d checks: %w", guid, s.maxPolls, domain.ErrVerificationFailed)
}

// checkVerificationStatus reports whether a submission was verified; pending returns false
func (s *Service) checkVerificationStatus(ctx context.Context, apiURL, apiKey, guid string) (bool, error) {
	params := url.Values{}
	params.Set("apikey", apiKey)
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)

	sep := "?"
	if strings.Contains(apiURL, "?") {
		sep = "&"
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+sep+params.Encode(), nil)
	if err != nil {
		return false, err
	}

	result, err := s.doEtherscan(httpReq)
	if err != nil {
		return false, fmt.Errorf("failed to check status: %w", err)
	}

	// Check if still pending
	if strings.Contains(strings.ToLower(result.Result), "pending") {
		s.log.Debug("verification pending", zap.String("guid", guid))
		return false, nil
	}
	if result.Status == "1" || isAlreadyVerified(result.Result) {
		return true, nil
	}
	return false, fmt.Errorf("%s: %w", result.Result, domain.ErrVerificationFailed)
}

func (s *Service) doEtherscan(req *http.Request) (*etherscanResponse, error) {
	resp, err := s.client.Do(req) //nolint:gosec // URL is constructed from configured explorer endpoint
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("explorer returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result etherscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// verifyOnBlockscout verifies a contract using Blockscout API
func (s *Service) verifyOnBlockscout(ctx context.Context, req usecase.VerifyRequest) (*models.VerificationInfo, error) {
	explorerURL := req.Network.ExplorerURL
	if explorerURL == "" {
		return nil, fmt.Errorf("no explorer URL configured for network %s", req.Network.Name)
	}

	sub, err := s.buildSubmission(req.Artifact)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"addressHash":          req.Address.Hex(),
		"name":                 req.Artifact.ContractName,
		"compilerVersion":      req.Artifact.CompilerVersion,
		"optimization":         req.Artifact.Optimizer,
		"optimizationRuns":     req.Artifact.OptimizerRuns,
		"contractSourceCode":   sub.source,
		"codeFormat":           sub.codeFormat,
		"constructorArguments": strings.TrimPrefix(req.ConstructorArgs, "0x"),
		"evmVersion":           req.Artifact.EVMVersion,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, explorerURL+"/api/v1/verified_smart_contracts", bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq) //nolint:gosec // URL is constructed from configured explorer endpoint
	if err != nil {
		return nil, fmt.Errorf("failed to submit verification: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	addressURL := fmt.Sprintf("%s/address/%s", explorerURL, req.Address.Hex())
	if resp.StatusCode != http.StatusOK {
		if isAlreadyVerified(string(body)) {
			return verified(addressURL, "", "already verified"), nil
		}
		return nil, fmt.Errorf("%s: %w", strings.TrimSpace(string(body)), domain.ErrVerificationFailed)
	}

	return verified(addressURL, "", ""), nil
}

func verified(explorerURL, guid, reason string) *models.VerificationInfo {
	now := time.Now()
	return &models.VerificationInfo{
		Status:     models.VerificationStatusVerified,
		URL:        explorerURL,
		GUID:       guid,
		VerifiedAt: &now,
		Reason:     reason,
	}
}

func isAlreadyVerified(message string) bool {
	return strings.Contains(strings.ToLower(message), "already verified")
}

// etherscanResponse represents Etherscan API response
type etherscanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// boolToString converts bool to "0" or "1" for Etherscan API
func boolToString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

var _ usecase.ContractVerifier = (*Service)(nil)
