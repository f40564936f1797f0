package accounts

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"

	"github.com/trebuchet-org/fundme/internal/domain"
	"github.com/trebuchet-org/fundme/internal/domain/config"
	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// Provider resolves signers for the selected network.
// Development chains derive accounts from a mnemonic, live networks use
// the private keys configured for the network.
type Provider struct {
	network *config.Network
	project *config.ProjectConfig

	once    sync.Once
	signers []*models.Account
	err     error
}

// NewProvider creates a new account provider
func NewProvider(network *config.Network, project *config.ProjectConfig) *Provider {
	return &Provider{
		network: network,
		project: project,
	}
}

// Signers returns every signer available on the network, in index order
func (p *Provider) Signers(ctx context.Context) ([]*models.Account, error) {
	p.once.Do(func() {
		p.signers, p.err = p.load()
	})
	return p.signers, p.err
}

// Named resolves a named account (or a bare index) to its signer
func (p *Provider) Named(ctx context.Context, name string) (*models.Account, error) {
	signers, err := p.Signers(ctx)
	if err != nil {
		return nil, err
	}

	index, ok := p.project.NamedAccounts[name]
	if !ok {
		parsed, err := strconv.Atoi(name)
		if err != nil {
			return nil, fmt.Errorf("named account '%s' is not configured: %w", name, domain.ErrNoSigner)
		}
		index = parsed
	}

	if index < 0 || index >= len(signers) {
		return nil, fmt.Errorf("account '%s' (index %d) not available on %s, %d signer(s) configured: %w",
			name, index, p.networkName(), len(signers), domain.ErrNoSigner)
	}
	return signers[index], nil
}

func (p *Provider) load() ([]*models.Account, error) {
	if p.network != nil && !p.network.Development {
		return p.fromPrivateKeys(p.network.Accounts)
	}
	return p.fromMnemonic(p.project.DevAccounts.Mnemonic, p.project.DevAccounts.Count)
}

func (p *Provider) fromPrivateKeys(keys []string) ([]*models.Account, error) {
	signers := make([]*models.Account, 0, len(keys))
	for i, raw := range keys {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key #%d for %s: %w", i, p.networkName(), err)
		}
		signers = append(signers, p.account(i, key, models.SignerSourcePrivateKey))
	}
	return signers, nil
}

func (p *Provider) fromMnemonic(mnemonic string, count int) ([]*models.Account, error) {
	keys, err := DeriveKeys(mnemonic, count)
	if err != nil {
		return nil, err
	}
	signers := make([]*models.Account, len(keys))
	for i, key := range keys {
		signers[i] = p.account(i, key, models.SignerSourceMnemonic)
	}
	return signers, nil
}

func (p *Provider) account(index int, key *ecdsa.PrivateKey, source models.SignerSource) *models.Account {
	return &models.Account{
		Index:   index,
		Name:    p.nameFor(index),
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Source:  source,
		Key:     key,
	}
}

func (p *Provider) nameFor(index int) string {
	for name, i := range p.project.NamedAccounts {
		if i == index {
			return name
		}
	}
	return ""
}

func (p *Provider) networkName() string {
	if p.network == nil {
		return "unknown network"
	}
	return p.network.Name
}

// DeriveKeys derives count keys at m/44'/60'/0'/0/i from a BIP-39 mnemonic
func DeriveKeys(mnemonic string, count int) ([]*ecdsa.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	if count <= 0 {
		return nil, fmt.Errorf("account count must be positive, got %d", count)
	}

	seed := bip39.NewSeed(mnemonic, "")
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}

	// m/44'/60'/0'/0
	parent := master
	for _, index := range []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 60,
		hdkeychain.HardenedKeyStart + 0,
		0,
	} {
		parent, err = parent.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive key: %w", err)
		}
	}

	keys := make([]*ecdsa.PrivateKey, count)
	for i := range keys {
		child, err := parent.Derive(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("derive account %d: %w", i, err)
		}
		priv, err := child.ECPrivKey()
		if err != nil {
			return nil, fmt.Errorf("get private key: %w", err)
		}
		keys[i], err = crypto.ToECDSA(priv.Serialize())
		if err != nil {
			return nil, err
		}
	}
	return keys, nil
}

var _ usecase.AccountProvider = (*Provider)(nil)
