package models

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// SignerSource describes where a signer's key came from
type SignerSource string

const (
	SignerSourceMnemonic   SignerSource = "mnemonic"
	SignerSourcePrivateKey SignerSource = "private_key"
)

// Account is a signer available on the selected network
type Account struct {
	Index   int
	Name    string // named account alias, empty when unnamed
	Address common.Address
	Source  SignerSource
	Key     *ecdsa.PrivateKey `json:"-"`
}
