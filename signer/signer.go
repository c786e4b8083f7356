// Package signer provides the key material behind a wallet account.
//
// A SignerProvider signs 32-byte digests and reports the address it signs
// for. DefaultProvider holds a local secp256k1 key; RemoteSigner delegates to
// an HTTP signing service.
package signer

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignerProvider is the interface for the signer provider.
type SignerProvider interface {
	// Sign signs a 32-byte digest and returns a 65-byte [R || S || V]
	// signature with V in {0, 1}.
	Sign(digest []byte) ([]byte, error)
	GetAddress() string
}

// DefaultProvider is the default signer provider.
type DefaultProvider struct {
	priv *ecdsa.PrivateKey
}

// NewDefaultProvider creates a new default signer provider.
//
// privHex is the private key in hex format, with or without 0x.
func NewDefaultProvider(privHex string) (SignerProvider, error) {
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return &DefaultProvider{priv: priv}, nil
}

// Sign signs the digest.
func (s *DefaultProvider) Sign(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, fmt.Errorf("digest must be 32 bytes, got %d", len(digest))
	}

	signature, err := crypto.Sign(digest, s.priv)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}

	if len(signature) != 65 {
		return nil, fmt.Errorf("invalid signature length: expected 65 bytes, got %d", len(signature))
	}

	return signature, nil
}

// GetAddress returns the lower-cased hex address of the signer.
func (s *DefaultProvider) GetAddress() string {
	return strings.ToLower(crypto.PubkeyToAddress(s.priv.PublicKey).Hex())
}

// GenerateKey creates a fresh secp256k1 private key and returns it hex encoded
// with a 0x prefix.
func GenerateKey() (string, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate private key: %w", err)
	}
	return "0x" + hex.EncodeToString(priv.Serialize()), nil
}
