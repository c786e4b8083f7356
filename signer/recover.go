package signer

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// RecoverAddress returns the lower-cased address that produced signature over
// digest. V may be 0/1 or 27/28.
func RecoverAddress(digest, signature []byte) (string, error) {
	if len(signature) != 65 {
		return "", fmt.Errorf("invalid signature length: expected 65 bytes, got %d", len(signature))
	}

	v := signature[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return "", fmt.Errorf("invalid recovery id %d", signature[64])
	}

	// btcec compact form: [27 + recid] || R || S, uncompressed key.
	compact := make([]byte, 65)
	compact[0] = 27 + v
	copy(compact[1:], signature[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return "", fmt.Errorf("failed to recover public key: %w", err)
	}

	raw := pub.SerializeUncompressed()
	addr := common.BytesToAddress(crypto.Keccak256(raw[1:])[12:])
	return strings.ToLower(addr.Hex()), nil
}

// normalizeV rewrites a 27/28 recovery id to 0/1 in place.
func normalizeV(signature []byte) {
	if signature[64] >= 27 {
		signature[64] -= 27
	}
}
