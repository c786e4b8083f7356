// Package address provides display helpers for chain addresses and hashes.
package address

import "strings"

const (
	headLen = 6
	tailLen = 4
)

// Format shortens an address for display: the first 6 characters, "...",
// then the last 4 characters.
//
// Empty input yields an empty string. Inputs too short to shorten are
// returned unchanged.
func Format(addr string) string {
	if addr == "" {
		return ""
	}
	if len(addr) <= headLen+tailLen {
		return addr
	}
	return addr[:headLen] + "..." + addr[len(addr)-tailLen:]
}

// TxURL returns the explorer page for a transaction hash.
// Returns an empty string when no explorer is configured.
func TxURL(explorerBase, hash string) string {
	return explorerLink(explorerBase, "tx", hash)
}

// ContractURL returns the explorer page for a contract address.
func ContractURL(explorerBase, addr string) string {
	return explorerLink(explorerBase, "address", addr)
}

func explorerLink(base, kind, id string) string {
	if base == "" || id == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + kind + "/" + id
}
