// Package domain contains the core types and decision logic for the token
// authorization gate.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// APIKey is one record of the key-management service's key list.
type APIKey struct {
	// ID is the key-management service identifier of the key.
	ID string

	// Name is a human-readable label for the key.
	Name string

	// Value is the plaintext key presented by callers.
	Value string

	// Enabled mirrors the service-side enabled flag. It is informational only:
	// every listed key value is a member of the valid set.
	Enabled bool
}

// KeySet is the set of valid key values fetched for a single decision.
type KeySet map[string]struct{}

// NewKeySet builds a KeySet from key records. Records without a value are
// skipped, so the empty string is never a member.
func NewKeySet(keys []APIKey) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		if k.Value == "" {
			continue
		}
		set[k.Value] = struct{}{}
	}
	return set
}

// Contains reports whether token is an exact member of the set.
func (s KeySet) Contains(token string) bool {
	if token == "" {
		return false
	}
	_, ok := s[token]
	return ok
}

// Fingerprint returns a short SHA256 prefix of a token for log correlation.
// The token itself must never be logged.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:12]
}
