// Package auth provides the token authorization gate that sits in front of
// the API. It follows the hexagonal architecture pattern with ports
// (interfaces) and adapters (Lambda authorizer, API Gateway key repository).
package auth

import (
	"context"

	"github.com/SebastienMelki/tablegate/internal/auth/internal/domain"
)

// KeySource defines the port for fetching the current valid key list.
type KeySource interface {
	// ListKeys returns every key record known to the key-management service.
	ListKeys(ctx context.Context) ([]domain.APIKey, error)
}

// Config holds authorization gate configuration.
type Config struct {
	// KeyPageSize is the GetApiKeys page size (1-500).
	KeyPageSize int `env:"KEY_PAGE_SIZE" envDefault:"500"`
}
