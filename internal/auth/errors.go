package auth

import (
	"github.com/SebastienMelki/tablegate/internal/auth/internal/domain"
	"github.com/SebastienMelki/tablegate/internal/auth/internal/service"
)

// Sentinel errors for the auth package.
var (
	// ErrMissingMethodArn means the authorization request named no target
	// resource. No decision is produced.
	ErrMissingMethodArn = domain.ErrMissingMethodArn

	// ErrKeyServiceUnavailable means the key list could not be fetched. The
	// gate fails closed.
	ErrKeyServiceUnavailable = service.ErrKeyServiceUnavailable
)
