// Package payment bridges provider-specific transaction verification to the
// feature purchase flow. Providers do network I/O only; nothing here touches
// the database, so no store lock is ever held during a gateway call.
package payment

import (
	"context"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
)

// Provider verifies a transaction reference against one gateway.
// Implementations classify failures: a provider decline is
// apperror.KindPaymentFailed (terminal), network trouble or timeout is
// apperror.KindTransient (safe to retry with the same reference).
type Provider interface {
	Name() string
	VerifyTransaction(ctx context.Context, transactionRef string) (*entity.Verification, error)
}

// Registry dispatches by the provider segment of the verify route.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, apperror.InvalidArgument("unknown payment provider %q", name)
	}
	return p, nil
}
