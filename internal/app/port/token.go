package port

import (
	"context"

	"solfolio/internal/domain/entity"
)

// PriceSource is a single external price provider. The price resolver walks
// an ordered list of these, short-circuiting on the first hit.
type PriceSource interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Quote returns the USD unit price for a mint. The boolean is false when
	// the provider has no price for the mint (not an error).
	Quote(ctx context.Context, mint string) (float64, bool, error)
}

// TokenDirectory fetches the bulk external token list.
type TokenDirectory interface {
	FetchAll(ctx context.Context) ([]entity.DirectoryToken, error)
}

// PriceService resolves best-effort USD prices. It never fails: every
// failure degrades to a cached, stale or zero quote.
type PriceService interface {
	Resolve(ctx context.Context, mint string) entity.Quote
}

// MetadataService resolves display metadata plus a fresh price for a mint.
// It never fails: unresolvable mints come back as the sentinel record.
type MetadataService interface {
	Resolve(ctx context.Context, mint string) entity.TokenMetadata
}
