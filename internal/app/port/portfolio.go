package port

import (
	"context"

	"solfolio/internal/domain/entity"
)

// HoldingsService aggregates a wallet's portfolio from the ledger and the
// metadata/price resolvers.
type HoldingsService interface {
	// ListHoldings returns the wallet's holdings sorted verified-first and
	// value-descending within each partition. It fails soft: a malformed
	// address or fatal ledger error yields an empty slice.
	ListHoldings(ctx context.Context, address string) []entity.Holding

	// NativeBalance returns the wallet's native-coin balance with its current
	// USD valuation. Fails soft to the zero balance.
	NativeBalance(ctx context.Context, address string) entity.NativeBalance
}
