package port

import (
	"context"

	"solfolio/internal/domain/entity"
)

// LedgerClient defines the interface for reading account state from the
// remote ledger RPC endpoint.
type LedgerClient interface {
	// GetBalance fetches the native-coin balance of an address in base units.
	GetBalance(ctx context.Context, address string) (uint64, error)

	// GetTokenAccountsByOwner fetches every parsed token-holding account owned
	// by the address under the given program namespace.
	GetTokenAccountsByOwner(ctx context.Context, owner string, programID string) ([]entity.TokenAccount, error)

	// GetTokenAccountBalance fetches the exact on-chain balance of a single
	// token account.
	GetTokenAccountBalance(ctx context.Context, account string) (entity.TokenAmount, error)
}
