package service

import (
	"context"
	"fmt"

	"solfolio/internal/app/port"
)

// TradeService submits trades through the wallet provider. Transaction
// construction is intentionally undeveloped: SubmitTrade hands the provider
// an empty serialized transaction and returns whatever signature comes back.
type TradeService struct {
	provider port.WalletProvider
	logger   port.Logger
}

// NewTradeService creates the trade-submission helper.
func NewTradeService(provider port.WalletProvider, l port.Logger) *TradeService {
	return &TradeService{provider: provider, logger: l}
}

// SubmitTrade submits a trade between two mints for the given amount.
func (t *TradeService) SubmitTrade(ctx context.Context, fromMint, toMint string, amount float64) (string, error) {
	if fromMint == "" || toMint == "" {
		return "", fmt.Errorf("both fromMint and toMint are required")
	}
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive, got %v", amount)
	}

	t.logger.Debug("Submitting trade", "from", fromMint, "to", toMint, "amount", amount)

	signature, err := t.provider.SignAndSendTransaction(ctx, []byte{})
	if err != nil {
		t.logger.Warn("Trade submission failed", "from", fromMint, "to", toMint, "error", err)
		return "", fmt.Errorf("trade submission failed: %w", err)
	}
	return signature, nil
}
