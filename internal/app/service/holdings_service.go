package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"solfolio/internal/app/port"
	"solfolio/internal/domain/entity"
	"solfolio/internal/pkg/metrics"
	"solfolio/internal/pkg/utils"

	"github.com/mr-tron/base58"
	"golang.org/x/sync/errgroup"
)

// accountKeyLength is the decoded size of a valid ledger account key.
const accountKeyLength = 32

// holdingsServiceImpl implements port.HoldingsService.
type holdingsServiceImpl struct {
	ledger        port.LedgerClient
	metadata      port.MetadataService
	logger        port.Logger
	maxConcurrent int
}

// NewHoldingsService creates the portfolio aggregator. maxConcurrent bounds
// the per-token metadata/balance fan-out.
func NewHoldingsService(lc port.LedgerClient, ms port.MetadataService, l port.Logger, maxConcurrent int) port.HoldingsService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &holdingsServiceImpl{
		ledger:        lc,
		metadata:      ms,
		logger:        l,
		maxConcurrent: maxConcurrent,
	}
}

// validateAddress parses an address into the ledger's account-key form.
func validateAddress(address string) error {
	decoded, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("invalid base58 address %q: %w", address, err)
	}
	if len(decoded) != accountKeyLength {
		return fmt.Errorf("address %q decodes to %d bytes, want %d", address, len(decoded), accountKeyLength)
	}
	return nil
}

// ListHoldings implements port.HoldingsService. It fails soft: a malformed
// address or fatal ledger error yields an empty slice, never an error.
func (s *holdingsServiceImpl) ListHoldings(ctx context.Context, address string) []entity.Holding {
	start := time.Now()
	defer func() {
		metrics.HoldingsFetchDuration.Observe(time.Since(start).Seconds())
	}()

	if err := validateAddress(address); err != nil {
		s.logger.Warn("Malformed wallet address, returning empty holdings", "address", address, "error", err)
		return []entity.Holding{}
	}

	lamports, err := s.ledger.GetBalance(ctx, address)
	if err != nil {
		s.logger.Error("Failed to fetch native balance, returning empty holdings", "address", address, "error", err)
		return []entity.Holding{}
	}
	native := s.nativeHolding(ctx, lamports)

	accounts, err := s.ledger.GetTokenAccountsByOwner(ctx, address, entity.TokenProgramID)
	if err != nil {
		s.logger.Error("Failed to fetch token accounts, returning empty holdings", "address", address, "error", err)
		return []entity.Holding{}
	}

	// Zero-balance accounts are noise.
	funded := accounts[:0:0]
	for _, acct := range accounts {
		if acct.UIAmount > 0 {
			funded = append(funded, acct)
		}
	}

	resolved := make([]*entity.Holding, len(funded))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, acct := range funded {
		g.Go(func() error {
			exact, err := s.ledger.GetTokenAccountBalance(gctx, acct.Pubkey)
			if err != nil {
				// Dropped, not surfaced as partial failure.
				s.logger.Debug("Token balance lookup failed, dropping holding",
					"account", acct.Pubkey, "mint", acct.Mint, "error", err)
				return nil
			}
			md := s.metadata.Resolve(gctx, acct.Mint)
			h := buildHolding(acct.Mint, exact.UIAmount, exact.Decimals, md)
			resolved[i] = &h
			return nil
		})
	}
	// Workers never return errors; failed lookups are dropped above.
	_ = g.Wait()

	holdings := make([]entity.Holding, 0, len(resolved)+1)
	holdings = append(holdings, native)
	for _, h := range resolved {
		if h != nil {
			holdings = append(holdings, *h)
		}
	}

	sortHoldings(holdings)

	s.logger.Info("Holdings aggregated", "address", address,
		"count", len(holdings), "totalValueUSD", TotalValue(holdings))
	return holdings
}

// NativeBalance implements port.HoldingsService.
func (s *holdingsServiceImpl) NativeBalance(ctx context.Context, address string) entity.NativeBalance {
	if err := validateAddress(address); err != nil {
		s.logger.Warn("Malformed wallet address, returning zero balance", "address", address, "error", err)
		return entity.NativeBalance{}
	}

	lamports, err := s.ledger.GetBalance(ctx, address)
	if err != nil {
		s.logger.Error("Failed to fetch native balance", "address", address, "error", err)
		return entity.NativeBalance{}
	}

	md := s.metadata.Resolve(ctx, entity.NativeMint)
	ui := utils.RoundTo(utils.LamportsToSol(lamports), 9)
	return entity.NativeBalance{
		Lamports:  lamports,
		UIBalance: ui,
		PriceUSD:  md.Quote.PriceUSD,
		ValueUSD:  utils.RoundTo(ui*md.Quote.PriceUSD, 2),
	}
}

func (s *holdingsServiceImpl) nativeHolding(ctx context.Context, lamports uint64) entity.Holding {
	md := s.metadata.Resolve(ctx, entity.NativeMint)
	return buildHolding(entity.NativeMint, utils.LamportsToSol(lamports), 9, md)
}

func buildHolding(mint string, amount float64, decimals uint8, md entity.TokenMetadata) entity.Holding {
	value := 0.0
	if md.Quote.PriceUSD > 0 {
		value = md.Quote.PriceUSD * amount
	}
	return entity.Holding{
		Mint:        mint,
		Amount:      amount,
		Decimals:    decimals,
		Symbol:      md.Symbol,
		Name:        md.Name,
		LogoURL:     md.LogoURL,
		PriceUSD:    md.Quote.PriceUSD,
		Verified:    md.Verified,
		ValueUSD:    value,
		PriceSource: md.Quote.Source,
	}
}

// sortHoldings orders verified holdings before unverified ones and, within
// each partition, by descending USD value. The sort is stable so holdings
// with equal value keep their fetch order.
func sortHoldings(holdings []entity.Holding) {
	sort.SliceStable(holdings, func(i, j int) bool {
		if holdings[i].Verified != holdings[j].Verified {
			return holdings[i].Verified
		}
		return holdings[i].ValueUSD > holdings[j].ValueUSD
	})
}

// TotalValue sums the USD value of a holdings sequence.
func TotalValue(holdings []entity.Holding) float64 {
	total := 0.0
	for _, h := range holdings {
		total += h.ValueUSD
	}
	return total
}
