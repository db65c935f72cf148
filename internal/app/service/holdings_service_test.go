package service

import (
	"context"
	"errors"
	"testing"

	"solfolio/internal/domain/entity"
	"solfolio/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A well-formed base58 account key (decodes to 32 bytes).
const testOwner = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"

func solMetadata(price float64) entity.TokenMetadata {
	return entity.TokenMetadata{
		Name:     "Solana",
		Symbol:   "SOL",
		Verified: true,
		Source:   entity.MetadataSourceWellKnown,
		Quote:    entity.Quote{PriceUSD: price, Source: entity.QuoteSourceJupiter},
	}
}

func TestHoldingsService_NativeOnlyWallet(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewMockLedgerClient()
	ledger.Lamports = 2_000_000_000

	metadata := &testutil.MockMetadataService{Records: map[string]entity.TokenMetadata{
		entity.NativeMint: solMetadata(100),
	}}

	svc := NewHoldingsService(ledger, metadata, testutil.NopLogger{}, 4)

	holdings := svc.ListHoldings(ctx, testOwner)
	require.Len(t, holdings, 1)
	assert.Equal(t, entity.NativeMint, holdings[0].Mint)
	assert.Equal(t, 2.0, holdings[0].Amount)
	assert.Equal(t, "SOL", holdings[0].Symbol)
	assert.Equal(t, 200.0, holdings[0].ValueUSD)
}

func TestHoldingsService_FiltersZeroBalances(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewMockLedgerClient()
	ledger.AddAccount(entity.TokenAccount{
		Pubkey: "acct-funded", Mint: "mint-funded",
		RawAmount: "5000000", Decimals: 6, UIAmount: 5,
	})
	ledger.AddAccount(entity.TokenAccount{
		Pubkey: "acct-empty", Mint: "mint-empty",
		RawAmount: "0", Decimals: 6, UIAmount: 0,
	})

	metadata := &testutil.MockMetadataService{Records: map[string]entity.TokenMetadata{
		entity.NativeMint: solMetadata(100),
	}}

	svc := NewHoldingsService(ledger, metadata, testutil.NopLogger{}, 4)

	holdings := svc.ListHoldings(ctx, testOwner)
	mints := make([]string, 0, len(holdings))
	for _, h := range holdings {
		mints = append(mints, h.Mint)
	}
	assert.Contains(t, mints, "mint-funded")
	assert.NotContains(t, mints, "mint-empty")
}

func TestHoldingsService_SortsVerifiedFirstThenValue(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewMockLedgerClient()
	ledger.Lamports = 0
	ledger.AddAccount(entity.TokenAccount{Pubkey: "a1", Mint: "unverified-rich", RawAmount: "1", Decimals: 0, UIAmount: 1})
	ledger.AddAccount(entity.TokenAccount{Pubkey: "a2", Mint: "verified-poor", RawAmount: "1", Decimals: 0, UIAmount: 1})
	ledger.AddAccount(entity.TokenAccount{Pubkey: "a3", Mint: "verified-rich", RawAmount: "1", Decimals: 0, UIAmount: 1})

	metadata := &testutil.MockMetadataService{Records: map[string]entity.TokenMetadata{
		entity.NativeMint: solMetadata(0),
		"unverified-rich": {
			Symbol: "UVR", Verified: false,
			Quote: entity.Quote{PriceUSD: 9000, Source: entity.QuoteSourceDexScreener},
		},
		"verified-poor": {
			Symbol: "VP", Verified: true,
			Quote: entity.Quote{PriceUSD: 1, Source: entity.QuoteSourceJupiter},
		},
		"verified-rich": {
			Symbol: "VR", Verified: true,
			Quote: entity.Quote{PriceUSD: 500, Source: entity.QuoteSourceJupiter},
		},
	}}

	svc := NewHoldingsService(ledger, metadata, testutil.NopLogger{}, 4)

	holdings := svc.ListHoldings(ctx, testOwner)
	require.Len(t, holdings, 4)

	// Verified partition first, by descending USD value; unverified last even
	// when it is worth more than every verified holding.
	assert.Equal(t, "verified-rich", holdings[0].Mint)
	assert.Equal(t, "verified-poor", holdings[1].Mint)
	assert.Equal(t, entity.NativeMint, holdings[2].Mint)
	assert.Equal(t, "unverified-rich", holdings[3].Mint)
}

func TestHoldingsService_DropsFailedBalanceLookups(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewMockLedgerClient()
	ledger.AddAccount(entity.TokenAccount{Pubkey: "a-ok", Mint: "mint-ok", RawAmount: "1000000", Decimals: 6, UIAmount: 1})
	ledger.AddAccount(entity.TokenAccount{Pubkey: "a-bad", Mint: "mint-bad", RawAmount: "1000000", Decimals: 6, UIAmount: 1})
	ledger.GetTokenAccountBalanceFunc = func(ctx context.Context, account string) (entity.TokenAmount, error) {
		if account == "a-bad" {
			return entity.TokenAmount{}, errors.New("node timeout")
		}
		return entity.TokenAmount{RawAmount: "1000000", Decimals: 6, UIAmount: 1}, nil
	}

	metadata := &testutil.MockMetadataService{Records: map[string]entity.TokenMetadata{
		entity.NativeMint: solMetadata(100),
	}}

	svc := NewHoldingsService(ledger, metadata, testutil.NopLogger{}, 4)

	holdings := svc.ListHoldings(ctx, testOwner)
	mints := make([]string, 0, len(holdings))
	for _, h := range holdings {
		mints = append(mints, h.Mint)
	}
	assert.Contains(t, mints, "mint-ok")
	assert.NotContains(t, mints, "mint-bad")
}

func TestHoldingsService_MalformedAddress(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewMockLedgerClient()
	metadata := &testutil.MockMetadataService{}

	svc := NewHoldingsService(ledger, metadata, testutil.NopLogger{}, 4)

	for _, address := range []string{"", "not-base58-0OIl", "abc"} {
		holdings := svc.ListHoldings(ctx, address)
		assert.Empty(t, holdings)
	}
	// Validation rejects before any RPC happens.
	assert.Empty(t, ledger.Calls)
}

func TestHoldingsService_NativeBalance(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewMockLedgerClient()
	ledger.Lamports = 1_234_567_891

	metadata := &testutil.MockMetadataService{Records: map[string]entity.TokenMetadata{
		entity.NativeMint: solMetadata(100),
	}}

	svc := NewHoldingsService(ledger, metadata, testutil.NopLogger{}, 4)

	balance := svc.NativeBalance(ctx, testOwner)
	assert.Equal(t, uint64(1_234_567_891), balance.Lamports)
	assert.Equal(t, 1.234567891, balance.UIBalance)
	assert.Equal(t, 100.0, balance.PriceUSD)
	assert.Equal(t, 123.46, balance.ValueUSD)
}

func TestHoldingsService_LedgerErrorYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewMockLedgerClient()
	ledger.GetBalanceFunc = func(ctx context.Context, address string) (uint64, error) {
		return 0, errors.New("rpc unreachable")
	}
	metadata := &testutil.MockMetadataService{}

	svc := NewHoldingsService(ledger, metadata, testutil.NopLogger{}, 4)

	assert.Empty(t, svc.ListHoldings(ctx, testOwner))
	assert.Equal(t, entity.NativeBalance{}, svc.NativeBalance(ctx, testOwner))
}

func TestTotalValue(t *testing.T) {
	holdings := []entity.Holding{
		{ValueUSD: 200},
		{ValueUSD: 0.5},
		{ValueUSD: 49.5},
	}
	assert.Equal(t, 250.0, TotalValue(holdings))
	assert.Equal(t, 0.0, TotalValue(nil))
}
