package service

import (
	"context"
	"sync"

	"solfolio/internal/app/port"
	"solfolio/internal/domain/entity"

	gocache "github.com/patrickmn/go-cache"
)

// wellKnownTokens is the static identity table consulted before the bulk
// directory. Entries carry no quote; price is always resolved live.
var wellKnownTokens = map[string]entity.TokenMetadata{
	entity.NativeMint: {
		Name:     "Solana",
		Symbol:   "SOL",
		LogoURL:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/So11111111111111111111111111111111111111112/logo.png",
		Verified: true,
		Source:   entity.MetadataSourceWellKnown,
	},
	usdcMint: {
		Name:     "USD Coin",
		Symbol:   "USDC",
		LogoURL:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v/logo.png",
		Verified: true,
		Source:   entity.MetadataSourceWellKnown,
	},
	usdtMint: {
		Name:     "USDT",
		Symbol:   "USDT",
		LogoURL:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB/logo.png",
		Verified: true,
		Source:   entity.MetadataSourceWellKnown,
	},
	"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263": {
		Name:     "Bonk",
		Symbol:   "BONK",
		LogoURL:  "https://arweave.net/hQB7PMqF_HZXfhOjwOPhW_3UKEZxWJACml-V_Ak9ALs",
		Verified: true,
		Source:   entity.MetadataSourceWellKnown,
	},
	"mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So": {
		Name:     "Marinade Staked SOL",
		Symbol:   "mSOL",
		LogoURL:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So/logo.png",
		Verified: true,
		Source:   entity.MetadataSourceWellKnown,
	},
	"RLBxxFkseAZ4RgJH3Sqn8jXxhmGoz9jWxDNJMh8pL7a": {
		Name:     "Raydium",
		Symbol:   "RAY",
		LogoURL:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R/logo.png",
		Verified: true,
		Source:   entity.MetadataSourceWellKnown,
	},
}

// metadataServiceImpl implements port.MetadataService. Identity records are
// cached for process lifetime; the bulk directory is fetched at most once,
// lazily on the first cache-and-table miss.
type metadataServiceImpl struct {
	directory  port.TokenDirectory
	prices     port.PriceService
	identities *gocache.Cache
	logger     port.Logger

	dirOnce  sync.Once
	dirIndex map[string]entity.DirectoryToken
}

// NewMetadataService creates a metadata resolver over the given directory
// and price service.
func NewMetadataService(directory port.TokenDirectory, prices port.PriceService, l port.Logger) port.MetadataService {
	return &metadataServiceImpl{
		directory:  directory,
		prices:     prices,
		identities: gocache.New(gocache.NoExpiration, 0),
		logger:     l,
	}
}

// Resolve implements port.MetadataService. It never fails: unresolvable
// mints come back as the sentinel record with whatever price is available.
func (s *metadataServiceImpl) Resolve(ctx context.Context, mint string) entity.TokenMetadata {
	if v, ok := s.identities.Get(mint); ok {
		md := v.(entity.TokenMetadata)
		md.Quote = s.prices.Resolve(ctx, mint)
		return md
	}

	md, ok := wellKnownTokens[mint]
	if !ok {
		md = s.lookupDirectory(ctx, mint)
	}

	identity := md
	s.identities.Set(mint, identity, gocache.NoExpiration)

	md.Quote = s.prices.Resolve(ctx, mint)
	return md
}

// lookupDirectory resolves a mint against the bulk token directory,
// fetching it on first use. A failed fetch caches an empty directory so
// later misses do not re-fetch per call.
func (s *metadataServiceImpl) lookupDirectory(ctx context.Context, mint string) entity.TokenMetadata {
	s.dirOnce.Do(func() {
		tokens, err := s.directory.FetchAll(ctx)
		if err != nil {
			s.logger.Error("Token directory unavailable, resolving unknown mints to sentinel values", "error", err)
			s.dirIndex = map[string]entity.DirectoryToken{}
			return
		}
		index := make(map[string]entity.DirectoryToken, len(tokens))
		for _, t := range tokens {
			index[t.Address] = t
		}
		s.dirIndex = index
		s.logger.Info("Token directory indexed", "tokenCount", len(index))
	})

	if tok, ok := s.dirIndex[mint]; ok {
		return entity.TokenMetadata{
			Name:     tok.Name,
			Symbol:   tok.Symbol,
			LogoURL:  tok.LogoURI,
			Verified: tok.Verified(),
			Source:   entity.MetadataSourceDirectory,
		}
	}

	s.logger.Debug("Mint not found in token directory", "mint", mint)
	return entity.TokenMetadata{
		Name:     entity.UnknownTokenName,
		Symbol:   entity.UnknownTokenSymbol,
		Verified: false,
		Source:   entity.MetadataSourceFallback,
	}
}
