package service

import (
	"context"
	"time"

	"solfolio/internal/app/port"
	"solfolio/internal/domain/entity"
	"solfolio/internal/pkg/metrics"

	gocache "github.com/patrickmn/go-cache"
)

// Mints that are pegged to the US dollar and always priced at exactly 1,
// with no network call and no cache write.
const (
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	usdtMint = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

var peggedMints = map[string]struct{}{
	usdcMint: {},
	usdtMint: {},
}

// priceEntry is what the cache stores per mint. Entries are stored without
// expiration so an expired price stays readable for the stale-last-resort
// path; freshness is checked against the TTL on read.
type priceEntry struct {
	price     float64
	fetchedAt time.Time
}

// priceServiceImpl implements port.PriceService with a TTL cache and an
// ordered provider fallback chain.
type priceServiceImpl struct {
	sources []port.PriceSource
	cache   *gocache.Cache
	ttl     time.Duration
	logger  port.Logger
	now     func() time.Time
}

// NewPriceService creates a price resolver over the given ordered provider
// chain. ttl bounds how long a cached price counts as fresh.
func NewPriceService(sources []port.PriceSource, ttl time.Duration, l port.Logger) port.PriceService {
	return &priceServiceImpl{
		sources: sources,
		cache:   gocache.New(gocache.NoExpiration, 0),
		ttl:     ttl,
		logger:  l,
		now:     time.Now,
	}
}

// Resolve implements port.PriceService. It never fails: every failure mode
// degrades to a cached, stale or zero quote.
func (s *priceServiceImpl) Resolve(ctx context.Context, mint string) entity.Quote {
	now := s.now()

	cached, hasCached := s.lookup(mint)
	if hasCached && now.Sub(cached.fetchedAt) < s.ttl {
		metrics.PriceCacheHits.Inc()
		return entity.Quote{PriceUSD: cached.price, Source: entity.QuoteSourceCache, FetchedAt: cached.fetchedAt}
	}

	if _, pegged := peggedMints[mint]; pegged {
		return entity.Quote{PriceUSD: 1, Source: entity.QuoteSourcePegged, FetchedAt: now}
	}

	metrics.PriceCacheMisses.Inc()

	for _, src := range s.sources {
		price, found, err := src.Quote(ctx, mint)
		if err != nil {
			metrics.PriceProviderRequests.WithLabelValues(src.Name(), "error").Inc()
			s.logger.Warn("Price provider failed, trying next", "provider", src.Name(), "mint", mint, "error", err)
			continue
		}
		if !found {
			metrics.PriceProviderRequests.WithLabelValues(src.Name(), "miss").Inc()
			s.logger.Debug("Price provider has no price for mint", "provider", src.Name(), "mint", mint)
			continue
		}
		metrics.PriceProviderRequests.WithLabelValues(src.Name(), "hit").Inc()
		s.cache.Set(mint, priceEntry{price: price, fetchedAt: now}, gocache.NoExpiration)
		return entity.Quote{PriceUSD: price, Source: entity.QuoteSource(src.Name()), FetchedAt: now}
	}

	if hasCached {
		metrics.PriceStaleFallbacks.Inc()
		s.logger.Warn("All price providers failed, using stale cached price", "mint", mint, "fetchedAt", cached.fetchedAt)
		return entity.Quote{PriceUSD: cached.price, Source: entity.QuoteSourceStale, FetchedAt: cached.fetchedAt}
	}

	return entity.Quote{Source: entity.QuoteSourceNone, FetchedAt: now}
}

func (s *priceServiceImpl) lookup(mint string) (priceEntry, bool) {
	v, ok := s.cache.Get(mint)
	if !ok {
		return priceEntry{}, false
	}
	entry, ok := v.(priceEntry)
	return entry, ok
}
