package entity

import "time"

// QuoteSource identifies where a USD price came from. The pipeline never
// fails on price lookups, so callers use the source to tell a real zero
// apart from "no provider could price this mint".
type QuoteSource string

const (
	// QuoteSourceCache means a non-expired cache entry was returned.
	QuoteSourceCache QuoteSource = "cache"
	// QuoteSourcePegged means the mint is a known stable-pegged token (price 1).
	QuoteSourcePegged QuoteSource = "pegged"
	// QuoteSourceJupiter means the primary price provider answered.
	QuoteSourceJupiter QuoteSource = "jupiter"
	// QuoteSourceDexScreener means the fallback price provider answered.
	QuoteSourceDexScreener QuoteSource = "dexscreener"
	// QuoteSourceStale means all live fetches failed and an expired cache
	// entry was used as a last resort.
	QuoteSourceStale QuoteSource = "stale"
	// QuoteSourceNone means the price is unknown; PriceUSD is 0.
	QuoteSourceNone QuoteSource = "none"
)

// Quote is a best-effort USD unit price for a mint.
type Quote struct {
	PriceUSD  float64     `json:"priceUSD"`
	Source    QuoteSource `json:"source"`
	FetchedAt time.Time   `json:"fetchedAt"`
}

// Known reports whether the quote carries an actual resolved price.
func (q Quote) Known() bool {
	return q.Source != QuoteSourceNone
}
