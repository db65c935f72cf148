package httpclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// dexScreenerClientImpl queries the fallback price API (DEX Screener).
type dexScreenerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewDEXScreenerClient creates a price source backed by the DEX Screener
// token-pairs API.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, requestsPerSecond float64, logger *zap.Logger) *dexScreenerClientImpl {
	return &dexScreenerClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger.Named("DEXScreenerClient"),
	}
}

// Name implements port.PriceSource.
func (c *dexScreenerClientImpl) Name() string {
	return "dexscreener"
}

// Quote implements port.PriceSource.
func (c *dexScreenerClientImpl) Quote(ctx context.Context, mint string) (float64, bool, error) {
	if mint == "" {
		return 0, false, fmt.Errorf("mint cannot be empty")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, false, err
	}

	requestURL := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, mint)
	c.logger.Debug("Requesting token pairs from DEX Screener", zap.String("url", requestURL))

	body, err := getJSON(ctx, c.client, requestURL, c.timeout)
	if err != nil {
		c.logger.Warn("DEX Screener request failed", zap.String("mint", mint), zap.Error(err))
		return 0, false, err
	}

	price, found, err := parseDEXScreenerResponse(body, mint)
	if err != nil {
		c.logger.Warn("Failed to parse DEX Screener response",
			zap.String("mint", mint),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return 0, false, err
	}
	return price, found, nil
}

// dexPair is the subset of the DEX Screener pair payload the resolver needs.
type dexPair struct {
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Address string `json:"address"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUsd  string `json:"priceUsd"`
	Liquidity *struct {
		Usd float64 `json:"usd"`
	} `json:"liquidity"`
}

type dexTokenPairsResponse struct {
	Pairs []dexPair `json:"pairs"`
}

// parseDEXScreenerResponse picks the pair with the deepest USD liquidity
// whose base token is the requested mint and returns its USD price.
func parseDEXScreenerResponse(body []byte, mint string) (float64, bool, error) {
	var parsed dexTokenPairsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, false, fmt.Errorf("failed to unmarshal DEX Screener response: %w", err)
	}
	if len(parsed.Pairs) == 0 {
		return 0, false, nil
	}

	var best *dexPair
	for i := range parsed.Pairs {
		pair := &parsed.Pairs[i]
		if !strings.EqualFold(pair.BaseToken.Address, mint) {
			continue
		}
		if pair.PriceUsd == "" || pair.PriceUsd == "0" {
			continue
		}
		if best == nil || liquidityUSD(pair) > liquidityUSD(best) {
			best = pair
		}
	}
	if best == nil {
		return 0, false, nil
	}

	price, err := strconv.ParseFloat(best.PriceUsd, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse priceUsd %q: %w", best.PriceUsd, err)
	}
	if price <= 0 {
		return 0, false, nil
	}
	return price, true, nil
}

func liquidityUSD(p *dexPair) float64 {
	if p.Liquidity == nil {
		return 0
	}
	return p.Liquidity.Usd
}
