package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// jupiterPriceClientImpl queries the primary price API (Jupiter).
type jupiterPriceClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewJupiterPriceClient creates a price source backed by the Jupiter price
// API. requestsPerSecond throttles outgoing calls client-side.
func NewJupiterPriceClient(baseURL string, timeout time.Duration, requestsPerSecond float64, logger *zap.Logger) *jupiterPriceClientImpl {
	return &jupiterPriceClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger.Named("JupiterPriceClient"),
	}
}

// Name implements port.PriceSource.
func (c *jupiterPriceClientImpl) Name() string {
	return "jupiter"
}

// Quote implements port.PriceSource.
func (c *jupiterPriceClientImpl) Quote(ctx context.Context, mint string) (float64, bool, error) {
	if mint == "" {
		return 0, false, fmt.Errorf("mint cannot be empty")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, false, err
	}

	requestURL := fmt.Sprintf("%s/price?ids=%s", c.baseURL, mint)
	c.logger.Debug("Requesting price from Jupiter", zap.String("url", requestURL))

	body, err := getJSON(ctx, c.client, requestURL, c.timeout)
	if err != nil {
		c.logger.Warn("Jupiter price request failed", zap.String("mint", mint), zap.Error(err))
		return 0, false, err
	}

	price, found, err := parseJupiterPriceResponse(body, mint)
	if err != nil {
		c.logger.Warn("Failed to parse Jupiter price response",
			zap.String("mint", mint),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return 0, false, err
	}
	return price, found, nil
}

// jupiterPriceResponse is the /price?ids= payload shape.
type jupiterPriceResponse struct {
	Data map[string]struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	} `json:"data"`
}

// parseJupiterPriceResponse extracts the USD price for mint from a Jupiter
// price payload. Found is false when the API has no entry for the mint.
func parseJupiterPriceResponse(body []byte, mint string) (float64, bool, error) {
	var parsed jupiterPriceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, false, fmt.Errorf("failed to unmarshal jupiter price response: %w", err)
	}
	entry, ok := parsed.Data[mint]
	if !ok || entry.Price <= 0 {
		return 0, false, nil
	}
	return entry.Price, true, nil
}
