package httpclient

import (
	"context"
	"fmt"
	"time"

	"solfolio/internal/domain/entity"
	"solfolio/internal/pkg/utils"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// tokenListClientImpl fetches the bulk token directory. The directory is
// large (tens of thousands of entries), so callers fetch it at most once per
// process and cache the snapshot.
type tokenListClientImpl struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewTokenListClient creates a directory client for the given bulk list URL.
func NewTokenListClient(url string, timeout time.Duration, logger *zap.Logger) *tokenListClientImpl {
	return &tokenListClientImpl{
		client:  &fasthttp.Client{MaxResponseBodySize: 64 * 1024 * 1024},
		url:     url,
		timeout: timeout,
		logger:  logger.Named("TokenListClient"),
	}
}

// FetchAll implements port.TokenDirectory. The single bulk GET is retried
// with a fixed delay; a bad payload is not.
func (c *tokenListClientImpl) FetchAll(ctx context.Context) ([]entity.DirectoryToken, error) {
	var body []byte
	err := utils.Retry(ctx, utils.DefaultRetryAttempts, utils.DefaultRetryDelay, func() error {
		var fetchErr error
		body, fetchErr = getJSON(ctx, c.client, c.url, c.timeout)
		return fetchErr
	})
	if err != nil {
		c.logger.Error("Token directory fetch failed", zap.String("url", c.url), zap.Error(err))
		return nil, err
	}

	var tokens []entity.DirectoryToken
	if err := json.Unmarshal(body, &tokens); err != nil {
		c.logger.Error("Failed to unmarshal token directory", zap.String("url", c.url), zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal token directory from %s: %w", c.url, err)
	}

	c.logger.Info("Token directory fetched", zap.Int("tokenCount", len(tokens)))
	return tokens, nil
}
