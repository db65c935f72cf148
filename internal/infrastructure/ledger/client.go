package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"solfolio/internal/domain/entity"
	"solfolio/internal/pkg/metrics"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single RPC round trip when no custom client is set.
const DefaultTimeout = 15 * time.Second

// Client is a JSON-RPC 2.0 client for the ledger endpoint.
type Client struct {
	endpoint   string
	commitment string
	client     *http.Client
	logger     *zap.Logger
	requestID  atomic.Uint64
}

// Option configures Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithCommitment sets the commitment level sent with queries.
func WithCommitment(commitment string) Option {
	return func(c *Client) {
		c.commitment = commitment
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new ledger RPC client.
func NewClient(endpoint string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		commitment: "confirmed",
		client:     &http.Client{Timeout: DefaultTimeout},
		logger:     logger.Named("LedgerClient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// call performs a single JSON-RPC call. Resilience lives above this layer:
// the aggregation pipeline degrades on error instead of retrying here.
func (c *Client) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	start := time.Now()
	defer func() {
		metrics.LedgerRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}
	return nil
}

// GetBalance fetches the native-coin balance of an address in base units.
func (c *Client) GetBalance(ctx context.Context, address string) (uint64, error) {
	params := []interface{}{
		address,
		map[string]interface{}{"commitment": c.commitment},
	}

	var result getBalanceResult
	if err := c.call(ctx, "getBalance", params, &result); err != nil {
		c.logger.Warn("getBalance failed", zap.String("address", address), zap.Error(err))
		return 0, err
	}
	return result.Value, nil
}

type getBalanceResult struct {
	Value uint64 `json:"value"`
}

// GetTokenAccountsByOwner fetches every parsed token-holding account owned by
// the address under the given program namespace.
func (c *Client) GetTokenAccountsByOwner(ctx context.Context, owner string, programID string) ([]entity.TokenAccount, error) {
	params := []interface{}{
		owner,
		map[string]interface{}{"programId": programID},
		map[string]interface{}{
			"encoding":   "jsonParsed",
			"commitment": c.commitment,
		},
	}

	var result tokenAccountsResult
	if err := c.call(ctx, "getTokenAccountsByOwner", params, &result); err != nil {
		c.logger.Warn("getTokenAccountsByOwner failed", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}

	accounts := make([]entity.TokenAccount, 0, len(result.Value))
	for _, item := range result.Value {
		info := item.Account.Data.Parsed.Info
		accounts = append(accounts, entity.TokenAccount{
			Pubkey:    item.Pubkey,
			Mint:      info.Mint,
			RawAmount: info.TokenAmount.Amount,
			Decimals:  info.TokenAmount.Decimals,
			UIAmount:  uiAmount(info.TokenAmount),
		})
	}
	return accounts, nil
}

// GetTokenAccountBalance fetches the exact on-chain balance of a single token
// account.
func (c *Client) GetTokenAccountBalance(ctx context.Context, account string) (entity.TokenAmount, error) {
	params := []interface{}{
		account,
		map[string]interface{}{"commitment": c.commitment},
	}

	var result tokenAccountBalanceResult
	if err := c.call(ctx, "getTokenAccountBalance", params, &result); err != nil {
		c.logger.Warn("getTokenAccountBalance failed", zap.String("account", account), zap.Error(err))
		return entity.TokenAmount{}, err
	}

	return entity.TokenAmount{
		RawAmount: result.Value.Amount,
		Decimals:  result.Value.Decimals,
		UIAmount:  uiAmount(result.Value),
	}, nil
}

// uiAmount prefers the node-computed value and falls back to deriving it from
// the raw amount; uiAmount is null for some legacy accounts.
func uiAmount(ta tokenAmountJSON) float64 {
	if ta.UIAmount != nil {
		return *ta.UIAmount
	}
	if ta.UIAmountString != "" {
		if v, err := strconv.ParseFloat(ta.UIAmountString, 64); err == nil {
			return v
		}
	}
	raw, err := strconv.ParseFloat(ta.Amount, 64)
	if err != nil {
		return 0
	}
	div := 1.0
	for i := uint8(0); i < ta.Decimals; i++ {
		div *= 10
	}
	return raw / div
}

type tokenAmountJSON struct {
	Amount         string   `json:"amount"`
	Decimals       uint8    `json:"decimals"`
	UIAmount       *float64 `json:"uiAmount"`
	UIAmountString string   `json:"uiAmountString"`
}

type tokenAccountsResult struct {
	Value []struct {
		Pubkey  string `json:"pubkey"`
		Account struct {
			Data struct {
				Parsed struct {
					Info struct {
						Mint        string          `json:"mint"`
						TokenAmount tokenAmountJSON `json:"tokenAmount"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"account"`
	} `json:"value"`
}

type tokenAccountBalanceResult struct {
	Value tokenAmountJSON `json:"value"`
}
