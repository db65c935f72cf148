package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solfolio/internal/app/service"
	"solfolio/internal/domain/entity"
	"solfolio/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"

func newTestRouter(provider *testutil.MockWalletProvider, holdings *testutil.MockHoldingsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	session := service.NewSession(provider, holdings, testutil.NopLogger{})
	trades := service.NewTradeService(provider, testutil.NopLogger{})
	return SetupRouter(
		NewSessionHandler(session),
		NewPortfolioHandler(holdings),
		NewTradeHandler(trades),
		nil,
	)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthzEndpoint(t *testing.T) {
	router := newTestRouter(testutil.NewMockWalletProvider(testOwner), &testutil.MockHoldingsService{})

	w := doRequest(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetSessionDisconnected(t *testing.T) {
	router := newTestRouter(testutil.NewMockWalletProvider(testOwner), &testutil.MockHoldingsService{})

	w := doRequest(router, http.MethodGet, "/api/v1/session", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Connected)
	assert.Equal(t, entity.SessionDisconnected, resp.Data.State)
}

func TestConnectAndRefreshFlow(t *testing.T) {
	holdings := &testutil.MockHoldingsService{
		Holdings: []entity.Holding{{Mint: entity.NativeMint, Symbol: "SOL", ValueUSD: 100}},
		Native:   entity.NativeBalance{Lamports: 1_000_000_000, UIBalance: 1, PriceUSD: 100, ValueUSD: 100},
	}
	router := newTestRouter(testutil.NewMockWalletProvider(testOwner), holdings)

	w := doRequest(router, http.MethodPost, "/api/v1/session/connect", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Connected)
	assert.Equal(t, testOwner, resp.Data.Address)
	assert.Len(t, resp.Data.Holdings, 1)
	assert.Equal(t, 100.0, resp.Data.TotalValueUSD)

	w = doRequest(router, http.MethodPost, "/api/v1/session/refresh", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConnectProviderUnavailable(t *testing.T) {
	provider := testutil.NewMockWalletProvider("")
	provider.ConnectFunc = func(ctx context.Context) (string, error) {
		return "", &entity.ProviderUnavailableError{InstallURL: "https://phantom.app/"}
	}
	router := newTestRouter(provider, &testutil.MockHoldingsService{})

	w := doRequest(router, http.MethodPost, "/api/v1/session/connect", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://phantom.app/", resp.InstallURL)
}

func TestRefreshWithoutConnection(t *testing.T) {
	router := newTestRouter(testutil.NewMockWalletProvider(testOwner), &testutil.MockHoldingsService{})

	w := doRequest(router, http.MethodPost, "/api/v1/session/refresh", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDisconnectAlwaysResets(t *testing.T) {
	provider := testutil.NewMockWalletProvider(testOwner)
	router := newTestRouter(provider, &testutil.MockHoldingsService{})

	doRequest(router, http.MethodPost, "/api/v1/session/connect", "")
	w := doRequest(router, http.MethodPost, "/api/v1/session/disconnect", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Connected)
	assert.Empty(t, resp.Data.Address)
}

func TestGetPortfolioByAddress(t *testing.T) {
	holdings := &testutil.MockHoldingsService{
		Holdings: []entity.Holding{
			{Mint: entity.NativeMint, Symbol: "SOL", ValueUSD: 200},
			{Mint: "some-mint", Symbol: "OBSC", ValueUSD: 50},
		},
		Native: entity.NativeBalance{Lamports: 2_000_000_000, UIBalance: 2, PriceUSD: 100, ValueUSD: 200},
	}
	router := newTestRouter(testutil.NewMockWalletProvider(testOwner), holdings)

	w := doRequest(router, http.MethodGet, "/api/v1/portfolio/"+testOwner, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp APIPortfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testOwner, resp.Data.Address)
	assert.Len(t, resp.Data.Holdings, 2)
	assert.Equal(t, 250.0, resp.Data.TotalValueUSD)
}

func TestSubmitTradeValidation(t *testing.T) {
	router := newTestRouter(testutil.NewMockWalletProvider(testOwner), &testutil.MockHoldingsService{})

	w := doRequest(router, http.MethodPost, "/api/v1/trade", `{"from_mint":"a"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := `{"from_mint":"` + entity.NativeMint + `","to_mint":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","amount":1.5}`
	w = doRequest(router, http.MethodPost, "/api/v1/trade", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TradeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mock-signature", resp.Signature)
}
