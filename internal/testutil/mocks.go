// Package testutil holds shared fakes for the application ports.
package testutil

import (
	"context"
	"sync"

	"solfolio/internal/domain/entity"
)

// MockCall records one invocation on a mock.
type MockCall struct {
	Method string
	Args   []interface{}
}

// NopLogger is a port.Logger that discards everything.
type NopLogger struct{}

func (NopLogger) Info(msg string, args ...any)  {}
func (NopLogger) Debug(msg string, args ...any) {}
func (NopLogger) Warn(msg string, args ...any)  {}
func (NopLogger) Error(msg string, args ...any) {}

// MockWalletProvider is a mock implementation of port.WalletProvider.
type MockWalletProvider struct {
	mu sync.Mutex

	// Function hooks for custom behavior
	ConnectFunc                func(ctx context.Context) (string, error)
	DisconnectFunc             func(ctx context.Context) error
	SignMessageFunc            func(ctx context.Context, message []byte) ([]byte, error)
	SignAndSendTransactionFunc func(ctx context.Context, tx []byte) (string, error)

	// Default connect result when ConnectFunc is unset
	Address string

	Calls []MockCall
}

func NewMockWalletProvider(address string) *MockWalletProvider {
	return &MockWalletProvider{Address: address}
}

func (m *MockWalletProvider) record(method string, args ...interface{}) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
	m.mu.Unlock()
}

// CallCount returns how many times method was invoked.
func (m *MockWalletProvider) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockWalletProvider) Connect(ctx context.Context) (string, error) {
	m.record("Connect")
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	return m.Address, nil
}

func (m *MockWalletProvider) Disconnect(ctx context.Context) error {
	m.record("Disconnect")
	if m.DisconnectFunc != nil {
		return m.DisconnectFunc(ctx)
	}
	return nil
}

func (m *MockWalletProvider) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	m.record("SignMessage", message)
	if m.SignMessageFunc != nil {
		return m.SignMessageFunc(ctx, message)
	}
	return []byte("signed"), nil
}

func (m *MockWalletProvider) SignAndSendTransaction(ctx context.Context, tx []byte) (string, error) {
	m.record("SignAndSendTransaction", tx)
	if m.SignAndSendTransactionFunc != nil {
		return m.SignAndSendTransactionFunc(ctx, tx)
	}
	return "mock-signature", nil
}

// MockLedgerClient is a mock implementation of port.LedgerClient backed by
// in-memory fixtures.
type MockLedgerClient struct {
	mu sync.Mutex

	// Function hooks
	GetBalanceFunc              func(ctx context.Context, address string) (uint64, error)
	GetTokenAccountsByOwnerFunc func(ctx context.Context, owner, programID string) ([]entity.TokenAccount, error)
	GetTokenAccountBalanceFunc  func(ctx context.Context, account string) (entity.TokenAmount, error)

	// Fixture data used when the hooks are unset
	Lamports uint64
	Accounts []entity.TokenAccount
	Balances map[string]entity.TokenAmount

	Calls []MockCall
}

func NewMockLedgerClient() *MockLedgerClient {
	return &MockLedgerClient{Balances: make(map[string]entity.TokenAmount)}
}

func (m *MockLedgerClient) record(method string, args ...interface{}) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
	m.mu.Unlock()
}

// AddAccount registers a funded token account and its exact balance.
func (m *MockLedgerClient) AddAccount(acct entity.TokenAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Accounts = append(m.Accounts, acct)
	m.Balances[acct.Pubkey] = entity.TokenAmount{
		RawAmount: acct.RawAmount,
		Decimals:  acct.Decimals,
		UIAmount:  acct.UIAmount,
	}
}

func (m *MockLedgerClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	m.record("GetBalance", address)
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, address)
	}
	return m.Lamports, nil
}

func (m *MockLedgerClient) GetTokenAccountsByOwner(ctx context.Context, owner, programID string) ([]entity.TokenAccount, error) {
	m.record("GetTokenAccountsByOwner", owner, programID)
	if m.GetTokenAccountsByOwnerFunc != nil {
		return m.GetTokenAccountsByOwnerFunc(ctx, owner, programID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.TokenAccount, len(m.Accounts))
	copy(out, m.Accounts)
	return out, nil
}

func (m *MockLedgerClient) GetTokenAccountBalance(ctx context.Context, account string) (entity.TokenAmount, error) {
	m.record("GetTokenAccountBalance", account)
	if m.GetTokenAccountBalanceFunc != nil {
		return m.GetTokenAccountBalanceFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Balances[account], nil
}

// MockPriceSource is a mock implementation of port.PriceSource.
type MockPriceSource struct {
	mu sync.Mutex

	SourceName string
	QuoteFunc  func(ctx context.Context, mint string) (float64, bool, error)

	// Prices used when QuoteFunc is unset; absent mints report not found.
	Prices map[string]float64

	Calls []MockCall
}

func NewMockPriceSource(name string) *MockPriceSource {
	return &MockPriceSource{SourceName: name, Prices: make(map[string]float64)}
}

func (m *MockPriceSource) Name() string { return m.SourceName }

func (m *MockPriceSource) Quote(ctx context.Context, mint string) (float64, bool, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "Quote", Args: []interface{}{mint}})
	m.mu.Unlock()

	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, mint)
	}
	price, ok := m.Prices[mint]
	return price, ok, nil
}

// CallCount returns how many quotes were requested.
func (m *MockPriceSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockTokenDirectory is a mock implementation of port.TokenDirectory.
type MockTokenDirectory struct {
	mu sync.Mutex

	FetchAllFunc func(ctx context.Context) ([]entity.DirectoryToken, error)
	Tokens       []entity.DirectoryToken

	FetchCount int
}

func (m *MockTokenDirectory) FetchAll(ctx context.Context) ([]entity.DirectoryToken, error) {
	m.mu.Lock()
	m.FetchCount++
	m.mu.Unlock()

	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx)
	}
	return m.Tokens, nil
}

// MockPriceService is a mock implementation of port.PriceService.
type MockPriceService struct {
	ResolveFunc func(ctx context.Context, mint string) entity.Quote
	Quotes      map[string]entity.Quote
}

func (m *MockPriceService) Resolve(ctx context.Context, mint string) entity.Quote {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, mint)
	}
	if q, ok := m.Quotes[mint]; ok {
		return q
	}
	return entity.Quote{Source: entity.QuoteSourceNone}
}

// MockMetadataService is a mock implementation of port.MetadataService.
type MockMetadataService struct {
	ResolveFunc func(ctx context.Context, mint string) entity.TokenMetadata
	Records     map[string]entity.TokenMetadata
}

func (m *MockMetadataService) Resolve(ctx context.Context, mint string) entity.TokenMetadata {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, mint)
	}
	if md, ok := m.Records[mint]; ok {
		return md
	}
	return entity.TokenMetadata{
		Name:   entity.UnknownTokenName,
		Symbol: entity.UnknownTokenSymbol,
		Source: entity.MetadataSourceFallback,
	}
}

// MockHoldingsService is a mock implementation of port.HoldingsService.
type MockHoldingsService struct {
	mu sync.Mutex

	ListHoldingsFunc  func(ctx context.Context, address string) []entity.Holding
	NativeBalanceFunc func(ctx context.Context, address string) entity.NativeBalance

	Holdings []entity.Holding
	Native   entity.NativeBalance

	ListCalls int
}

func (m *MockHoldingsService) ListHoldings(ctx context.Context, address string) []entity.Holding {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListHoldingsFunc != nil {
		return m.ListHoldingsFunc(ctx, address)
	}
	return m.Holdings
}

func (m *MockHoldingsService) NativeBalance(ctx context.Context, address string) entity.NativeBalance {
	if m.NativeBalanceFunc != nil {
		return m.NativeBalanceFunc(ctx, address)
	}
	return m.Native
}
