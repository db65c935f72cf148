package service

import (
	"context"
	"sync"
	"time"

	"solfolio/internal/app/port"
	"solfolio/internal/domain/entity"
	"solfolio/internal/pkg/metrics"
)

// Session owns all wallet-session state: connection status, the active
// address and the last-fetched portfolio. It sequences the aggregation
// pipeline; all mutation goes through Connect/Disconnect/Refresh.
type Session struct {
	provider port.WalletProvider
	holdings port.HoldingsService
	logger   port.Logger

	mu          sync.Mutex
	state       entity.SessionState
	address     string
	balance     entity.NativeBalance
	list        []entity.Holding
	total       float64
	lastUpdated *time.Time
	loading     bool
	inFlight    bool
	subs        []chan struct{}
}

// NewSession creates an empty, disconnected session.
func NewSession(provider port.WalletProvider, holdings port.HoldingsService, l port.Logger) *Session {
	return &Session{
		provider: provider,
		holdings: holdings,
		logger:   l,
		state:    entity.SessionDisconnected,
	}
}

// Connect obtains an address from the wallet provider and runs a full
// fetch. On provider absence or rejection the session stays disconnected
// and the provider error is returned for the UI layer; there is no retry.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.state == entity.SessionConnected {
		s.mu.Unlock()
		return nil
	}
	s.state = entity.SessionConnecting
	s.mu.Unlock()

	address, err := s.provider.Connect(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = entity.SessionDisconnected
		s.mu.Unlock()
		s.logger.Warn("Wallet connect failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.state = entity.SessionConnected
	s.address = address
	s.mu.Unlock()
	s.logger.Info("Wallet connected", "address", address)

	s.fetch(ctx)
	return nil
}

// Refresh re-runs the full fetch for the current address. A refresh issued
// while another is in flight is suppressed, not queued.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.state != entity.SessionConnected {
		s.mu.Unlock()
		return entity.ErrNotConnected
	}
	s.mu.Unlock()

	s.fetch(ctx)
	return nil
}

// fetch runs the balance+holdings pipeline once. Overlapping callers no-op.
func (s *Session) fetch(ctx context.Context) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		metrics.SessionRefreshes.WithLabelValues("suppressed").Inc()
		s.logger.Debug("Refresh already in flight, suppressing")
		return
	}
	s.inFlight = true
	s.loading = true
	address := s.address
	s.mu.Unlock()

	metrics.SessionRefreshes.WithLabelValues("run").Inc()
	balance := s.holdings.NativeBalance(ctx, address)
	list := s.holdings.ListHoldings(ctx, address)
	total := TotalValue(list)

	s.mu.Lock()
	// A disconnect during the fetch wins: the result is ignored, not applied.
	if s.state == entity.SessionConnected && s.address == address {
		now := time.Now()
		s.balance = balance
		s.list = list
		s.total = total
		s.lastUpdated = &now
	}
	s.loading = false
	s.inFlight = false
	s.mu.Unlock()

	s.notify()
}

// Disconnect resets the session to its empty initial state. The provider is
// told first, but the reset happens even if that call fails.
func (s *Session) Disconnect(ctx context.Context) error {
	err := s.provider.Disconnect(ctx)
	if err != nil {
		s.logger.Warn("Provider disconnect failed, resetting session anyway", "error", err)
	}

	s.mu.Lock()
	s.state = entity.SessionDisconnected
	s.address = ""
	s.balance = entity.NativeBalance{}
	s.list = nil
	s.total = 0
	s.lastUpdated = nil
	s.loading = false
	s.mu.Unlock()

	s.logger.Info("Wallet disconnected")
	return err
}

// Subscribe returns a channel that receives a signal after every completed
// refresh. Delivery is at-most-once per emission: a subscriber that has not
// drained the previous signal does not get another.
func (s *Session) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Session) notify() {
	s.mu.Lock()
	subs := make([]chan struct{}, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Snapshot returns a point-in-time copy of the session state.
func (s *Session) Snapshot() entity.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	holdings := make([]entity.Holding, len(s.list))
	copy(holdings, s.list)

	return entity.SessionSnapshot{
		Address:       s.address,
		State:         s.state,
		Connected:     s.state == entity.SessionConnected,
		Loading:       s.loading,
		Balance:       s.balance,
		Holdings:      holdings,
		TotalValueUSD: s.total,
		LastUpdatedAt: s.lastUpdated,
	}
}
