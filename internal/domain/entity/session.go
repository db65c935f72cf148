package entity

import "time"

// SessionState is the connection lifecycle state of the wallet session.
type SessionState string

const (
	SessionDisconnected SessionState = "disconnected"
	SessionConnecting   SessionState = "connecting"
	SessionConnected    SessionState = "connected"
)

// SessionSnapshot is a point-in-time copy of the wallet session, safe to hand
// to the presentation layer.
type SessionSnapshot struct {
	Address       string        `json:"address,omitempty"`
	State         SessionState  `json:"state"`
	Connected     bool          `json:"connected"`
	Loading       bool          `json:"loading"`
	Balance       NativeBalance `json:"balance"`
	Holdings      []Holding     `json:"holdings"`
	TotalValueUSD float64       `json:"totalValueUSD"`
	LastUpdatedAt *time.Time    `json:"lastUpdatedAt,omitempty"`
}
