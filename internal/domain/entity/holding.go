package entity

// NativeMint is the sentinel mint identifier for the chain's native coin
// (wrapped SOL). Token holdings are keyed by their real mint address.
const NativeMint = "So11111111111111111111111111111111111111112"

// LamportsPerSol is the number of base units in one SOL (9 decimals).
const LamportsPerSol = 1_000_000_000

// Holding represents one position in a wallet portfolio. Amount is always the
// human-readable quantity, never raw base units.
type Holding struct {
	Mint     string  `json:"mint"`
	Amount   float64 `json:"amount"`
	Decimals uint8   `json:"decimals"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	LogoURL  string  `json:"logo,omitempty"`
	PriceUSD float64 `json:"priceUSD"`
	Verified bool    `json:"verified"`
	ValueUSD float64 `json:"valueUSD"`

	// PriceSource distinguishes a genuinely-zero price from an unresolved one.
	PriceSource QuoteSource `json:"priceSource"`
}

// NativeBalance is the native-coin balance of a wallet in both raw and
// human-readable form.
type NativeBalance struct {
	Lamports  uint64  `json:"lamports"`
	UIBalance float64 `json:"uiBalance"`
	PriceUSD  float64 `json:"priceUSD"`
	ValueUSD  float64 `json:"valueUSD"`
}
