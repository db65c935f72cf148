package entity

// TokenProgramID is the SPL token program namespace that owns all
// token-holding accounts.
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// TokenAccount is one parsed token-holding account owned by a wallet, as
// returned by the ledger's getTokenAccountsByOwner.
type TokenAccount struct {
	Pubkey    string
	Mint      string
	RawAmount string
	Decimals  uint8
	UIAmount  float64
}

// TokenAmount is the exact on-chain balance of a single token account.
type TokenAmount struct {
	RawAmount string
	Decimals  uint8
	UIAmount  float64
}
