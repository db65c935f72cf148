package entity

// Sentinel identity values for mints that neither the well-known table nor
// the token directory can describe.
const (
	UnknownTokenName   = "Unknown Token"
	UnknownTokenSymbol = "???"
)

// MetadataSource identifies which layer of the resolution chain produced a
// token's identity record.
type MetadataSource string

const (
	// MetadataSourceWellKnown means the static well-known table matched.
	MetadataSourceWellKnown MetadataSource = "well_known"
	// MetadataSourceDirectory means the bulk token directory matched.
	MetadataSourceDirectory MetadataSource = "directory"
	// MetadataSourceFallback means nothing matched; sentinel values were used.
	MetadataSourceFallback MetadataSource = "fallback"
)

// TokenMetadata is the display metadata for a mint plus its current price.
// Identity fields are cached for process lifetime; the quote is re-derived on
// every resolution.
type TokenMetadata struct {
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	LogoURL  string         `json:"logo,omitempty"`
	Verified bool           `json:"verified"`
	Source   MetadataSource `json:"source"`
	Quote    Quote          `json:"quote"`
}

// DirectoryToken is one entry of the bulk token directory
// ({address, name, symbol, logoURI, tags[]}).
type DirectoryToken struct {
	Address string   `json:"address"`
	Name    string   `json:"name"`
	Symbol  string   `json:"symbol"`
	LogoURI string   `json:"logoURI"`
	Tags    []string `json:"tags"`
}

// VerifiedTag is the directory tag that marks a token as verified.
const VerifiedTag = "verified"

// Verified reports whether the directory entry carries the verified tag.
func (t DirectoryToken) Verified() bool {
	for _, tag := range t.Tags {
		if tag == VerifiedTag {
			return true
		}
	}
	return false
}
