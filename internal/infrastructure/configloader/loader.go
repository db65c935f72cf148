package configloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LedgerConfig holds the remote ledger RPC endpoint configuration.
type LedgerConfig struct {
	RPCURL               string `yaml:"rpcURL"`
	Commitment           string `yaml:"commitment"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// JupiterConfig holds the primary price API and the bulk token directory.
type JupiterConfig struct {
	PriceBaseURL         string  `yaml:"priceBaseURL"`
	TokenListURL         string  `yaml:"tokenListURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
}

// DEXScreenerConfig holds the fallback price API configuration.
type DEXScreenerConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
}

// PriceCacheConfig holds price-cache tuning.
type PriceCacheConfig struct {
	TTLMillis int64 `yaml:"ttlMillis"`
}

// PerformanceConfig holds fan-out limits.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"max_concurrent_routines"`
}

// WalletConfig holds wallet-provider settings.
type WalletConfig struct {
	InstallURL string `yaml:"installURL"`
	// Address makes the service run against a fixed wallet instead of a
	// browser extension. Empty means no provider is available.
	Address string `yaml:"address"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Ledger      LedgerConfig      `yaml:"ledger"`
	Jupiter     JupiterConfig     `yaml:"jupiter"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	PriceCache  PriceCacheConfig  `yaml:"priceCache"`
	Performance PerformanceConfig `yaml:"performance"`
	Wallet      WalletConfig      `yaml:"wallet"`
}

// Load reads the YAML configuration file from the given path and unmarshals
// it, applying defaults for anything unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Ledger.RPCURL == "" {
		cfg.Ledger.RPCURL = "https://api.mainnet-beta.solana.com"
	}
	if cfg.Ledger.Commitment == "" {
		cfg.Ledger.Commitment = "confirmed"
	}
	if cfg.Ledger.RequestTimeoutMillis <= 0 {
		cfg.Ledger.RequestTimeoutMillis = 15000
	}
	if cfg.Jupiter.PriceBaseURL == "" {
		cfg.Jupiter.PriceBaseURL = "https://price.jup.ag/v4"
	}
	if cfg.Jupiter.TokenListURL == "" {
		cfg.Jupiter.TokenListURL = "https://token.jup.ag/all"
	}
	if cfg.Jupiter.RequestTimeoutMillis <= 0 {
		cfg.Jupiter.RequestTimeoutMillis = 10000
	}
	if cfg.Jupiter.RateLimitPerSecond <= 0 {
		cfg.Jupiter.RateLimitPerSecond = 10
	}
	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
	}
	if cfg.DEXScreener.RequestTimeoutMillis <= 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000
	}
	if cfg.DEXScreener.RateLimitPerSecond <= 0 {
		cfg.DEXScreener.RateLimitPerSecond = 5
	}
	if cfg.PriceCache.TTLMillis <= 0 {
		cfg.PriceCache.TTLMillis = 30000
	}
	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Wallet.InstallURL == "" {
		cfg.Wallet.InstallURL = "https://phantom.app/"
	}
}
