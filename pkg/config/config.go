// Package config loads client configuration from a YAML file with
// environment overrides. A .env file in the working directory is loaded
// first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// WalletConfig identifies the signing wallet and its funding setup.
type WalletConfig struct {
	// PrivateKey is the hex-encoded signing key. Prefer the
	// POLY_PRIVATE_KEY environment variable over the file.
	PrivateKey string `yaml:"private_key"`
	// FunderAddress is the proxy/safe wallet holding funds. Empty for
	// plain EOA trading.
	FunderAddress string `yaml:"funder_address"`
	// SignatureType: 0 EOA, 1 email/magic, 2 browser proxy, 3 safe.
	SignatureType int `yaml:"signature_type"`
}

// APIConfig addresses the CLOB deployment.
type APIConfig struct {
	Host    string `yaml:"host"`
	WSHost  string `yaml:"ws_host"`
	ChainID int    `yaml:"chain_id"`
}

// SecretStoreConfig locates the local credential store.
type SecretStoreConfig struct {
	Path string `yaml:"path"`
	// EncryptionKey is 32 bytes, hex or base64. Prefer the
	// POLY_STORE_KEY environment variable over the file.
	EncryptionKey string `yaml:"encryption_key"`
}

// LogConfig mirrors logger.Config.
type LogConfig struct {
	Level      string `yaml:"level"`
	OutputFile string `yaml:"output_file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Config is the full client configuration.
type Config struct {
	Wallet WalletConfig      `yaml:"wallet"`
	API    APIConfig         `yaml:"api"`
	Store  SecretStoreConfig `yaml:"store"`
	Log    LogConfig         `yaml:"log"`
	// Nonce selects which credential triple L1 auth derives. Different
	// nonces yield independent triples for the same wallet.
	Nonce uint64 `yaml:"nonce"`
}

// Default returns the mainnet configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Host:    "https://clob.polymarket.com",
			WSHost:  "wss://ws-subscriptions-clob.polymarket.com",
			ChainID: 137,
		},
		Store: SecretStoreConfig{Path: ".polymarket/secrets"},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Load reads the YAML file at path on top of defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	// Missing .env is fine; it is a development convenience.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("POLY_PRIVATE_KEY"); v != "" {
		c.Wallet.PrivateKey = v
	}
	if v := os.Getenv("POLY_FUNDER_ADDRESS"); v != "" {
		c.Wallet.FunderAddress = v
	}
	if v := os.Getenv("POLY_SIGNATURE_TYPE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Wallet.SignatureType = n
		}
	}
	if v := os.Getenv("POLY_API_HOST"); v != "" {
		c.API.Host = v
	}
	if v := os.Getenv("POLY_WS_HOST"); v != "" {
		c.API.WSHost = v
	}
	if v := os.Getenv("POLY_CHAIN_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.ChainID = n
		}
	}
	if v := os.Getenv("POLY_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("POLY_STORE_KEY"); v != "" {
		c.Store.EncryptionKey = v
	}
	if v := os.Getenv("POLY_NONCE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Nonce = n
		}
	}
	if v := os.Getenv("POLY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.API.Host == "" {
		return fmt.Errorf("config: api host is required")
	}
	if !strings.HasPrefix(c.API.Host, "http://") && !strings.HasPrefix(c.API.Host, "https://") {
		return fmt.Errorf("config: api host %q must be an http(s) URL", c.API.Host)
	}
	switch c.API.ChainID {
	case 137, 80002:
	default:
		return fmt.Errorf("config: unsupported chain id %d", c.API.ChainID)
	}
	if c.Wallet.SignatureType < 0 || c.Wallet.SignatureType > 3 {
		return fmt.Errorf("config: signature type %d out of range", c.Wallet.SignatureType)
	}
	if c.Wallet.SignatureType != 0 && c.Wallet.FunderAddress == "" {
		return fmt.Errorf("config: signature type %d requires funder_address", c.Wallet.SignatureType)
	}
	return nil
}
