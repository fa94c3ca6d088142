package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string   `default:"0.0.0.0:8080" usage:"API server listen address"`
	CatalogFiles []string `usage:"Catalog JSON files to load (built-in demo catalog when empty)" flag:"catalog-files"`
	Shipping     ShippingConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// ShippingConfig controls the shipping fee formula. Values are decimal
// strings to avoid float drift in money amounts.
type ShippingConfig struct {
	BaseFee   string `default:"8"  usage:"Flat shipping fee charged per checkout" flag:"base-fee"`
	PerKgRate string `default:"20" usage:"Shipping fee per kilogram" flag:"per-kg-rate"`
}

// RateLimitConfig controls the per-client fixed window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// Calculator builds the fee calculator described by the config.
func (c ShippingConfig) Calculator() (base, rate decimal.Decimal, err error) {
	base, err = decimal.NewFromString(c.BaseFee)
	if err != nil {
		return base, rate, errors.Wrap(err, "parse base fee")
	}
	rate, err = decimal.NewFromString(c.PerKgRate)
	if err != nil {
		return base, rate, errors.Wrap(err, "parse per-kg rate")
	}
	return base, rate, nil
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/shopfront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like PORT to the
// application's SHOP_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
