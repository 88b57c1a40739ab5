package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`
	TLSCertFile string        `env:"TLS_CERT_FILE"`
	TLSKeyFile  string        `env:"TLS_KEY_FILE"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL   string        `env:"-"`
	StateDir    string        `env:"STATE_DIR"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT"`
	Debug       bool          `env:"DEBUG"`
	Version     bool          `env:"-"` // show client version and exit (flag only)
}

const (
	defaultAuthSecret  = "dev-secret-key"
	defaultBaseURL     = "localhost:8081"
	defaultTokenTTL    = 24 * time.Hour
	defaultHTTPTimeout = 10 * time.Second
)

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к sqlite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни access-токена")
	flag.StringVar(&cfg.TLSCertFile, "tls-cert", cfg.TLSCertFile, "PEM-сертификат сервера (нужен при -https)")
	flag.StringVar(&cfg.TLSKeyFile, "tls-key", cfg.TLSKeyFile, "PEM-ключ сервера (нужен при -https)")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the auth server in host:port form")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "HTTPS: server listens with -tls-cert/-tls-key, client uses the https scheme")
	// Client flags
	flag.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for the stored token and login (client)")
	flag.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP request timeout (client)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log HTTP requests (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = defaultAuthSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}
}
