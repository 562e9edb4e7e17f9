package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		// Shared secret of the external identity provider. Tokens are only
		// verified here, never issued.
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`

	Payment struct {
		WalletBin      string  `yaml:"wallet_bin"`       // bark CLI binary, default "bark"
		SatsPerUSD     float64 `yaml:"sats_per_usd"`     // fixed conversion rate, placeholder for a live feed
		WalletTimeout  int     `yaml:"wallet_timeout"`   // per-invocation timeout, seconds
		PollInterval   int     `yaml:"poll_interval"`    // status poller interval, seconds
		PollAttempts   int     `yaml:"poll_attempts"`    // status poller attempt budget
		ReconcileEvery int     `yaml:"reconcile_every"`  // pending-payment reconciliation period, seconds
		ExpirySweep    int     `yaml:"expiry_sweep"`     // subscription expiry sweep period, seconds
	} `yaml:"payment"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		log.Println("Loading config from config.yaml")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyPaymentDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Loading config from environment variables")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret
	cfg.Metrics.Enabled = true

	applyPaymentDefaults(&cfg)
	AppConfig = &cfg
}

func applyPaymentDefaults(cfg *Config) {
	if cfg.Payment.WalletBin == "" {
		cfg.Payment.WalletBin = "bark"
	}
	if cfg.Payment.SatsPerUSD == 0 {
		// Approximate 1 USD = 3000 sats. A real deployment should replace
		// this with an exchange-rate feed.
		cfg.Payment.SatsPerUSD = 3000
	}
	if cfg.Payment.WalletTimeout == 0 {
		cfg.Payment.WalletTimeout = 10
	}
	if cfg.Payment.PollInterval == 0 {
		cfg.Payment.PollInterval = 5
	}
	if cfg.Payment.PollAttempts == 0 {
		cfg.Payment.PollAttempts = 60
	}
	if cfg.Payment.ReconcileEvery == 0 {
		cfg.Payment.ReconcileEvery = 60
	}
	if cfg.Payment.ExpirySweep == 0 {
		cfg.Payment.ExpirySweep = int((6 * time.Hour).Seconds())
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
