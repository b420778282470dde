package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the whole engine configuration. Policy knobs (trust table,
// dedupe policy, thresholds) live here so tests can inject alternates instead
// of patching globals.
type Config struct {
	Environment string `yaml:"environment" default:"dev"`

	Primary  string   `yaml:"primary_ticker" validate:"required"`
	Peers    []string `yaml:"peers"`
	DaysBack int      `yaml:"days_back" default:"30" validate:"gt=0"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`

	Server struct {
		Enabled         bool          `yaml:"enabled"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		AllowOrigins    []string      `yaml:"allow_origins" default:"[\"*\"]"`
	} `yaml:"server"`

	News struct {
		EnabledSources    []string           `yaml:"enabled_sources"`
		DedupePolicy      string             `yaml:"dedupe_policy" default:"first_seen" validate:"oneof=first_seen highest_trust"`
		TimestampFallback string             `yaml:"timestamp_fallback" default:"fallback_now" validate:"oneof=fallback_now fallback_epoch"`
		DaysShort         int                `yaml:"days_short" default:"7" validate:"gt=0"`
		DaysLong          int                `yaml:"days_long" default:"30" validate:"gt=0"`
		TrustWeights      map[string]float64 `yaml:"trust_weights"`
		DefaultWeight     float64            `yaml:"default_trust_weight" default:"0.6"`
		WhitelistDomains  []string           `yaml:"whitelist_domains"`

		Confirm struct {
			MinConfirmations     int     `yaml:"min_confirmations" default:"2" validate:"gt=0"`
			CredibilityThreshold float64 `yaml:"credibility_threshold" default:"1.5" validate:"gt=0"`
		} `yaml:"confirm"`

		ConfidencePreset string `yaml:"confidence_preset" default:"evidence" validate:"oneof=evidence veracity"`
	} `yaml:"news"`

	HTTP struct {
		Timeout       time.Duration `yaml:"timeout" default:"30s"`
		RetryAttempts int           `yaml:"retry_attempts" default:"3" validate:"gte=1,lte=5"`
		RetryBackoff  time.Duration `yaml:"retry_backoff" default:"1s"`
	} `yaml:"http"`

	SEC struct {
		Enabled   bool   `yaml:"enabled" default:"true"`
		UserAgent string `yaml:"user_agent" default:"EquityPulse research engine"`
		MaxItems  int    `yaml:"max_items" default:"60"`
	} `yaml:"sec"`

	Finnhub struct {
		Enabled  bool   `yaml:"enabled" default:"true"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url" default:"https://finnhub.io/api/v1"`
		MaxItems int    `yaml:"max_items" default:"200"`
	} `yaml:"finnhub"`

	FMP struct {
		Enabled  bool   `yaml:"enabled" default:"true"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url" default:"https://financialmodelingprep.com/stable"`
		MaxItems int    `yaml:"max_items" default:"100"`
	} `yaml:"fmp"`

	GDELT struct {
		Enabled  bool   `yaml:"enabled"`
		BaseURL  string `yaml:"base_url" default:"https://api.gdeltproject.org/api/v2/doc/doc"`
		MaxItems int    `yaml:"max_items" default:"200"`
	} `yaml:"gdelt"`

	RSS struct {
		Feeds []RSSFeed `yaml:"feeds"`
	} `yaml:"rss"`

	Bus struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		GroupID      string        `yaml:"group_id" default:"equitypulse"`
		DrainTimeout time.Duration `yaml:"drain_timeout" default:"5s"`
		MaxRecords   int           `yaml:"max_records" default:"500"`

		PublishTopic string `yaml:"publish_topic"`
	} `yaml:"bus"`

	Newswire struct {
		Enabled      bool          `yaml:"enabled"`
		URL          string        `yaml:"url"`
		APIKey       string        `yaml:"api_key"`
		DrainWindow  time.Duration `yaml:"drain_window" default:"10s"`
		PingInterval time.Duration `yaml:"ping_interval" default:"15s"`
	} `yaml:"newswire"`

	ClickHouse struct {
		Enabled      bool          `yaml:"enabled"`
		Host         string        `yaml:"host" default:"localhost"`
		Port         int           `yaml:"port" default:"9000"`
		Database     string        `yaml:"database" default:"equitypulse"`
		User         string        `yaml:"user" default:"default"`
		Password     string        `yaml:"password"`
		DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
	} `yaml:"clickhouse"`

	Cache struct {
		MemoryMaxSize int           `yaml:"memory_max_size" default:"1000"`
		TTL           time.Duration `yaml:"ttl" default:"168h"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// RSSFeed is one IR/press-release feed to poll.
type RSSFeed struct {
	URL    string `yaml:"url" validate:"required"`
	Source string `yaml:"source" default:"ir_rss"`
	Ticker string `yaml:"ticker"`
}

var validate = validator.New()

// Load reads, defaults, and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides credentials and a few
// run-scoped knobs from the environment. A missing source credential
// disables that source only; it never fails the run.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		c.FMP.APIKey = v
	}
	if v := os.Getenv("NEWSWIRE_API_KEY"); v != "" {
		c.Newswire.APIKey = v
	}
	if v := os.Getenv("PRIMARY_TICKER"); v != "" {
		c.Primary = strings.ToUpper(v)
	}
	if v := os.Getenv("PEERS"); v != "" {
		c.Peers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Bus.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}

	return c, nil
}
