package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Auth struct {
		SigningKey      string `yaml:"signing_key"`
		AccessTTLMin    int    `yaml:"access_ttl_min"`
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"`
		Microsoft       struct {
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
			Authority    string `yaml:"authority"`
			RedirectURI  string `yaml:"redirect_uri"`
			FrontendURL  string `yaml:"frontend_url"`
		} `yaml:"microsoft"`
	} `yaml:"auth"`
	Storage struct {
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`
	Matcher MatcherConfig `yaml:"matcher"`
}

// MatcherConfig holds the knobs of the matching pipeline. Zero values are replaced
// with defaults in Normalize.
type MatcherConfig struct {
	Threshold      float64       `yaml:"threshold"`
	Debounce       time.Duration `yaml:"debounce"`
	Tick           time.Duration `yaml:"tick"`
	Workers        int           `yaml:"workers"`
	MinPool        int           `yaml:"min_pool"`
	MaxCandidates  int           `yaml:"max_candidates"`
	NotifyAttempts int           `yaml:"notify_attempts"`
	NotifyBackoff  time.Duration `yaml:"notify_backoff"`
	SweepInterval  time.Duration `yaml:"sweep_interval"`
}

func (c *MatcherConfig) Normalize() {
	if c.Threshold <= 0 {
		c.Threshold = 0.6
	}
	if c.Debounce <= 0 {
		c.Debounce = 10 * time.Second
	}
	if c.Tick <= 0 {
		c.Tick = 2 * time.Second
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.MinPool <= 0 {
		c.MinPool = 5
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = 200
	}
	if c.NotifyAttempts <= 0 {
		c.NotifyAttempts = 3
	}
	if c.NotifyBackoff <= 0 {
		c.NotifyBackoff = 500 * time.Millisecond
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = 5 * time.Minute
	}
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		cfg.Auth.SigningKey = key
	}
	if secret := os.Getenv("MICROSOFT_CLIENT_SECRET"); secret != "" {
		cfg.Auth.Microsoft.ClientSecret = secret
	}
	cfg.Matcher.Normalize()
	return cfg
}
