package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataSource   string `yaml:"data_source"` // LIVE or SAMPLE
	LookbackDays int    `yaml:"lookback_days"`
	MinRawEvents int    `yaml:"min_raw_events"`
	Universe     struct {
		Static []string `yaml:"static"`
	} `yaml:"universe"`
	Sources struct {
		Priority       []string `yaml:"priority"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		MaxPerTicker   int      `yaml:"max_per_ticker"`
		SECEdgar       struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"sec_edgar"`
		Yahoo struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"yahoo"`
		OpenInsider struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"openinsider"`
		CapitolWatch struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"capitolwatch"`
	} `yaml:"sources"`
	Pricing struct {
		Enabled           bool   `yaml:"enabled"`
		BaseURL           string `yaml:"base_url"`
		RequestsPerSecond int    `yaml:"requests_per_second"`
	} `yaml:"pricing"`
	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`
	Email struct {
		Enabled  bool   `yaml:"enabled"`
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		// Sender, password and recipient come from the environment
		// (SENDER_EMAIL, SENDER_PASSWORD, RECIPIENT_EMAIL), never YAML.
	} `yaml:"email"`
}

func (c *Config) Validate() error {
	if c.DataSource != "LIVE" && c.DataSource != "SAMPLE" {
		return fmt.Errorf("invalid data_source '%s': must be 'LIVE' or 'SAMPLE'", c.DataSource)
	}
	if len(c.Universe.Static) == 0 {
		return errors.New("universe.static cannot be empty")
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("lookback_days must be positive, got %d", c.LookbackDays)
	}
	if c.MinRawEvents < 0 {
		return fmt.Errorf("min_raw_events must not be negative, got %d", c.MinRawEvents)
	}
	return nil
}

// SourceTimeout is the per-fetch deadline for one provider call.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Sources.TimeoutSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.DataSource == "" {
		c.DataSource = "SAMPLE"
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 90
	}
	if c.MinRawEvents == 0 {
		c.MinRawEvents = 5
	}
	if c.Sources.TimeoutSeconds == 0 {
		c.Sources.TimeoutSeconds = 15
	}
	if c.Sources.MaxPerTicker == 0 {
		c.Sources.MaxPerTicker = 5
	}
	if len(c.Sources.Priority) == 0 {
		c.Sources.Priority = []string{"sec_edgar", "yahoo", "openinsider", "capitolwatch", "sample"}
	}
	if c.Pricing.RequestsPerSecond == 0 {
		c.Pricing.RequestsPerSecond = 5
	}
	if c.Output.Path == "" {
		c.Output.Path = "data/insider_trades_data.json"
	}
	if c.Email.SMTPHost == "" {
		c.Email.SMTPHost = "smtp.gmail.com"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
