package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name in the books root.
const FileName = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Company CompanyConfig `yaml:"company"`
	Storage StorageConfig `yaml:"storage"`
	Ledgers LedgersConfig `yaml:"ledgers"`
	Events  EventsConfig  `yaml:"events"`
	Import  ImportConfig  `yaml:"import"`
	Checks  ChecksConfig  `yaml:"checks"`
	Git     GitConfig     `yaml:"git"`
	Log     LogConfig     `yaml:"log"`
}

// CompanyConfig names the business whose vouchers are reported by default.
type CompanyConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig selects where vouchers live.
type StorageConfig struct {
	Backend string `yaml:"backend"`        // csv, sqlite, postgres
	Path    string `yaml:"path,omitempty"` // sqlite file, relative to the books root
	// DSN is never written to tally.yaml; set TALLY_DATABASE_URL instead.
	DSN string `yaml:"-"`
}

// LedgersConfig selects the balance-sheet classification mode.
type LedgersConfig struct {
	Mode string `yaml:"mode"` // implicit or chart
}

// EventsConfig controls voucher notifications.
type EventsConfig struct {
	Backend  string   `yaml:"backend"` // none, amqp, kafka
	URL      string   `yaml:"url,omitempty"`
	Exchange string   `yaml:"exchange,omitempty"`
	Queue    string   `yaml:"queue,omitempty"`
	Brokers  []string `yaml:"brokers,omitempty"`
	Topic    string   `yaml:"topic,omitempty"`
}

// ImportConfig holds defaults for statement import.
type ImportConfig struct {
	BankLedger     string `yaml:"bank_ledger"`
	CategoriesFile string `yaml:"categories_file"`
	Fallback       string `yaml:"fallback_ledger"`
}

// ChecksConfig tunes integrity checks.
type ChecksConfig struct {
	CashLedgers []string `yaml:"cash_ledgers"`
}

// GitConfig controls git integration of the books directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for new books.
func Default(company string) *Config {
	return &Config{
		Company: CompanyConfig{Name: company},
		Storage: StorageConfig{Backend: "csv"},
		Ledgers: LedgersConfig{Mode: "chart"},
		Events: EventsConfig{
			Backend:  "none",
			Exchange: "tally",
			Queue:    "voucher_events",
			Topic:    "voucher_events",
		},
		Import: ImportConfig{
			BankLedger:     "Bank",
			CategoriesFile: "categories.yaml",
			Fallback:       "Suspense",
		},
		Checks: ChecksConfig{CashLedgers: []string{"Cash"}},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "books@tally.local",
		},
		Log: LogConfig{Level: "info"},
	}
}

// ApplyEnv overrides settings from the environment, loading a .env file from
// the working directory first when one exists.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("TALLY_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("TALLY_SQLITE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("TALLY_DATABASE_URL"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("TALLY_EVENTS_BACKEND"); v != "" {
		c.Events.Backend = v
	}
	if v := os.Getenv("TALLY_AMQP_URL"); v != "" {
		c.Events.URL = v
	}
	if v := os.Getenv("TALLY_KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("TALLY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if !oneOf(c.Storage.Backend, "csv", "sqlite", "postgres") {
		errs = append(errs, fmt.Sprintf("invalid storage backend %q: must be csv, sqlite or postgres", c.Storage.Backend))
	}
	if c.Storage.Backend == "postgres" && c.Storage.DSN == "" {
		errs = append(errs, "TALLY_DATABASE_URL is required for the postgres backend")
	}

	if !oneOf(c.Ledgers.Mode, "implicit", "chart") {
		errs = append(errs, fmt.Sprintf("invalid ledgers mode %q: must be implicit or chart", c.Ledgers.Mode))
	}

	switch c.Events.Backend {
	case "", "none":
	case "amqp":
		if u, err := url.Parse(c.Events.URL); err != nil || (u.Scheme != "amqp" && u.Scheme != "amqps") {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL %q: scheme must be amqp or amqps", c.Events.URL))
		}
		if c.Events.Exchange == "" || c.Events.Queue == "" {
			errs = append(errs, "AMQP exchange and queue names are required")
		}
	case "kafka":
		if len(c.Events.Brokers) == 0 {
			errs = append(errs, "at least one Kafka broker is required")
		}
		if c.Events.Topic == "" {
			errs = append(errs, "Kafka topic is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid events backend %q: must be none, amqp or kafka", c.Events.Backend))
	}

	if c.Log.Level != "" && !oneOf(strings.ToLower(c.Log.Level), "debug", "info", "warn", "error") {
		errs = append(errs, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
