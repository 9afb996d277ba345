package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"plantagotchi/internal/domain/plant"

	"gopkg.in/yaml.v3"
)

const envPrefix = "PLANTAGOTCHI_"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr        string       `yaml:"addr"`
	TickSeconds int          `yaml:"tick_seconds"`
	DBDSN       string       `yaml:"db_dsn"`
	SQLitePath  string       `yaml:"sqlite_path"`
	LogLevel    string       `yaml:"log_level"`
	Tuning      plant.Tuning `yaml:"tuning"`
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		TickSeconds: 4,
		LogLevel:    "info",
		Tuning:      plant.DefaultTuning(),
	}
}

// TickInterval is zero when automatic ticking is disabled.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

// Load reads path over the defaults, applies env overrides and validates.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decodeYAML(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from PLANTAGOTCHI_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v, ok := lookupEnv("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookupEnv("DB_DSN"); ok {
		c.DBDSN = v
	}
	if v, ok := lookupEnv("SQLITE_PATH"); ok {
		c.SQLitePath = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if err := intEnv("TICK_SECONDS", &c.TickSeconds); err != nil {
		return err
	}
	return intEnv("MAX_DAYS", &c.Tuning.Session.MaxDays)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	}
	if c.TickSeconds < 0 {
		return fmt.Errorf("%w: tick_seconds must not be negative, got %d", ErrInvalidConfig, c.TickSeconds)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func intEnv(key string, dst *int) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, envPrefix, key, v)
	}
	*dst = n
	return nil
}
