package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ClientConfig is the validated shape of client settings regardless of which
// file format a binary loads them from.
type ClientConfig struct {
	BaseURL           string `toml:"base_url"`
	RequestTimeoutMS  int64  `toml:"request_timeout_ms"`
	ProgressThreshold int    `toml:"progress_threshold"`
}

type EchoConfig struct {
	App         string   `toml:"app"`
	Addr        string   `toml:"addr"`
	Token       string   `toml:"token"`
	CorsOrigins []string `toml:"cors_origins"`
}

func LoadEchoConfig(path string) (EchoConfig, error) {
	var cfg EchoConfig
	if err := loadToml(path, &cfg); err != nil {
		return EchoConfig{}, err
	}
	if cfg.App == "" {
		cfg.App = "echod"
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9400"
	}
	if err := ValidateEchoConfig(cfg); err != nil {
		return EchoConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return fmt.Errorf("client config missing base_url")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("client config base_url invalid: %q", cfg.BaseURL)
	}
	if cfg.RequestTimeoutMS < 0 {
		return fmt.Errorf("client config request_timeout_ms negative")
	}
	if cfg.ProgressThreshold < 0 {
		return fmt.Errorf("client config progress_threshold negative")
	}
	return nil
}

func ValidateEchoConfig(cfg EchoConfig) error {
	if strings.TrimSpace(cfg.App) == "" {
		return fmt.Errorf("echo config missing app")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("echo config missing addr")
	}
	return nil
}
