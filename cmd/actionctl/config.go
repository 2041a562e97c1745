package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/davrosz/actionhttp/internal/config"
)

type runConfig struct {
	BaseURL           string
	RequestTimeout    time.Duration
	ProgressThreshold int
	Token             string
	Rounds            int
}

type fileConfig struct {
	BaseURL           string `toml:"base_url"`
	RequestTimeout    string `toml:"request_timeout"`
	RequestTimeoutMS  int64  `toml:"request_timeout_ms"`
	ProgressThreshold int    `toml:"progress_threshold"`
	Token             string `toml:"token"`
	Rounds            int    `toml:"rounds"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		BaseURL:           "http://127.0.0.1:9400",
		RequestTimeout:    30 * time.Second,
		ProgressThreshold: 5,
		Rounds:            1,
	}
}

func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load actionctl config: %w", err)
	}

	if meta.IsDefined("base_url") {
		if v := strings.TrimSpace(raw.BaseURL); v != "" {
			cfg.BaseURL = v
		}
	}
	if meta.IsDefined("request_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RequestTimeout))
		if err != nil {
			return runConfig{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if meta.IsDefined("request_timeout_ms") {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("progress_threshold") {
		cfg.ProgressThreshold = raw.ProgressThreshold
	}
	if meta.IsDefined("token") {
		cfg.Token = strings.TrimSpace(raw.Token)
	}
	if meta.IsDefined("rounds") && raw.Rounds > 0 {
		cfg.Rounds = raw.Rounds
	}

	if err := cfg.validate(); err != nil {
		return runConfig{}, err
	}
	return cfg, nil
}

func (c runConfig) validate() error {
	return config.ValidateClientConfig(config.ClientConfig{
		BaseURL:           c.BaseURL,
		RequestTimeoutMS:  c.RequestTimeout.Milliseconds(),
		ProgressThreshold: c.ProgressThreshold,
	})
}
