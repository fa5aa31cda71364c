package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the loaded config for required fields and safe
// values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}

	if strings.TrimSpace(cfg.Models.BundleDir) == "" {
		return errors.New("models.bundle_dir must be set")
	}
	if cfg.Models.SeqLen <= 0 {
		return fmt.Errorf("models.seq_len must be positive, got %d", cfg.Models.SeqLen)
	}
	if cfg.Models.PoolSize <= 0 {
		return fmt.Errorf("models.pool_size must be positive, got %d", cfg.Models.PoolSize)
	}

	for i, p := range cfg.Transcription.Providers {
		if err := validateTranscriptionProvider(i, p); err != nil {
			return err
		}
	}

	return validateTelemetryConfig(cfg.Telemetry)
}

func validateTranscriptionProvider(i int, p TranscriptionProvider) error {
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("transcription provider %d missing base_url", i)
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("transcription provider %d has invalid base_url", i)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("transcription provider %d base_url must be http or https", i)
	}
	return nil
}

func validateTelemetryConfig(t TelemetryConfig) error {
	if !t.Enabled {
		return nil
	}
	if strings.TrimSpace(t.Endpoint) == "" {
		return errors.New("telemetry enabled but endpoint is empty")
	}
	switch strings.ToLower(strings.TrimSpace(t.Protocol)) {
	case "", "grpc", "http":
		return nil
	default:
		return fmt.Errorf("telemetry.protocol must be grpc or http, got %q", t.Protocol)
	}
}
