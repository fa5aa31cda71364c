package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":5000" {
		t.Fatalf("addr = %s, want :5000", cfg.Server.Addr)
	}
	if cfg.Models.SeqLen != 256 || cfg.Models.PoolSize != 1 {
		t.Fatalf("models defaults wrong: %+v", cfg.Models)
	}
	if !cfg.Models.NER.Enabled || cfg.Models.NER.Dir != "ner" {
		t.Fatalf("ner defaults wrong: %+v", cfg.Models.NER)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  addr: ":8090"
models:
  bundle_dir: /opt/firgen/models
  ner:
    enabled: true
telemetry:
  enabled: true
  endpoint: localhost:4317
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8090" {
		t.Fatalf("addr = %s", cfg.Server.Addr)
	}
	if cfg.Models.BundleDir != "/opt/firgen/models" {
		t.Fatalf("bundle_dir = %s", cfg.Models.BundleDir)
	}
	if cfg.Models.SeqLen != 256 {
		t.Fatalf("seq_len default not applied: %d", cfg.Models.SeqLen)
	}
	if cfg.Models.NER.Dir != "ner" {
		t.Fatalf("ner dir default not applied: %s", cfg.Models.NER.Dir)
	}
	if cfg.Telemetry.Protocol != "grpc" {
		t.Fatalf("telemetry protocol default not applied: %s", cfg.Telemetry.Protocol)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = " " }},
		{"empty bundle dir", func(c *Config) { c.Models.BundleDir = "" }},
		{"zero seq len", func(c *Config) { c.Models.SeqLen = 0 }},
		{"telemetry without endpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}},
		{"bad telemetry protocol", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = "localhost:4317"
			c.Telemetry.Protocol = "udp"
		}},
		{"transcription provider without url", func(c *Config) {
			c.Transcription.Providers = []TranscriptionProvider{{Name: "local"}}
		}},
		{"transcription provider with ftp url", func(c *Config) {
			c.Transcription.Providers = []TranscriptionProvider{{Name: "local", BaseURL: "ftp://host/v1"}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
