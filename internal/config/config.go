// Package config loads the FIR service configuration from YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Models        ModelsConfig        `yaml:"models"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`         // HTTP listen address, e.g. ":5000"
	CORSOrigins []string `yaml:"cors_origins"` // empty means allow all
}

// ModelsConfig points at the ONNX bundle and its per-model subdirs.
type ModelsConfig struct {
	BundleDir string          `yaml:"bundle_dir"`
	SeqLen    int             `yaml:"seq_len"`
	PoolSize  int             `yaml:"pool_size"`
	NER       ModelConfig     `yaml:"ner"`
	NLI       ModelConfig     `yaml:"nli"`
	Embedding ModelConfig     `yaml:"embedding"`
	Runtime   RuntimeSettings `yaml:"runtime"`
}

type ModelConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"` // relative to bundle_dir
}

type RuntimeSettings struct {
	IntraThreads int `yaml:"intra_threads"`
	InterThreads int `yaml:"inter_threads"`
}

// TranscriptionConfig lists Whisper-compatible providers, tried in
// order.
type TranscriptionConfig struct {
	Providers []TranscriptionProvider `yaml:"providers"`
}

type TranscriptionProvider struct {
	Name      string `yaml:"name"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Protocol string `yaml:"protocol"` // grpc | http
}

// Load reads configuration from a YAML file. If the file doesn't
// exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Addr: ":5000",
		},
		Models: ModelsConfig{
			BundleDir: "models",
			SeqLen:    256,
			PoolSize:  1,
			NER:       ModelConfig{Enabled: true, Dir: "ner"},
			NLI:       ModelConfig{Enabled: true, Dir: "nli"},
			Embedding: ModelConfig{Enabled: true, Dir: "embedding"},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Models.BundleDir == "" {
		cfg.Models.BundleDir = "models"
	}
	if cfg.Models.SeqLen <= 0 {
		cfg.Models.SeqLen = 256
	}
	if cfg.Models.PoolSize <= 0 {
		cfg.Models.PoolSize = 1
	}
	if cfg.Models.NER.Dir == "" {
		cfg.Models.NER.Dir = "ner"
	}
	if cfg.Models.NLI.Dir == "" {
		cfg.Models.NLI.Dir = "nli"
	}
	if cfg.Models.Embedding.Dir == "" {
		cfg.Models.Embedding.Dir = "embedding"
	}
	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = "grpc"
	}
}
