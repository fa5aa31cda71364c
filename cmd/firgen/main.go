package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/firgen-ai/firgen/internal/classify"
	"github.com/firgen-ai/firgen/internal/config"
	"github.com/firgen-ai/firgen/internal/extract"
	"github.com/firgen-ai/firgen/internal/history"
	"github.com/firgen-ai/firgen/internal/model"
	"github.com/firgen-ai/firgen/internal/ner"
	"github.com/firgen-ai/firgen/internal/pipeline"
	"github.com/firgen-ai/firgen/internal/redact"
	"github.com/firgen-ai/firgen/internal/server"
	"github.com/firgen-ai/firgen/internal/telemetry"
	"github.com/firgen-ai/firgen/internal/transcribe"
)

const version = "0.1.0"

func main() {
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	configPath := flag.String("config", "firgen.yaml", "path to config file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	addr := cfg.Server.Addr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	ctx := context.Background()

	tel, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Protocol: cfg.Telemetry.Protocol,
		Service:  "firgen",
		Version:  version,
	})
	if err != nil {
		log.Fatalf("telemetry setup: %v", err)
	}
	defer tel.Shutdown(ctx)

	rt := model.RuntimeSettings{
		IntraThreads: cfg.Models.Runtime.IntraThreads,
		InterThreads: cfg.Models.Runtime.InterThreads,
	}

	// state.json, when present, points at the active versioned bundle.
	bundleDir := model.ResolveBundleDir(cfg.Models.BundleDir)

	tagger := buildTagger(cfg, bundleDir, rt, tel)
	orchestrator := buildClassifier(ctx, cfg, bundleDir, rt)
	pipe := pipeline.New(tagger, orchestrator, tel)

	srv := server.New(server.Options{
		Pipeline:    pipe,
		Extractor:   extract.New(),
		Transcriber: buildTranscriber(cfg),
		History:     history.NewLog(),
		Telemetry:   tel,
		CORSOrigins: cfg.Server.CORSOrigins,
		Version:     version,
	})

	redact.Logf("firgen %s listening on %s (classification=%s)", version, addr, pipe.ActiveStrategy())
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildTagger loads the NER bundle, degrading to the noop tagger when
// the bundle is disabled or broken.
func buildTagger(cfg *config.Config, bundleDir string, rt model.RuntimeSettings, tel *telemetry.Provider) ner.Tagger {
	if !cfg.Models.NER.Enabled {
		redact.Logf("firgen: ner disabled; entity extraction will be empty")
		return ner.NewNoopTagger()
	}
	dir := filepath.Join(bundleDir, cfg.Models.NER.Dir)
	tagger, err := model.NewTokenTagger(dir, cfg.Models.SeqLen, cfg.Models.PoolSize, rt)
	if err != nil {
		redact.Logf("firgen: ner unavailable: %v; entity extraction will be empty", err)
		tel.RecordDegradation("ner")
		return ner.NewNoopTagger()
	}
	return tagger
}

// buildClassifier wires the strategy chain: zero-shot NLI first,
// embedding similarity second, keyword matching as the terminal
// fallback.
func buildClassifier(ctx context.Context, cfg *config.Config, bundleDir string, rt model.RuntimeSettings) *classify.Orchestrator {
	var loaders []classify.Loader

	if cfg.Models.NLI.Enabled {
		dir := filepath.Join(bundleDir, cfg.Models.NLI.Dir)
		loaders = append(loaders, classify.Loader{
			Name: "zero-shot",
			Load: func(ctx context.Context) (classify.Strategy, error) {
				scorer, err := model.NewEntailment(dir, cfg.Models.SeqLen, cfg.Models.PoolSize, rt)
				if err != nil {
					return nil, err
				}
				return classify.NewZeroShot(scorer), nil
			},
		})
	}
	if cfg.Models.Embedding.Enabled {
		dir := filepath.Join(bundleDir, cfg.Models.Embedding.Dir)
		loaders = append(loaders, classify.Loader{
			Name: "embedding",
			Load: func(ctx context.Context) (classify.Strategy, error) {
				embedder, err := model.NewSentenceEmbedder(dir, cfg.Models.SeqLen, cfg.Models.PoolSize, rt)
				if err != nil {
					return nil, err
				}
				return classify.NewEmbedding(ctx, embedder)
			},
		})
	}

	return classify.NewOrchestrator(ctx, loaders, classify.NewKeyword())
}

// buildTranscriber chains the configured providers; nil when none are
// configured.
func buildTranscriber(cfg *config.Config) transcribe.Transcriber {
	var providers []transcribe.Transcriber
	for _, p := range cfg.Transcription.Providers {
		apiKey := ""
		if p.APIKeyEnv != "" {
			apiKey = os.Getenv(p.APIKeyEnv)
		}
		providers = append(providers, transcribe.NewWhisper(transcribe.WhisperConfig{
			Name:    p.Name,
			BaseURL: p.BaseURL,
			APIKey:  apiKey,
			Model:   p.Model,
		}))
	}
	if len(providers) == 0 {
		return nil
	}
	return transcribe.NewChain(providers...)
}
