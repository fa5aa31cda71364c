package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/firgen-ai/firgen/internal/classify"
	"github.com/firgen-ai/firgen/internal/config"
	"github.com/firgen-ai/firgen/internal/model"
	"github.com/firgen-ai/firgen/internal/ner"
	"github.com/firgen-ai/firgen/internal/pipeline"
	"github.com/firgen-ai/firgen/internal/telemetry"
)

func main() {
	cfgPath := flag.String("config", "", "path to config yaml (required)")
	n := flag.Int("n", 200, "number of iterations")
	text := flag.String("text", "My bike was stolen from the parking lot near my office in Hyderabad. The thief Ramesh fled on TS09AB1234.", "complaint text to analyze")
	flag.Parse()

	if *cfgPath == "" {
		log.Fatalf("config flag is required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	// Single session keeps queueing noise out of the numbers.
	cfg.Models.PoolSize = 1

	ctx := context.Background()
	rt := model.RuntimeSettings{
		IntraThreads: cfg.Models.Runtime.IntraThreads,
		InterThreads: cfg.Models.Runtime.InterThreads,
	}
	bundleDir := model.ResolveBundleDir(cfg.Models.BundleDir)

	var tagger ner.Tagger = ner.NewNoopTagger()
	if cfg.Models.NER.Enabled {
		dir := filepath.Join(bundleDir, cfg.Models.NER.Dir)
		t, err := model.NewTokenTagger(dir, cfg.Models.SeqLen, 1, rt)
		if err != nil {
			log.Fatalf("load ner tagger: %v", err)
		}
		tagger = t
	}

	var loaders []classify.Loader
	if cfg.Models.NLI.Enabled {
		dir := filepath.Join(bundleDir, cfg.Models.NLI.Dir)
		loaders = append(loaders, classify.Loader{
			Name: "zero-shot",
			Load: func(ctx context.Context) (classify.Strategy, error) {
				scorer, err := model.NewEntailment(dir, cfg.Models.SeqLen, 1, rt)
				if err != nil {
					return nil, err
				}
				return classify.NewZeroShot(scorer), nil
			},
		})
	}
	orch := classify.NewOrchestrator(ctx, loaders, classify.NewKeyword())

	tel, err := telemetry.NewProvider(ctx, telemetry.Config{Enabled: false})
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	pipe := pipeline.New(tagger, orch, tel)

	// Warmup
	for i := 0; i < 5; i++ {
		pipe.Process(ctx, *text)
	}

	if *n <= 0 {
		*n = 1
	}

	durations := make([]time.Duration, 0, *n)
	for i := 0; i < *n; i++ {
		start := time.Now()
		pipe.Process(ctx, *text)
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	avg := float64(total.Microseconds()) / 1000.0 / float64(len(durations))
	p50 := float64(durations[len(durations)/2].Microseconds()) / 1000.0
	p95idx := int(float64(len(durations)) * 0.95)
	if p95idx >= len(durations) {
		p95idx = len(durations) - 1
	}
	p95 := float64(durations[p95idx].Microseconds()) / 1000.0

	fmt.Printf("bench: n=%d avg_ms=%.2f p50_ms=%.2f p95_ms=%.2f strategy=%s seq_len=%d bundle_dir=%s\n",
		len(durations),
		avg,
		p50,
		p95,
		pipe.ActiveStrategy(),
		cfg.Models.SeqLen,
		cfg.Models.BundleDir,
	)
}
