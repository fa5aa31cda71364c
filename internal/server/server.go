// Package server exposes the FIR generation pipeline over HTTP.
package server

import (
	"net/http"
	"strings"

	"github.com/firgen-ai/firgen/internal/extract"
	"github.com/firgen-ai/firgen/internal/history"
	"github.com/firgen-ai/firgen/internal/pipeline"
	"github.com/firgen-ai/firgen/internal/telemetry"
	"github.com/firgen-ai/firgen/internal/transcribe"
)

// Server wraps the HTTP components of the FIR service.
type Server struct {
	mux         *http.ServeMux
	pipeline    *pipeline.Pipeline
	extractor   *extract.Extractor
	transcriber transcribe.Transcriber
	history     *history.Log
	tel         *telemetry.Provider
	corsOrigins map[string]bool
	version     string
}

// Options carries the server dependencies. Transcriber may be nil when
// no transcription provider is configured.
type Options struct {
	Pipeline    *pipeline.Pipeline
	Extractor   *extract.Extractor
	Transcriber transcribe.Transcriber
	History     *history.Log
	Telemetry   *telemetry.Provider
	CORSOrigins []string
	Version     string
}

// New creates the server with all routes registered.
func New(opts Options) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		pipeline:    opts.Pipeline,
		extractor:   opts.Extractor,
		transcriber: opts.Transcriber,
		history:     opts.History,
		tel:         opts.Telemetry,
		version:     opts.Version,
	}
	if len(opts.CORSOrigins) > 0 {
		s.corsOrigins = make(map[string]bool, len(opts.CORSOrigins))
		for _, o := range opts.CORSOrigins {
			s.corsOrigins[strings.TrimRight(o, "/")] = true
		}
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/generate_fir", s.handleGenerateFIR)
	s.mux.HandleFunc("/classify", s.handleClassify)
	s.mux.HandleFunc("/extract_entities", s.handleExtractEntities)
	s.mux.HandleFunc("/analyze_realtime", s.handleAnalyzeRealtime)
	s.mux.HandleFunc("/transcribe_audio", s.handleTranscribeAudio)
	s.mux.HandleFunc("/history", s.handleHistory)

	return s
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.withCORS(s.mux)
}

// withCORS answers preflight requests and stamps the allow headers on
// every response. An empty origin list allows all origins.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if s.corsOrigins == nil {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if s.corsOrigins[strings.TrimRight(origin, "/")] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
