package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/firgen-ai/firgen/internal/extract"
	"github.com/firgen-ai/firgen/internal/fir"
	"github.com/firgen-ai/firgen/internal/history"
	"github.com/firgen-ai/firgen/internal/ner"
	"github.com/firgen-ai/firgen/internal/redact"
	"github.com/firgen-ai/firgen/internal/severity"
)

const (
	maxJSONBody       = 1 << 20
	maxAudioBody      = 25 << 20
	minRealtimeLength = 10
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		redact.Logf("server: failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                  "ok",
		"version":                 s.version,
		"classification_strategy": s.pipeline.ActiveStrategy(),
		"transcription_available": s.transcriber != nil,
		"firs_generated":          s.history.Len(),
	})
}

type generateFIRRequest struct {
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Description    string `json:"description"`
	WitnessName    string `json:"witness_name"`
	WitnessContact string `json:"witness_contact"`
	IncidentDate   string `json:"incident_date"`
	IncidentTime   string `json:"incident_time"`
	Location       string `json:"location"`
	Language       string `json:"language"` // en | te
}

type generateFIRResponse struct {
	Success         bool                `json:"success"`
	FIRID           string              `json:"fir_id"`
	Document        string              `json:"fir_document"`
	OffenceType     string              `json:"offence_type"`
	Confidence      float64             `json:"confidence"`
	ConfidenceLevel string              `json:"confidence_level"`
	AllScores       map[string]float64  `json:"all_scores"`
	Entities        ner.Entities        `json:"entities"`
	Identifiers     extract.Identifiers `json:"identifiers"`
	Severity        severity.Assessment `json:"severity"`
	Sections        []fir.Section       `json:"legal_sections"`
	Strategy        string              `json:"classification_strategy"`
	GeneratedAt     time.Time           `json:"generated_at"`
}

func (s *Server) handleGenerateFIR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req generateFIRRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	start := time.Now()
	ctx := r.Context()

	analysis := s.pipeline.Process(ctx, req.Description)
	ids := s.extractor.All(req.Description)
	label := analysis.Classification.Label
	assessment := severity.Assess(label, analysis.Classification.Confidence, req.Description)
	sections := fir.SectionsFor(label)

	now := time.Now().UTC()
	firID := fir.NewReferenceID(now)
	location := req.Location
	if location == "" && len(analysis.Entities.Locations) > 0 {
		location = analysis.Entities.Locations[0]
	}

	renderStart := time.Now()
	doc := fir.Render(fir.Data{
		ID:             firID,
		GeneratedAt:    now,
		Name:           req.Name,
		Contact:        req.Contact,
		WitnessName:    req.WitnessName,
		WitnessContact: req.WitnessContact,
		Date:           req.IncidentDate,
		Time:           req.IncidentTime,
		Location:       location,
		OffenceType:    label,
		Confidence:     analysis.Classification.Confidence,
		SeverityLevel:  assessment.Level,
		SeverityScore:  assessment.Score,
		Persons:        analysis.Entities.Persons,
		PhoneNumbers:   ids.PhoneNumbers,
		VehicleNumbers: ids.VehicleNumbers,
		Sections:       sections,
		Description:    req.Description,
	}, req.Language)
	s.tel.RecordStage("document", float64(time.Since(renderStart).Milliseconds()))

	s.history.Append(history.Entry{
		FIRID:       firID,
		OffenceType: label,
		Confidence:  analysis.Classification.Confidence,
		Severity:    assessment.Level,
		GeneratedAt: now,
	})
	s.tel.RecordRequest("generate_fir", label, float64(time.Since(start).Milliseconds()))

	writeJSON(w, http.StatusOK, generateFIRResponse{
		Success:         true,
		FIRID:           firID,
		Document:        doc,
		OffenceType:     label,
		Confidence:      analysis.Classification.Confidence,
		ConfidenceLevel: analysis.ConfidenceLevel,
		AllScores:       analysis.Classification.AllScores,
		Entities:        analysis.Entities,
		Identifiers:     ids,
		Severity:        assessment,
		Sections:        sections,
		Strategy:        s.pipeline.ActiveStrategy(),
		GeneratedAt:     now,
	})
}

type textRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	start := time.Now()
	analysis := s.pipeline.Process(r.Context(), req.Text)
	s.tel.RecordRequest("classify", analysis.Classification.Label, float64(time.Since(start).Milliseconds()))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"offence_type":     analysis.Classification.Label,
		"confidence":       analysis.Classification.Confidence,
		"confidence_level": analysis.ConfidenceLevel,
		"all_scores":       analysis.Classification.AllScores,
		"legal_sections":   fir.SectionsFor(analysis.Classification.Label),
		"strategy":         s.pipeline.ActiveStrategy(),
	})
}

func (s *Server) handleExtractEntities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	start := time.Now()
	analysis := s.pipeline.Process(r.Context(), req.Text)
	ids := s.extractor.All(req.Text)
	s.tel.RecordRequest("extract_entities", analysis.Classification.Label, float64(time.Since(start).Milliseconds()))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"entities":    analysis.Entities,
		"identifiers": ids,
	})
}

// handleAnalyzeRealtime gives a lightweight preview while the
// complainant is still typing. Very short texts get a neutral answer
// instead of a noisy guess.
func (s *Server) handleAnalyzeRealtime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	text := strings.TrimSpace(req.Text)
	if len(text) < minRealtimeLength {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"ready":   false,
		})
		return
	}

	analysis := s.pipeline.Process(r.Context(), text)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"ready":            true,
		"offence_type":     analysis.Classification.Label,
		"confidence":       analysis.Classification.Confidence,
		"confidence_level": analysis.ConfidenceLevel,
		"persons":          truncate(analysis.Entities.Persons, 3),
		"locations":        truncate(analysis.Entities.Locations, 2),
		"organizations":    truncate(analysis.Entities.Organizations, 2),
	})
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func (s *Server) handleTranscribeAudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.transcriber == nil {
		writeError(w, http.StatusServiceUnavailable, "transcription is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBody)
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	start := time.Now()
	text, err := s.transcriber.Transcribe(r.Context(), header.Filename, file)
	if err != nil {
		redact.Logf("server: transcription failed: %v", err)
		s.tel.RecordDegradation("transcribe")
		writeError(w, http.StatusBadGateway, "transcription failed")
		return
	}
	s.tel.RecordRequest("transcribe_audio", "", float64(time.Since(start).Milliseconds()))

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"text":    text,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"firs":    s.history.Recent(),
		"total":   s.history.Len(),
	})
}
