// Package server exposes the analyzer over HTTP.
//
// A single route, POST /api/analyze, accepts a multipart or urlencoded
// form with either a "text" field or a "file" upload (PDF or plain
// text). Supplying neither is the only user-visible input error; the
// core itself never fails on degenerate input.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ro-ai-labs/ro-text-mining/analyze"
	"github.com/ro-ai-labs/ro-text-mining/ingest"
)

// ErrNoInput is returned to callers that supply neither text nor file.
var ErrNoInput = errors.New("no text, PDF or TXT provided")

// maxUploadBytes bounds in-memory multipart parsing.
const maxUploadBytes = 32 << 20 // 32 MiB

// Server handles analysis requests.
type Server struct {
	analyzer *analyze.Analyzer
	log      *log.Logger
}

// New returns a Server. A nil logger falls back to the default logger.
func New(a *analyze.Analyzer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{analyzer: a, log: logger}
}

// Handler returns the route table with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	return withCORS(mux)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	text, err := requestText(r)
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			s.log.Warn("analyze request without input")
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": ErrNoInput.Error()})
			return
		}
		s.log.Error("reading request input", "err", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := s.analyzer.Analyze(text)
	if err != nil {
		s.log.Error("analysis failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.log.Info("analyzed", "bytes", len(text), "duration", time.Since(start))
	writeJSON(w, http.StatusOK, res)
}

// requestText resolves the analysis input: an uploaded file takes
// priority over the text field, mirroring the upload-first contract.
func requestText(r *http.Request) (string, error) {
	// Errors here mean "no multipart form", which is fine when the
	// text field arrives urlencoded.
	_ = r.ParseMultipartForm(maxUploadBytes)

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		hint := header.Filename
		if hint == "" {
			hint = header.Header.Get("Content-Type")
		}
		return ingest.Extract(raw, hint)
	}

	if text := r.FormValue("text"); text != "" {
		return text, nil
	}
	return "", ErrNoInput
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// withCORS allows any origin, for the frontend the API serves.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
