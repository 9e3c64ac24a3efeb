// Package server exposes the analyzer over a synchronous upload-and-reply
// HTTP boundary. Each request owns its accumulators, so the handler is
// safe under concurrent uploads without coordination.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"packlens/internal/config"
	"packlens/internal/extract"
	"packlens/internal/techpack"
)

type Server struct {
	cfg      config.Config
	analyzer *techpack.Analyzer
}

func New(cfg config.Config) *Server {
	return &Server{cfg: cfg, analyzer: techpack.NewAnalyzer(nil)}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

func (s *Server) ListenAndServe() error {
	fmt.Printf("listening on %s\n", s.cfg.ServerAddr)
	return http.ListenAndServe(s.cfg.ServerAddr, s.Handler())
}

// handleAnalyze accepts one multipart-uploaded document in the "file"
// field and replies with the full analysis envelope. An unreadable
// document is logged and answered with the empty skeleton, never an error
// status: extraction failure is recoverable by contract.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	lines, err := extract.LinesFromBytes(header.Filename, blob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "upload extract failed: %s: %v\n", header.Filename, err)
		lines = nil
	}
	envelope := s.analyzer.Analyze(lines)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
