/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package api exposes transcript scoring over HTTP: a JSON scoring endpoint,
// a multipart variant for file uploads, a health probe, and the embedded
// single-page UI.
package api

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chainguard.dev/transcriptscore/agents/scorer"
	"chainguard.dev/transcriptscore/orchestrator"
)

// maxUploadBytes bounds request bodies; transcripts and rubrics are small.
const maxUploadBytes = 32 << 20

//go:embed ui.html
var uiFS embed.FS

// Runner runs one scoring request end to end.
type Runner interface {
	Run(ctx context.Context, req *orchestrator.Request) (*scorer.Result, error)
}

// Server holds the HTTP handler state.
type Server struct {
	runner  Runner
	timeout time.Duration
}

// NewHandler builds the HTTP handler. timeout bounds each scoring run; zero
// means no bound.
func NewHandler(runner Runner, timeout time.Duration) http.Handler {
	s := &Server{runner: runner, timeout: timeout}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	r.Post("/score", s.score)
	r.Get("/healthz", s.healthz)
	r.Get("/", s.ui)

	return r
}

// scoreRequest is the JSON body for POST /score.
type scoreRequest struct {
	// Transcript is the transcript text.
	Transcript string `json:"transcript"`

	// Rubric is an optional rubric document (CSV, JSON, or YAML text).
	Rubric string `json:"rubric,omitempty"`
}

// errResponse is the error body for every non-2xx response.
type errResponse struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

func (s *Server) score(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	req, err := decodeScoreRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{
			ErrorKind: "bad_request",
			Message:   err.Error(),
		})
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.runner.Run(ctx, req)
	if err != nil {
		kind, status := errorKind(err)
		clog.FromContext(ctx).With("error", err).
			With("error_kind", kind).
			Warn("Scoring request failed")
		writeJSON(w, status, errResponse{ErrorKind: kind, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// decodeScoreRequest accepts either a JSON body or a multipart form with
// transcript_file and an optional rubric_file.
func decodeScoreRequest(r *http.Request) (*orchestrator.Request, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}

		transcript, err := formFile(r, "transcript_file")
		if err != nil {
			return nil, err
		}
		if transcript == nil {
			// Allow a plain form field alongside a rubric file.
			transcript = []byte(r.FormValue("transcript"))
		}

		rubric, err := formFile(r, "rubric_file")
		if err != nil {
			return nil, err
		}

		return &orchestrator.Request{Transcript: transcript, Rubric: rubric}, nil
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &orchestrator.Request{
		Transcript: []byte(req.Transcript),
		Rubric:     []byte(req.Rubric),
	}, nil
}

// formFile reads one uploaded file in full, or returns nil when the field is
// absent.
func formFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) ui(w http.ResponseWriter, _ *http.Request) {
	page, err := uiFS.ReadFile("ui.html")
	if err != nil {
		http.Error(w, "ui unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
