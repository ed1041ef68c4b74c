/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chainguard.dev/transcriptscore/agents/scorer"
	"chainguard.dev/transcriptscore/orchestrator"
	"chainguard.dev/transcriptscore/rubric"
	"chainguard.dev/transcriptscore/transcript"
)

// stubRunner records the last request and returns a canned outcome.
type stubRunner struct {
	lastReq *orchestrator.Request
	result  *scorer.Result
	err     error
}

func (s *stubRunner) Run(_ context.Context, req *orchestrator.Request) (*scorer.Result, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestScoreJSON(t *testing.T) {
	stub := &stubRunner{result: &scorer.Result{
		Scores: []scorer.CriterionScore{
			{Criterion: "Clarity", Score: 7, MaxScore: 10, Weight: 0.5},
			{Criterion: "Accuracy", Score: 8, MaxScore: 10, Weight: 0.5},
		},
		WeightedTotal:   7.5,
		OverallFeedback: "Solid talk.",
		WordCount:       5,
		Model:           "gemini-2.5-flash",
	}}
	h := NewHandler(stub, 0)

	body := `{"transcript": "today we will cover caching", "rubric": "criterion,weight\nClarity,1\n"}`
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got = %d, wanted = %d, body = %s", rec.Code, http.StatusOK, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type: got = %q, wanted = %q", got, "application/json")
	}

	var res scorer.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.WeightedTotal != 7.5 {
		t.Errorf("weighted total: got = %v, wanted = 7.5", res.WeightedTotal)
	}

	if got := string(stub.lastReq.Transcript); got != "today we will cover caching" {
		t.Errorf("transcript: got = %q", got)
	}
	if !strings.HasPrefix(string(stub.lastReq.Rubric), "criterion,weight") {
		t.Errorf("rubric: got = %q", stub.lastReq.Rubric)
	}
}

func TestScoreMultipart(t *testing.T) {
	stub := &stubRunner{result: &scorer.Result{}}
	h := NewHandler(stub, 0)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("transcript_file", "talk.txt")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte("today we will cover caching")); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	fw, err = mw.CreateFormFile("rubric_file", "rubric.csv")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte("criterion,weight\nClarity,1\n")); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/score", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got = %d, wanted = %d, body = %s", rec.Code, http.StatusOK, rec.Body)
	}
	if got := string(stub.lastReq.Transcript); got != "today we will cover caching" {
		t.Errorf("transcript: got = %q", got)
	}
	if got := string(stub.lastReq.Rubric); got != "criterion,weight\nClarity,1\n" {
		t.Errorf("rubric: got = %q", got)
	}
}

func TestScoreMultipartWithoutRubric(t *testing.T) {
	stub := &stubRunner{result: &scorer.Result{}}
	h := NewHandler(stub, 0)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("transcript_file", "talk.txt")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte("today we will cover caching")); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/score", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got = %d, wanted = %d, body = %s", rec.Code, http.StatusOK, rec.Body)
	}
	if len(stub.lastReq.Rubric) != 0 {
		t.Errorf("rubric: got = %q, wanted empty", stub.lastReq.Rubric)
	}
}

func TestScoreInvalidJSON(t *testing.T) {
	h := NewHandler(&stubRunner{result: &scorer.Result{}}, 0)

	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"transcript`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got = %d, wanted = %d", rec.Code, http.StatusBadRequest)
	}
	var body errResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.ErrorKind != "bad_request" {
		t.Errorf("error_kind: got = %q, wanted = %q", body.ErrorKind, "bad_request")
	}
}

func TestScoreErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   string
		wantStatus int
	}{{
		name:       "unsupported transcript format",
		err:        fmt.Errorf("extracting transcript: %w", transcript.ErrUnsupportedFormat),
		wantKind:   "unsupported_format",
		wantStatus: http.StatusBadRequest,
	}, {
		name:       "extraction failure",
		err:        fmt.Errorf("extracting transcript: %w", transcript.ErrExtraction),
		wantKind:   "extraction",
		wantStatus: http.StatusBadRequest,
	}, {
		name:       "rubric parse failure",
		err:        fmt.Errorf("loading rubric: %w", rubric.ErrParse),
		wantKind:   "rubric_parse",
		wantStatus: http.StatusBadRequest,
	}, {
		name:       "duplicate criterion",
		err:        fmt.Errorf("normalizing rubric: %w", rubric.ErrDuplicateCriterion),
		wantKind:   "duplicate_criterion",
		wantStatus: http.StatusBadRequest,
	}, {
		name:       "invalid weight",
		err:        fmt.Errorf("normalizing rubric: %w", rubric.ErrInvalidWeight),
		wantKind:   "invalid_weight",
		wantStatus: http.StatusBadRequest,
	}, {
		name:       "unparseable model response",
		err:        fmt.Errorf("scoring: %w", scorer.ErrResponseParse),
		wantKind:   "response_parse",
		wantStatus: http.StatusBadGateway,
	}, {
		name:       "upstream failure",
		err:        fmt.Errorf("scoring: %w", scorer.ErrUpstream),
		wantKind:   "upstream",
		wantStatus: http.StatusBadGateway,
	}, {
		name:       "deadline inside upstream wrap",
		err:        fmt.Errorf("%w: %w", scorer.ErrUpstream, context.DeadlineExceeded),
		wantKind:   "deadline",
		wantStatus: http.StatusGatewayTimeout,
	}, {
		name:       "unknown error",
		err:        fmt.Errorf("disk on fire"),
		wantKind:   "internal",
		wantStatus: http.StatusInternalServerError,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := NewHandler(&stubRunner{err: test.err}, 0)

			req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"transcript": "hi there friends"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Errorf("status: got = %d, wanted = %d", rec.Code, test.wantStatus)
			}
			var body errResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body.ErrorKind != test.wantKind {
				t.Errorf("error_kind: got = %q, wanted = %q", body.ErrorKind, test.wantKind)
			}
			if body.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	h := NewHandler(&stubRunner{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got = %d, wanted = %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body: got = %q", got)
	}
}

func TestUI(t *testing.T) {
	h := NewHandler(&stubRunner{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got = %d, wanted = %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("content type: got = %q, wanted text/html", got)
	}
	if !strings.Contains(rec.Body.String(), "Transcript Scorer") {
		t.Error("ui page missing title")
	}
}
