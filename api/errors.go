/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
	"errors"
	"net/http"

	"chainguard.dev/transcriptscore/agents/scorer"
	"chainguard.dev/transcriptscore/rubric"
	"chainguard.dev/transcriptscore/transcript"
)

// errorKind maps a pipeline error to its wire kind and HTTP status. Input
// problems are the caller's fault, model problems are the upstream's.
func errorKind(err error) (string, int) {
	switch {
	case errors.Is(err, transcript.ErrUnsupportedFormat):
		return "unsupported_format", http.StatusBadRequest
	case errors.Is(err, transcript.ErrExtraction):
		return "extraction", http.StatusBadRequest
	case errors.Is(err, rubric.ErrDuplicateCriterion):
		return "duplicate_criterion", http.StatusBadRequest
	case errors.Is(err, rubric.ErrInvalidWeight):
		return "invalid_weight", http.StatusBadRequest
	case errors.Is(err, rubric.ErrParse):
		return "rubric_parse", http.StatusBadRequest
	// Deadline checks precede the scorer sentinels: a timed-out model call
	// is wrapped in ErrUpstream but should surface as a gateway timeout.
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline", http.StatusGatewayTimeout
	case errors.Is(err, scorer.ErrResponseParse):
		return "response_parse", http.StatusBadGateway
	case errors.Is(err, scorer.ErrUpstream):
		return "upstream", http.StatusBadGateway
	default:
		return "internal", http.StatusInternalServerError
	}
}
