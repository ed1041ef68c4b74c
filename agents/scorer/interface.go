/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scorer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/transcriptscore/rubric"
)

var (
	// ErrResponseParse indicates the model answered, but the completion could
	// not be parsed into a valid per-criterion score set.
	ErrResponseParse = errors.New("unparseable scoring response")

	// ErrUpstream indicates the model call itself failed after retries.
	ErrUpstream = errors.New("upstream model error")
)

// Request contains the material to score.
type Request struct {
	// Transcript is the plain transcript text.
	Transcript string `json:"transcript"`

	// Criteria is the normalized rubric to score against.
	Criteria []rubric.Criterion `json:"criteria"`
}

// CriterionScore is one rubric criterion's graded outcome.
type CriterionScore struct {
	// Criterion is the rubric criterion name.
	Criterion string `json:"criterion"`

	// Score is the awarded score, from 0 to MaxScore.
	Score float64 `json:"score"`

	// MaxScore is the criterion's score ceiling.
	MaxScore float64 `json:"max_score"`

	// Weight is the criterion's normalized weight.
	Weight float64 `json:"weight"`

	// Justification explains the awarded score.
	Justification string `json:"justification"`
}

// Result contains the full grading outcome for one transcript.
type Result struct {
	// Scores holds one entry per rubric criterion, in rubric order.
	Scores []CriterionScore `json:"scores"`

	// WeightedTotal is the weight-multiplied sum of the scores. It is always
	// computed from Scores, never taken from the model.
	WeightedTotal float64 `json:"weighted_total"`

	// OverallFeedback is the model's prose assessment of the transcript.
	OverallFeedback string `json:"overall_feedback"`

	// WordCount is the number of words in the scored transcript.
	WordCount int `json:"word_count"`

	// Model is the model that produced the scores.
	Model string `json:"model"`
}

// String returns a formatted representation of the result.
func (r *Result) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %.2f\n", r.WeightedTotal))
	for _, s := range r.Scores {
		sb.WriteString(fmt.Sprintf("  %s: %.1f/%.0f", s.Criterion, s.Score, s.MaxScore))
		if s.Justification != "" {
			sb.WriteString(fmt.Sprintf(" - %s", s.Justification))
		}
		sb.WriteString("\n")
	}
	if r.OverallFeedback != "" {
		sb.WriteString(r.OverallFeedback)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Interface defines the contract for scorer implementations
type Interface interface {
	// Score grades the transcript against the rubric.
	Score(ctx context.Context, transcript string, r *rubric.Rubric) (*Result, error)
}
