/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package scorer grades transcripts against rubrics with an LLM. The model
// prefix of Config.Model selects the provider: gemini-* models use Google's
// Generative AI SDK, claude-* models use the Anthropic SDK, and gpt-* models
// use the OpenAI SDK.
package scorer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/transcriptscore/agents/result"
	"chainguard.dev/transcriptscore/rubric"
	"chainguard.dev/transcriptscore/transcript"
)

// completion is the wire shape the model is asked to return.
type completion struct {
	Scores          []criterionCompletion `json:"scores" jsonschema:"required"`
	OverallFeedback string                `json:"overall_feedback" jsonschema:"required"`
}

// criterionCompletion is one criterion's entry in the model's completion.
type criterionCompletion struct {
	Criterion     string  `json:"criterion" jsonschema:"required"`
	Score         float64 `json:"score" jsonschema:"required"`
	Justification string  `json:"justification" jsonschema:"required"`
}

// llmExecutor is the slice of the executor contract the scorer needs. All
// three provider executors satisfy it.
type llmExecutor interface {
	Execute(ctx context.Context, request *Request) (*completion, error)
}

// Config holds the provider selection and credentials.
type Config struct {
	// Model selects the provider by prefix and the model within it.
	Model string

	// APIKey authenticates against the selected provider.
	APIKey string
}

// New creates an Interface instance by delegating to the appropriate
// implementation based on the model name.
func New(ctx context.Context, cfg Config) (Interface, error) {
	modelLower := strings.ToLower(cfg.Model)

	switch {
	case strings.HasPrefix(modelLower, "gemini-"):
		return newGemini(ctx, cfg)
	case strings.HasPrefix(modelLower, "claude-"):
		return newClaude(cfg)
	case strings.HasPrefix(modelLower, "gpt-"):
		return newOpenAI(cfg)
	}

	return nil, fmt.Errorf("unsupported model: %s (expected gemini-*, claude-*, or gpt-*)", cfg.Model)
}

// scorer implements Interface on top of a provider executor.
type scorer struct {
	exec  llmExecutor
	model string
}

// Score implements Interface.
func (s *scorer) Score(ctx context.Context, text string, r *rubric.Rubric) (*Result, error) {
	if r == nil || len(r.Criteria) == 0 {
		return nil, errors.New("rubric is required")
	}

	log := clog.FromContext(ctx)
	log.With("model", s.model).
		With("criteria", len(r.Criteria)).
		Info("Scoring transcript")

	comp, err := s.exec.Execute(ctx, &Request{
		Transcript: text,
		Criteria:   r.Criteria,
	})
	if err != nil {
		if errors.Is(err, result.ErrMalformed) {
			return nil, fmt.Errorf("%w: %w", ErrResponseParse, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	res, err := assemble(comp, r, s.model)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResponseParse, err)
	}
	res.WordCount = transcript.WordCount(text)

	log.With("weighted_total", res.WeightedTotal).Info("Scoring complete")
	return res, nil
}

// assemble validates the completion against the rubric and computes the
// weighted total. The model's score set must cover every rubric criterion
// exactly once, with nothing extra, and every score must land on its
// criterion's scale.
func assemble(comp *completion, r *rubric.Rubric, model string) (*Result, error) {
	byName := make(map[string]criterionCompletion, len(comp.Scores))
	for _, cs := range comp.Scores {
		key := strings.ToLower(strings.TrimSpace(cs.Criterion))
		if _, ok := byName[key]; ok {
			return nil, fmt.Errorf("criterion %q scored more than once", cs.Criterion)
		}
		byName[key] = cs
	}

	res := &Result{
		Scores:          make([]CriterionScore, 0, len(r.Criteria)),
		OverallFeedback: strings.TrimSpace(comp.OverallFeedback),
		Model:           model,
	}
	for _, c := range r.Criteria {
		key := strings.ToLower(c.Name)
		cs, ok := byName[key]
		if !ok {
			return nil, fmt.Errorf("criterion %q missing from response", c.Name)
		}
		delete(byName, key)

		if cs.Score < 0 || cs.Score > c.MaxScore {
			return nil, fmt.Errorf("criterion %q score %v outside [0, %v]", c.Name, cs.Score, c.MaxScore)
		}

		res.Scores = append(res.Scores, CriterionScore{
			Criterion:     c.Name,
			Score:         cs.Score,
			MaxScore:      c.MaxScore,
			Weight:        c.Weight,
			Justification: strings.TrimSpace(cs.Justification),
		})
		res.WeightedTotal += cs.Score * c.Weight
	}
	if len(byName) > 0 {
		extras := make([]string, 0, len(byName))
		for _, cs := range byName {
			extras = append(extras, cs.Criterion)
		}
		return nil, fmt.Errorf("response scored criteria not in the rubric: %s", strings.Join(extras, ", "))
	}

	return res, nil
}
