/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package orchestrator sequences one scoring run: extract the transcript
// text, resolve the rubric, then hand both to the scorer. Each stage
// fails fast, so the model is never invoked on bad input.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/transcriptscore/agents/scorer"
	"chainguard.dev/transcriptscore/rubric"
	"chainguard.dev/transcriptscore/transcript"
)

// Request is one scoring run's raw inputs.
type Request struct {
	// Transcript is the uploaded transcript payload, plain text or PDF.
	Transcript []byte

	// Rubric is the uploaded rubric payload, if any. When empty the default
	// rubric is used.
	Rubric []byte
}

// Orchestrator runs the extract, rubric, and scoring stages in order.
type Orchestrator struct {
	defaultRubric *rubric.Rubric
	scorer        scorer.Interface
}

// New creates an Orchestrator.
func New(defaultRubric *rubric.Rubric, s scorer.Interface) (*Orchestrator, error) {
	if defaultRubric == nil || len(defaultRubric.Criteria) == 0 {
		return nil, errors.New("default rubric is required")
	}
	if s == nil {
		return nil, errors.New("scorer is required")
	}
	return &Orchestrator{defaultRubric: defaultRubric, scorer: s}, nil
}

// Run executes one scoring run.
func (o *Orchestrator) Run(ctx context.Context, req *Request) (*scorer.Result, error) {
	log := clog.FromContext(ctx)

	text, err := transcript.Extract(req.Transcript)
	if err != nil {
		return nil, fmt.Errorf("extracting transcript: %w", err)
	}
	log.With("word_count", transcript.WordCount(text)).Info("Extracted transcript")

	r := o.defaultRubric
	if len(req.Rubric) > 0 {
		raw, err := rubric.Load(req.Rubric)
		if err != nil {
			return nil, fmt.Errorf("loading rubric: %w", err)
		}
		if r, err = rubric.Normalize(raw); err != nil {
			return nil, fmt.Errorf("normalizing rubric: %w", err)
		}
		log.With("format", raw.Format).
			With("criteria", len(r.Criteria)).
			Info("Loaded uploaded rubric")
	} else {
		log.With("criteria", len(r.Criteria)).Info("Using default rubric")
	}

	return o.scorer.Score(ctx, text, r)
}
