/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scorer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"chainguard.dev/transcriptscore/agents/executor/geminiexecutor"
	"chainguard.dev/transcriptscore/agents/schema"
)

// newGemini creates a Gemini-backed scorer instance
func newGemini(ctx context.Context, cfg Config) (Interface, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	// Constrained decoding keeps the completion on the wire shape.
	responseSchema := schema.ToGenAI(schema.ReflectType[completion]())

	exec, err := geminiexecutor.New[*Request, *completion](
		client,
		scoringPrompt,
		geminiexecutor.WithModel[*Request, *completion](cfg.Model),
		geminiexecutor.WithTemperature[*Request, *completion](0.1),
		geminiexecutor.WithMaxOutputTokens[*Request, *completion](8192),
		geminiexecutor.WithResponseMIMEType[*Request, *completion]("application/json"),
		geminiexecutor.WithResponseSchema[*Request, *completion](responseSchema),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring executor: %w", err)
	}

	return &scorer{exec: exec, model: cfg.Model}, nil
}
