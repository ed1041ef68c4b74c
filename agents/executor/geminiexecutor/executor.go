/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package geminiexecutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"

	"chainguard.dev/transcriptscore/agents/metrics"
	"chainguard.dev/transcriptscore/agents/promptbuilder"
	"chainguard.dev/transcriptscore/agents/result"
	"chainguard.dev/transcriptscore/agents/retry"
)

// Interface is the public contract for Gemini execution. One Execute call is
// one model invocation: the request is bound into the prompt template, sent
// once, and the completion is parsed into Response.
type Interface[Request promptbuilder.Bindable, Response any] interface {
	Execute(ctx context.Context, request Request) (Response, error)
}

// executor is the private implementation
type executor[Request promptbuilder.Bindable, Response any] struct {
	client             *genai.Client
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float32
	maxOutputTokens    int32
	systemInstructions *promptbuilder.Prompt
	responseMIMEType   string
	responseSchema     *genai.Schema
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates a Gemini executor with the given prompt template.
func New[Request promptbuilder.Bindable, Response any](
	client *genai.Client,
	prompt *promptbuilder.Prompt,
	options ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}

	exec := &executor[Request, Response]{
		client:          client,
		prompt:          prompt,
		model:           "gemini-2.5-flash",
		temperature:     0.1, // Low temperature for consistent scoring
		maxOutputTokens: 8192,
		genaiMetrics:    metrics.NewGenAI("transcriptscore.agents"),
		retryConfig:     retry.DefaultConfig(),
	}

	for _, opt := range options {
		if err := opt(exec); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return exec, nil
}

// Execute implements Interface.
func (e *executor[Request, Response]) Execute(ctx context.Context, request Request) (resp Response, err error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return resp, fmt.Errorf("failed to bind request to prompt: %w", err)
	}

	prompt, err := boundPrompt.Build()
	if err != nil {
		return resp, fmt.Errorf("failed to build prompt: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
	}

	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return resp, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	if e.responseMIMEType != "" {
		config.ResponseMIMEType = e.responseMIMEType
	}
	if e.responseSchema != nil {
		config.ResponseSchema = e.responseSchema
	}

	log.With("model", e.model).
		With("prompt_length", len(prompt)).
		Info("Starting Gemini execution")

	response, err := retry.Do(ctx, e.retryConfig, "generate_content", isRetryableGeminiError, func() (*genai.GenerateContentResponse, error) {
		return e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), config)
	})
	if err != nil {
		return resp, fmt.Errorf("failed to generate content: %w", err)
	}

	if response.UsageMetadata != nil {
		e.genaiMetrics.RecordTokens(ctx, e.model,
			int64(response.UsageMetadata.PromptTokenCount),
			int64(response.UsageMetadata.CandidatesTokenCount))
	}

	if len(response.Candidates) == 0 {
		return resp, errors.New("no content generated - no candidates")
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return resp, errors.New("no content generated - empty candidate")
	}

	var responseText string
	for _, part := range candidate.Content.Parts {
		if part.Thought {
			continue
		}
		if part.Text != "" {
			responseText = part.Text
		}
	}
	if responseText == "" {
		return resp, errors.New("no text content found in response")
	}

	parsed, err := result.Extract[Response](responseText)
	if err != nil {
		log.With("response", responseText).With("error", err).Error("Failed to parse Gemini response")
		return resp, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Info("Successfully completed Gemini execution")
	return parsed, nil
}
