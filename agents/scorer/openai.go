/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scorer

import (
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"chainguard.dev/transcriptscore/agents/executor/openaiexecutor"
)

// newOpenAI creates an OpenAI-backed scorer instance
func newOpenAI(cfg Config) (Interface, error) {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))

	exec, err := openaiexecutor.New[*Request, *completion](
		client,
		scoringPrompt,
		openaiexecutor.WithModel[*Request, *completion](cfg.Model),
		openaiexecutor.WithTemperature[*Request, *completion](0.1),
		openaiexecutor.WithMaxTokens[*Request, *completion](8192),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring executor: %w", err)
	}

	return &scorer{exec: exec, model: cfg.Model}, nil
}
