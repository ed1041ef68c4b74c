/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scorer

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"chainguard.dev/transcriptscore/agents/executor/claudeexecutor"
)

// newClaude creates a Claude-backed scorer instance
func newClaude(cfg Config) (Interface, error) {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	exec, err := claudeexecutor.New[*Request, *completion](
		client,
		scoringPrompt,
		claudeexecutor.WithModel[*Request, *completion](cfg.Model),
		claudeexecutor.WithTemperature[*Request, *completion](0.1),
		claudeexecutor.WithMaxTokens[*Request, *completion](8192),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring executor: %w", err)
	}

	return &scorer{exec: exec, model: cfg.Model}, nil
}
