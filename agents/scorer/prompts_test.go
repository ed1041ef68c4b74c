/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scorer

import (
	"strings"
	"testing"

	"chainguard.dev/transcriptscore/rubric"
)

func TestRequestBind(t *testing.T) {
	req := &Request{
		Transcript: "Good morning everyone, today we will cover caching.",
		Criteria: []rubric.Criterion{
			{Name: "Clarity", Description: "easy to follow", Weight: 1, MaxScore: 10},
		},
	}

	bound, err := req.Bind(scoringPrompt)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	prompt, err := bound.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, want := range []string{
		`"name": "Clarity"`,
		"<transcript>",
		"today we will cover caching",
		"</transcript>",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "{{") {
		t.Error("prompt still contains unbound placeholders")
	}
}
