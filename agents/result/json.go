/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package result extracts structured results from model completions.
// Completions are untrusted text: they may wrap JSON in markdown fences or
// pad it with prose, and the payload may not match the expected shape at all.
// Extract treats every deviation as ErrMalformed so callers can classify
// parse failures deterministically.
package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed reports a completion that did not contain a parseable payload
// of the expected type. It wraps the underlying JSON error.
var ErrMalformed = errors.New("malformed model response")

// ExtractJSON returns the JSON content of a completion that may wrap it in
// markdown code fences. It looks for a ```json block first and falls back to
// stripping fences and whitespace from the whole text.
func ExtractJSON(completion string) string {
	lines := strings.Split(completion, "\n")
	var buf bytes.Buffer
	inBlock := false
	found := false

	for _, line := range lines {
		if !inBlock && line == "```json" {
			inBlock = true
			found = true
			continue
		}
		if inBlock && line == "```" {
			break
		}
		if inBlock {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(line)
		}
	}

	if found {
		return strings.TrimSpace(buf.String())
	}

	completion = strings.TrimSpace(completion)
	completion = strings.TrimPrefix(completion, "```json")
	completion = strings.TrimPrefix(completion, "```")
	completion = strings.TrimSuffix(completion, "```")
	return strings.TrimSpace(completion)
}

// Extract pulls the JSON payload out of a completion and decodes it into T.
// Decoding is strict: unknown fields and trailing garbage both fail. Any
// failure wraps ErrMalformed.
func Extract[T any](completion string) (T, error) {
	var out T

	payload := ExtractJSON(completion)
	if payload == "" {
		return out, fmt.Errorf("%w: empty completion", ErrMalformed)
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// A completion with multiple JSON documents is not a valid result.
	if dec.More() {
		return out, fmt.Errorf("%w: trailing content after JSON payload", ErrMalformed)
	}

	return out, nil
}
