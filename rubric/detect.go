/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"bytes"
	"strings"
	"unicode"
)

// Format identifies the representation of a rubric source.
type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatUnknown Format = "unknown"
)

// xlsxMagic is the ZIP local-file-header signature; xlsx files are ZIP archives.
var xlsxMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// DetectFormat classifies a rubric source by content. It is a pure function:
// the classification never depends on a file name and never falls back by
// attempting a parse and catching the failure.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, xlsxMagic) {
		return FormatXLSX
	}

	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}

	line := firstLine(string(trimmed))
	lower := strings.ToLower(line)

	// A CSV rubric leads with a header row naming the required columns.
	if strings.Contains(lower, ",") &&
		strings.Contains(lower, "weight") &&
		(strings.Contains(lower, "criterion") || strings.Contains(lower, "name")) {
		return FormatCSV
	}

	// YAML rubrics open with a mapping key or a sequence entry.
	if strings.HasPrefix(line, "- ") ||
		strings.HasSuffix(line, ":") ||
		strings.Contains(line, ": ") {
		return FormatYAML
	}

	return FormatUnknown
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
