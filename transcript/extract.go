/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package transcript turns uploaded transcript payloads into plain text
// suitable for prompting. Plain UTF-8 text passes through unchanged and PDF
// payloads have their text layer extracted.
package transcript

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsupportedFormat indicates the payload is neither plain text nor PDF.
	ErrUnsupportedFormat = errors.New("unsupported transcript format")

	// ErrExtraction indicates the payload was recognized but no usable text
	// could be pulled out of it.
	ErrExtraction = errors.New("transcript extraction failed")
)

// Format classifies a transcript payload.
type Format string

const (
	FormatText    Format = "text"
	FormatPDF     Format = "pdf"
	FormatUnknown Format = "unknown"
)

var pdfMagic = []byte("%PDF-")

// DetectFormat classifies the payload by inspection alone.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, pdfMagic) {
		return FormatPDF
	}
	if utf8.Valid(data) {
		return FormatText
	}
	return FormatUnknown
}

// Extract returns the transcript text contained in data.
func Extract(data []byte) (string, error) {
	var text string
	switch format := DetectFormat(data); format {
	case FormatText:
		text = string(data)
	case FormatPDF:
		pt, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		text = pt
	default:
		return "", fmt.Errorf("%w: payload is not valid UTF-8 text or PDF", ErrUnsupportedFormat)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: transcript is empty", ErrExtraction)
	}
	return text, nil
}

// WordCount reports the number of whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
