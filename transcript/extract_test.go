/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package transcript

import (
	"errors"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{{
		name: "plain text",
		data: []byte("Good morning everyone, today we will cover caching."),
		want: FormatText,
	}, {
		name: "pdf magic",
		data: []byte("%PDF-1.7\n..."),
		want: FormatPDF,
	}, {
		name: "binary garbage",
		data: []byte{0xff, 0xfe, 0x00, 0x81, 0x92},
		want: FormatUnknown,
	}, {
		name: "empty",
		data: nil,
		want: FormatText,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := DetectFormat(test.data); got != test.want {
				t.Errorf("DetectFormat() = %q, wanted = %q", got, test.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		want := "Good morning everyone, today we will cover caching."
		got, err := Extract([]byte(want))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if got != want {
			t.Errorf("Extract() = %q, wanted = %q", got, want)
		}
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := Extract([]byte("   \n\t  "))
		if !errors.Is(err, ErrExtraction) {
			t.Errorf("Extract() error = %v, wanted ErrExtraction", err)
		}
	})

	t.Run("binary input rejected", func(t *testing.T) {
		_, err := Extract([]byte{0xff, 0xfe, 0x00, 0x81, 0x92})
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Extract() error = %v, wanted ErrUnsupportedFormat", err)
		}
	})

	t.Run("corrupt pdf rejected", func(t *testing.T) {
		_, err := Extract([]byte("%PDF-1.7 this is not a real pdf body"))
		if !errors.Is(err, ErrExtraction) {
			t.Errorf("Extract() error = %v, wanted ErrExtraction", err)
		}
	})
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{{
		name: "empty",
		text: "",
		want: 0,
	}, {
		name: "whitespace only",
		text: " \n\t ",
		want: 0,
	}, {
		name: "sentence",
		text: "today  we will\ncover caching",
		want: 5,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := WordCount(test.text); got != test.want {
				t.Errorf("WordCount() = %d, wanted = %d", got, test.want)
			}
		})
	}
}
