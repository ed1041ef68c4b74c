/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestLoadJSON(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		raw, err := Load([]byte(`[
			{"name": "Clarity", "weight": 0.5, "max_score": 10},
			{"name": "Accuracy", "weight": 0.5, "max_score": 10}
		]`))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if raw.Format != FormatJSON {
			t.Errorf("format: got = %q, wanted = %q", raw.Format, FormatJSON)
		}
		want := []Criterion{
			{Name: "Clarity", Weight: 0.5, MaxScore: 10},
			{Name: "Accuracy", Weight: 0.5, MaxScore: 10},
		}
		if diff := cmp.Diff(want, raw.Criteria); diff != "" {
			t.Errorf("criteria mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("criteria envelope", func(t *testing.T) {
		raw, err := Load([]byte(`{"criteria": [{"name": "Clarity", "weight": 1}]}`))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if raw.Criteria[0].MaxScore != DefaultMaxScore {
			t.Errorf("max_score default: got = %v, wanted = %v", raw.Criteria[0].MaxScore, DefaultMaxScore)
		}
	})

	t.Run("missing weight field", func(t *testing.T) {
		_, err := Load([]byte(`[{"name": "Clarity", "max_score": 10}]`))
		if !errors.Is(err, ErrParse) {
			t.Errorf("Load() error = %v, wanted ErrParse", err)
		}
	})

	t.Run("missing name field", func(t *testing.T) {
		_, err := Load([]byte(`[{"weight": 1}]`))
		if !errors.Is(err, ErrParse) {
			t.Errorf("Load() error = %v, wanted ErrParse", err)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := Load([]byte(`{"criteria": [`))
		if !errors.Is(err, ErrParse) {
			t.Errorf("Load() error = %v, wanted ErrParse", err)
		}
	})
}

func TestLoadYAML(t *testing.T) {
	t.Run("sequence", func(t *testing.T) {
		raw, err := Load([]byte("- name: Clarity\n  weight: 0.5\n- name: Accuracy\n  weight: 0.5\n"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if raw.Format != FormatYAML {
			t.Errorf("format: got = %q, wanted = %q", raw.Format, FormatYAML)
		}
		if len(raw.Criteria) != 2 {
			t.Fatalf("criteria count: got = %d, wanted = 2", len(raw.Criteria))
		}
	})

	t.Run("envelope", func(t *testing.T) {
		raw, err := Load([]byte("criteria:\n  - name: Clarity\n    weight: 1\n    max_score: 5\n"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if raw.Criteria[0].MaxScore != 5 {
			t.Errorf("max_score: got = %v, wanted = 5", raw.Criteria[0].MaxScore)
		}
	})

	t.Run("missing weight", func(t *testing.T) {
		_, err := Load([]byte("- name: Clarity\n  max_score: 10\n"))
		if !errors.Is(err, ErrParse) {
			t.Errorf("Load() error = %v, wanted ErrParse", err)
		}
	})
}

func TestLoadCSV(t *testing.T) {
	t.Run("full header", func(t *testing.T) {
		raw, err := Load([]byte("criterion,description,weight,max_score\nClarity,easy to follow,0.5,10\nAccuracy,factually right,0.5,10\n"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		want := []Criterion{
			{Name: "Clarity", Description: "easy to follow", Weight: 0.5, MaxScore: 10},
			{Name: "Accuracy", Description: "factually right", Weight: 0.5, MaxScore: 10},
		}
		if diff := cmp.Diff(want, raw.Criteria); diff != "" {
			t.Errorf("criteria mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing weight column", func(t *testing.T) {
		_, err := Load([]byte("criterion,description\nClarity,easy to follow\n"))
		if !errors.Is(err, ErrParse) {
			t.Errorf("Load() error = %v, wanted ErrParse", err)
		}
	})

	t.Run("non-numeric weight", func(t *testing.T) {
		_, err := Load([]byte("criterion,weight\nClarity,heavy\n"))
		if !errors.Is(err, ErrParse) {
			t.Errorf("Load() error = %v, wanted ErrParse", err)
		}
	})

	t.Run("blank rows skipped", func(t *testing.T) {
		raw, err := Load([]byte("criterion,weight\nClarity,1\n,\n"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(raw.Criteria) != 1 {
			t.Errorf("criteria count: got = %d, wanted = 1", len(raw.Criteria))
		}
	})
}

// buildXLSX constructs a workbook in memory; headers in row 1, one criterion
// per following row.
func buildXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName() error = %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("SetCellValue() error = %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}
	return buf.Bytes()
}

func TestLoadXLSX(t *testing.T) {
	t.Run("valid workbook", func(t *testing.T) {
		data := buildXLSX(t, [][]any{
			{"criterion", "description", "weight", "max_score"},
			{"Clarity", "easy to follow", 0.5, 10},
			{"Accuracy", "factually right", 0.5, 10},
		})
		if got := DetectFormat(data); got != FormatXLSX {
			t.Fatalf("DetectFormat(): got = %q, wanted = %q", got, FormatXLSX)
		}
		raw, err := Load(data)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(raw.Criteria) != 2 {
			t.Fatalf("criteria count: got = %d, wanted = 2", len(raw.Criteria))
		}
		if raw.Criteria[0].Name != "Clarity" || raw.Criteria[0].Weight != 0.5 {
			t.Errorf("first criterion: got = %+v, wanted Clarity/0.5", raw.Criteria[0])
		}
	})

	t.Run("missing weight column", func(t *testing.T) {
		data := buildXLSX(t, [][]any{
			{"criterion", "description"},
			{"Clarity", "easy to follow"},
		})
		_, err := Load(data)
		if !errors.Is(err, ErrParse) {
			t.Errorf("Load() error = %v, wanted ErrParse", err)
		}
	})
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load([]byte("grade generously please"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("Load() error = %v, wanted ErrParse", err)
	}
}
