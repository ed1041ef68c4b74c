/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Load parses a rubric source into its raw form. The format is resolved by
// DetectFormat; unrecognized content fails with ErrParse.
func Load(data []byte) (*Raw, error) {
	format := DetectFormat(data)

	var (
		criteria []Criterion
		err      error
	)
	switch format {
	case FormatXLSX:
		criteria, err = parseXLSX(data)
	case FormatCSV:
		criteria, err = parseCSV(data)
	case FormatJSON:
		criteria, err = parseJSON(data)
	case FormatYAML:
		criteria, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: unrecognized rubric format", ErrParse)
	}
	if err != nil {
		return nil, err
	}

	return &Raw{Format: format, Criteria: criteria}, nil
}

// wireCriterion uses pointers so that absent required fields are
// distinguishable from zero values.
type wireCriterion struct {
	Name        *string  `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Weight      *float64 `json:"weight" yaml:"weight"`
	MaxScore    *float64 `json:"max_score" yaml:"max_score"`
}

// wireRubric accepts the {"criteria": [...]} envelope.
type wireRubric struct {
	Criteria []wireCriterion `json:"criteria" yaml:"criteria"`
}

func (w wireCriterion) criterion(index int) (Criterion, error) {
	if w.Name == nil || strings.TrimSpace(*w.Name) == "" {
		return Criterion{}, fmt.Errorf("%w: criterion %d is missing a name", ErrParse, index)
	}
	if w.Weight == nil {
		return Criterion{}, fmt.Errorf("%w: criterion %q is missing a weight", ErrParse, *w.Name)
	}
	c := Criterion{
		Name:        *w.Name,
		Description: w.Description,
		Weight:      *w.Weight,
		MaxScore:    DefaultMaxScore,
	}
	if w.MaxScore != nil {
		c.MaxScore = *w.MaxScore
	}
	return c, nil
}

func fromWire(wire []wireCriterion) ([]Criterion, error) {
	criteria := make([]Criterion, 0, len(wire))
	for i, w := range wire {
		c, err := w.criterion(i)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

func parseJSON(data []byte) ([]Criterion, error) {
	trimmed := bytes.TrimSpace(data)

	// A bare array of criteria and the {"criteria": [...]} envelope are both accepted.
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var wire []wireCriterion
		if err := json.Unmarshal(trimmed, &wire); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return fromWire(wire)
	}

	var envelope wireRubric
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if envelope.Criteria == nil {
		return nil, fmt.Errorf("%w: missing criteria field", ErrParse)
	}
	return fromWire(envelope.Criteria)
}

func parseYAML(data []byte) ([]Criterion, error) {
	var wire []wireCriterion
	if err := yaml.Unmarshal(data, &wire); err == nil {
		return fromWire(wire)
	}

	var envelope wireRubric
	if err := yaml.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if envelope.Criteria == nil {
		return nil, fmt.Errorf("%w: missing criteria field", ErrParse)
	}
	return fromWire(envelope.Criteria)
}

func parseCSV(data []byte) ([]Criterion, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return parseTable(rows)
}

func parseXLSX(data []byte) ([]Criterion, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrParse)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return parseTable(rows)
}

// parseTable converts a spreadsheet header row plus data rows into criteria.
// Column headers are matched case-insensitively; criterion name and weight
// columns are required.
func parseTable(rows [][]string) ([]Criterion, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrParse)
	}

	nameCol, descCol, weightCol, maxCol := -1, -1, -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "criterion", "name":
			nameCol = i
		case "description":
			descCol = i
		case "weight":
			weightCol = i
		case "max_score", "max score":
			maxCol = i
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: missing criterion column", ErrParse)
	}
	if weightCol < 0 {
		return nil, fmt.Errorf("%w: missing weight column", ErrParse)
	}

	var criteria []Criterion
	for rowIdx, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		name := cell(row, nameCol)
		if name == "" {
			return nil, fmt.Errorf("%w: row %d is missing a criterion name", ErrParse, rowIdx+2)
		}
		weightText := cell(row, weightCol)
		if weightText == "" {
			return nil, fmt.Errorf("%w: criterion %q is missing a weight", ErrParse, name)
		}
		weight, err := strconv.ParseFloat(weightText, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: criterion %q has non-numeric weight %q", ErrParse, name, weightText)
		}

		c := Criterion{
			Name:        name,
			Description: cell(row, descCol),
			Weight:      weight,
			MaxScore:    DefaultMaxScore,
		}
		if maxText := cell(row, maxCol); maxText != "" {
			maxScore, err := strconv.ParseFloat(maxText, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: criterion %q has non-numeric max_score %q", ErrParse, name, maxText)
			}
			c.MaxScore = maxScore
		}
		criteria = append(criteria, c)
	}

	return criteria, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
