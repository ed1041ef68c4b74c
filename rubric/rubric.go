/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package rubric loads and validates scoring rubrics. A rubric arrives as a
// spreadsheet (xlsx or csv) or as structured text (json or yaml), detected by
// content rather than file name. Normalize is the single validation gate:
// a *Rubric that came out of Normalize is well-formed and immutable, and no
// downstream component re-validates it.
package rubric

import "errors"

var (
	// ErrParse reports a rubric source that could not be decoded or is
	// missing required fields (criterion name, weight).
	ErrParse = errors.New("rubric parse error")

	// ErrDuplicateCriterion reports two criteria with the same name.
	ErrDuplicateCriterion = errors.New("duplicate criterion")

	// ErrInvalidWeight reports weights that are non-positive or whose sum is
	// outside the accepted tolerance.
	ErrInvalidWeight = errors.New("invalid criterion weight")
)

// Criterion is a single named, weighted evaluation dimension.
type Criterion struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Weight      float64 `json:"weight" yaml:"weight"`
	MaxScore    float64 `json:"max_score" yaml:"max_score"`
}

// Rubric is an ordered set of criteria with unique names and weights summing
// to 1.0 within tolerance. Only Normalize produces values of this type.
type Rubric struct {
	Criteria []Criterion `json:"criteria"`
}

// Raw is the loader output before validation: the detected source format plus
// the criteria exactly as they appeared in the source.
type Raw struct {
	Format   Format
	Criteria []Criterion
}

// DefaultMaxScore applies when a source omits the max_score column or field.
const DefaultMaxScore = 10.0
