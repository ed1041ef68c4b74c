/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"fmt"
	"math"
	"strings"
)

const (
	// WeightTolerance is the accepted deviation of the weight sum from 1.0.
	WeightTolerance = 0.01

	// percentTolerance is the accepted deviation from 100 for rubrics
	// expressed on a percentage scale.
	percentTolerance = 1.0
)

// Normalize validates a raw rubric into its canonical form. It trims
// whitespace, rejects duplicate names, converts percentage weights to
// fractions, and enforces the weight-sum invariant. Source order is
// preserved. This is the only validation gate for rubric shape.
func Normalize(raw *Raw) (*Rubric, error) {
	if raw == nil || len(raw.Criteria) == 0 {
		return nil, fmt.Errorf("%w: rubric has no criteria", ErrParse)
	}

	criteria := make([]Criterion, len(raw.Criteria))
	seen := make(map[string]struct{}, len(raw.Criteria))
	sum := 0.0

	for i, c := range raw.Criteria {
		c.Name = strings.TrimSpace(c.Name)
		c.Description = strings.TrimSpace(c.Description)

		if c.Name == "" {
			return nil, fmt.Errorf("%w: criterion %d has an empty name", ErrParse, i)
		}
		key := strings.ToLower(c.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCriterion, c.Name)
		}
		seen[key] = struct{}{}

		if c.Weight <= 0 {
			return nil, fmt.Errorf("%w: criterion %q has weight %v, must be positive", ErrInvalidWeight, c.Name, c.Weight)
		}
		if c.MaxScore <= 0 {
			return nil, fmt.Errorf("%w: criterion %q has max_score %v, must be positive", ErrInvalidWeight, c.Name, c.MaxScore)
		}

		criteria[i] = c
		sum += c.Weight
	}

	// Rubrics authored on a percentage scale (weights summing to ~100) are
	// converted to fractions before the sum check.
	if math.Abs(sum-100) <= percentTolerance {
		for i := range criteria {
			criteria[i].Weight /= 100
		}
		sum /= 100
	}

	if math.Abs(sum-1.0) > WeightTolerance {
		return nil, fmt.Errorf("%w: weights sum to %.4f, expected 1.0 ±%.2f (or 100 ±%.0f)",
			ErrInvalidWeight, sum, WeightTolerance, percentTolerance)
	}

	return &Rubric{Criteria: criteria}, nil
}
