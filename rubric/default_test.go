/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	first, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	second, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Default() not deterministic (-first +second):\n%s", diff)
	}

	var sum float64
	for _, c := range first.Criteria {
		if c.Name == "" {
			t.Error("criterion with empty name")
		}
		if c.MaxScore <= 0 {
			t.Errorf("criterion %q: max score = %v, wanted > 0", c.Name, c.MaxScore)
		}
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		t.Errorf("weight sum: got = %v, wanted = 1.0", sum)
	}
}
