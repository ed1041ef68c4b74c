/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	_ "embed"
	"fmt"
)

// defaultAsset is the bundled rubric for general communication scoring,
// used whenever a request supplies no rubric of its own.
//
//go:embed default_rubric.csv
var defaultAsset []byte

// Default loads and normalizes the bundled rubric. Callers should do this
// once at startup and pass the result around; the asset never changes at
// runtime.
func Default() (*Rubric, error) {
	raw, err := Load(defaultAsset)
	if err != nil {
		return nil, fmt.Errorf("loading default rubric: %w", err)
	}
	r, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalizing default rubric: %w", err)
	}
	return r, nil
}
