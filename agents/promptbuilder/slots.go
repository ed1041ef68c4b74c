/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/json"
	"encoding/xml"
	"fmt"

	"gopkg.in/yaml.v3"
)

// slot produces the substitution text for a placeholder.
type slot interface {
	value() (string, error)
}

// unboundSlot is the initial state of every placeholder.
type unboundSlot struct {
	name string
}

func (u *unboundSlot) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

type literalSlot struct {
	val string
}

func (l *literalSlot) value() (string, error) {
	return l.val, nil
}

type xmlSlot struct {
	data any
}

func (x *xmlSlot) value() (string, error) {
	b, err := xml.MarshalIndent(x.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling XML: %w", err)
	}
	return string(b), nil
}

type jsonSlot struct {
	data any
}

func (j *jsonSlot) value() (string, error) {
	b, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return string(b), nil
}

type yamlSlot struct {
	data any
}

func (y *yamlSlot) value() (string, error) {
	b, err := yaml.Marshal(y.data)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return string(b), nil
}
