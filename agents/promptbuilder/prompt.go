/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode"
)

// templateLiteral is a private type alias that only accepts literal strings,
// so templates cannot be assembled from untrusted input.
type templateLiteral string

// Prompt is an immutable template with {{name}} placeholders. Binding a value
// returns a new Prompt; Build fails while any placeholder remains unbound.
type Prompt struct {
	template string
	slots    map[string]slot
}

// NewPrompt parses a template literal and records its placeholders.
func NewPrompt(template templateLiteral) (*Prompt, error) {
	slots := make(map[string]slot)

	// Walking the template with an identity resolver both validates the
	// placeholder syntax and collects the slot names.
	text, err := walk(string(template), func(name string) (string, error) {
		if _, ok := slots[name]; !ok {
			slots[name] = &unboundSlot{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}

	return &Prompt{template: text, slots: slots}, nil
}

// MustNewPrompt is NewPrompt for package-level template variables.
func MustNewPrompt(template templateLiteral) *Prompt {
	p, err := NewPrompt(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Placeholders returns the set of placeholder names found in the template.
func (p *Prompt) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(p.slots))
	for name := range p.slots {
		names[name] = struct{}{}
	}
	return names
}

// BindLiteral binds a developer-provided literal string to a placeholder.
func (p *Prompt) BindLiteral(name string, value templateLiteral) (*Prompt, error) {
	return p.bind(name, &literalSlot{val: string(value)})
}

// BindXML binds structured data to a placeholder, marshaled as indented XML.
// User-supplied text should flow into prompts through this method (or BindJSON)
// so that it is always delimited from the surrounding instructions.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.bind(name, &xmlSlot{data: data})
}

// BindJSON binds structured data to a placeholder, marshaled as indented JSON.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.bind(name, &jsonSlot{data: data})
}

// BindYAML binds structured data to a placeholder, marshaled as YAML.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.bind(name, &yamlSlot{data: data})
}

func (p *Prompt) bind(name string, s slot) (*Prompt, error) {
	existing, ok := p.slots[name]
	if !ok {
		return nil, fmt.Errorf("placeholder %q not found in template", name)
	}
	if _, unbound := existing.(*unboundSlot); !unbound {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	next := &Prompt{
		template: p.template,
		slots:    maps.Clone(p.slots),
	}
	next.slots[name] = s
	return next, nil
}

// Build renders the final prompt, failing if any placeholder is unbound.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.slots))
	for name, s := range p.slots {
		val, err := s.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}

	return walk(p.template, func(name string) (string, error) {
		if val, ok := values[name]; ok {
			return val, nil
		}
		return "", fmt.Errorf("internal error: no value for placeholder %q", name)
	})
}

// resolver supplies the replacement text for a placeholder name.
type resolver func(name string) (string, error)

// walk tokenizes the template and invokes resolve for each placeholder.
func walk(template string, resolve resolver) (string, error) {
	var out strings.Builder

	for len(template) > 0 {
		start := strings.Index(template, "{{")
		if start == -1 {
			out.WriteString(template)
			break
		}
		out.WriteString(template[:start])

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			return "", errors.New("unclosed placeholder: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(template[start+2 : end-2])
		if !validName(name) {
			return "", fmt.Errorf("invalid placeholder name %q", name)
		}

		replacement, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(replacement)

		template = template[end:]
	}

	return out.String(), nil
}

// validName reports whether s is a usable placeholder name: a letter followed
// by letters, digits, or underscores.
func validName(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 || !unicode.IsLetter(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
