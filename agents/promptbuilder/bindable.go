/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable is implemented by request types that know how to bind their own
// fields into a prompt template. Executors call Bind before building the
// final prompt text.
type Bindable interface {
	Bind(prompt *Prompt) (*Prompt, error)
}
