// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the shared CUE parsing flow used for descriptor
// validation: compile the embedded schema, compile the input (JSON is a
// subset of CUE, so descriptor files compile directly), unify, validate, and
// decode into a Go struct. Validation errors carry the file path and the CUE
// path of the offending value.
package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// maxInputBytes bounds the size of a single input document (1 MB). Descriptor
// files are a few KB; anything larger is a data-authoring mistake.
const maxInputBytes = 1 << 20

// Option configures a ParseAndDecode call.
type Option func(*options)

type options struct {
	filename string
}

// WithFilename sets the file name used in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// ParseAndDecode validates data against the definition at schemaPath inside
// schema and decodes the unified value into T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if len(data) > maxInputBytes {
		return nil, fmt.Errorf("%s: input exceeds %d bytes", filename, maxInputBytes)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	dataValue := ctx.CompileBytes(data, cue.Filename(filename))
	if dataValue.Err() != nil {
		return nil, FormatError(dataValue.Err(), filename)
	}

	unified := schemaRoot.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &result, nil
}

// FormatError rewrites a CUE error as "<file>: <cue-path>: <message>" lines,
// one per underlying error.
func FormatError(err error, filename string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		path := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		if path != "" {
			lines = append(lines, fmt.Sprintf("%s: %s: %s", filename, path, msg))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", filename, msg))
		}
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
