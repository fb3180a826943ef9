// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"path/filepath"
	"runtime"
)

// OriginError annotates an error with the source location it was raised at.
// The dispatcher reports this location in the 500 envelope instead of the
// handler's declaration.
type OriginError struct {
	Err  error
	File string
	Line int
}

func (e *OriginError) Error() string {
	return e.Err.Error()
}

func (e *OriginError) Unwrap() error {
	return e.Err
}

// WithOrigin annotates err with the location of the function calling
// WithOrigin, skipping skip further frames. A nil err stays nil and an
// already annotated err keeps its first origin.
func WithOrigin(err error, skip int) error {
	if err == nil {
		return nil
	}

	var origin *OriginError
	if errors.As(err, &origin) {
		return err
	}

	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return err
	}
	return &OriginError{Err: err, File: filepath.Base(file), Line: line}
}
