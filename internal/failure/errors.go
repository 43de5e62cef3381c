// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package failure classifies the errors that can end up in a validation
// report.
package failure

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// Kind is the category of a failure.
type Kind string

const (
	KindUnknown        Kind = "unknown"
	KindRecognition    Kind = "recognition"    // engine could not read the document
	KindParse          Kind = "parse"          // a candidate date or number did not parse
	KindConfiguration  Kind = "configuration"  // missing or invalid expected values or settings
	KindInfrastructure Kind = "infrastructure" // missing binary, unreadable file
	KindTimeout        Kind = "timeout"
)

// ErrEmptyExpected marks a check that was skipped because the caller did not
// supply the expected value.
var ErrEmptyExpected = errors.New("expected value is empty")

// ErrUnsupportedFormat is returned for files the recognizer cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ClassifiedError wraps an error with its Kind.
type ClassifiedError struct {
	Original error
	Kind     Kind
	Message  string
}

func (e *ClassifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Original != nil {
		return e.Original.Error()
	}
	return string(e.Kind)
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// New builds a classified error. msg may be empty.
func New(kind Kind, msg string, err error) *ClassifiedError {
	return &ClassifiedError{Original: err, Kind: kind, Message: msg}
}

// Recognition wraps err as a recognition failure.
func Recognition(err error, format string, args ...interface{}) *ClassifiedError {
	return &ClassifiedError{
		Original: err,
		Kind:     KindRecognition,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Classify categorizes err. Already classified errors are returned as is.
func Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return New(KindTimeout, fmt.Sprintf("recognition interrupted: %v", err), err)

	case errors.Is(err, exec.ErrNotFound):
		return New(KindInfrastructure, fmt.Sprintf("recognition engine not installed: %v", err), err)

	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission):
		return New(KindInfrastructure, fmt.Sprintf("document not readable: %v", err), err)

	case errors.Is(err, ErrUnsupportedFormat):
		return New(KindRecognition, err.Error(), err)

	case errors.Is(err, ErrEmptyExpected):
		return New(KindConfiguration, err.Error(), err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return New(KindRecognition, fmt.Sprintf("recognition engine failed: %v", err), err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "invalid") || strings.Contains(msg, "malformed") || strings.Contains(msg, "corrupt") {
		return New(KindRecognition, fmt.Sprintf("document could not be processed: %v", err), err)
	}

	return New(KindUnknown, err.Error(), err)
}

// KindOf returns the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	if c := Classify(err); c != nil {
		return c.Kind
	}
	return KindUnknown
}
