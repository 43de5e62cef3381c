// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"context"
	"time"
)

// Method names the strategy that produced a match decision.
type Method string

const (
	MethodNone      Method = "none"
	MethodExact     Method = "exact"
	MethodContained Method = "contained"
	MethodFuzzy     Method = "fuzzy"
	MethodPrefix    Method = "prefix"
	MethodProximity Method = "proximity"
)

// MatchDecision is the verdict for one field.
type MatchDecision struct {
	Found       bool    `json:"found" yaml:"found"`
	Similarity  float64 `json:"similarity" yaml:"similarity"`
	MatchedText *string `json:"matchedText" yaml:"matchedText"`
	Method      Method  `json:"method" yaml:"method"`
}

// NotFound is a negative decision carrying the best similarity seen.
func NotFound(similarity float64) MatchDecision {
	return MatchDecision{Similarity: similarity, Method: MethodNone}
}

// Matched is a positive decision.
func Matched(method Method, text string, similarity float64) MatchDecision {
	return MatchDecision{Found: true, Similarity: similarity, MatchedText: &text, Method: method}
}

// Expected holds the identity claimed by the applicant.
type Expected struct {
	Name            string `json:"name"`
	IDNumber        string `json:"idNumber"`
	TransporterCode string `json:"transporterCode,omitempty"`
	TransporterName string `json:"transporterName,omitempty"`
}

// Recognition is the text recognized from one document.
type Recognition struct {
	Text     string
	Language string
	// Method is "pdf-text", "pdf-ocr" or "image-ocr".
	Method   string
	Pages    int
	Metadata map[string]string
	Duration time.Duration
}

// Recognizer turns a document on disk into text using a language hint
// such as "spa" or "spa+eng".
type Recognizer interface {
	Recognize(ctx context.Context, path, language string) (Recognition, error)
}

// RecognizerFunc adapts a function to Recognizer.
type RecognizerFunc func(ctx context.Context, path, language string) (Recognition, error)

func (f RecognizerFunc) Recognize(ctx context.Context, path, language string) (Recognition, error) {
	return f(ctx, path, language)
}

// Validator checks one document type. Implementations never return a nil
// report and never panic on missing or garbled text.
type Validator interface {
	// Name returns the document type handled, e.g. "eps".
	Name() string

	// Validate recognizes the document at path and checks it against expected.
	Validate(ctx context.Context, path string, expected Expected) *Report

	// ValidateContent checks already recognized text.
	ValidateContent(rec Recognition, expected Expected) *Report
}
