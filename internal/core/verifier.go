// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docverify/internal/config"
	"docverify/internal/detector"
	"docverify/internal/help"
	"docverify/internal/observability"
)

// Verifier dispatches documents to their validator. It is shared by the
// CLI and the web server and is safe for concurrent use.
type Verifier struct {
	validators map[string]detector.Validator
	observer   *observability.StandardObserver
}

// Request is one document to verify.
type Request struct {
	// Key identifies the document in batch results; it defaults to Type.
	Key      string
	Type     string
	Path     string
	Expected detector.Expected
}

// Result pairs a request key with its report.
type Result struct {
	Key    string
	Report *detector.Report
}

// New builds a verifier with the validators configured by cfg.
func New(cfg *config.Config, recognizer detector.Recognizer, observer *observability.StandardObserver) (*Verifier, error) {
	set, err := BuildValidatorSet(cfg, recognizer, observer)
	if err != nil {
		return nil, err
	}
	return &Verifier{validators: set, observer: observer}, nil
}

// ParseType resolves a document type name or alias.
func ParseType(name string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[t]; ok {
		return canonical, nil
	}
	for _, known := range documentTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown document type %q (supported: %s)", name, strings.Join(documentTypes, ", "))
}

// Types lists the supported document types.
func (v *Verifier) Types() []string {
	out := make([]string, len(documentTypes))
	copy(out, documentTypes)
	return out
}

// Verify validates the document at path as docType. Only an unknown type
// is an error; every document problem is reported inside the report.
func (v *Verifier) Verify(ctx context.Context, docType, path string, expected detector.Expected) (*detector.Report, error) {
	t, err := ParseType(docType)
	if err != nil {
		return nil, err
	}
	if observability.RequestIDFrom(ctx) == "" {
		ctx = observability.ContextWithRequestID(ctx, observability.NewRequestID())
	}
	return v.validators[t].Validate(ctx, path, expected), nil
}

// VerifyAll validates requests one after the other. Once ctx is done the
// remaining documents get degraded reports.
func (v *Verifier) VerifyAll(ctx context.Context, requests []Request) ([]Result, error) {
	if observability.RequestIDFrom(ctx) == "" {
		ctx = observability.ContextWithRequestID(ctx, observability.NewRequestID())
	}
	obs := v.observer.WithRequest(observability.RequestIDFrom(ctx))
	finish := obs.StartTiming("core", "verify_all", "")

	results := make([]Result, 0, len(requests))
	found := 0
	for _, r := range requests {
		key := r.Key
		if key == "" {
			key = r.Type
		}
		report, err := v.Verify(ctx, r.Type, r.Path, r.Expected)
		if err != nil {
			finish(false, map[string]interface{}{"error": err.Error()})
			return nil, err
		}
		if report.Verdict() {
			found++
		}
		results = append(results, Result{Key: key, Report: report})
	}

	finish(true, map[string]interface{}{
		"documents": len(requests),
		"verified":  found,
	})
	return results, nil
}

// Providers returns the help providers of every validator in type order.
func (v *Verifier) Providers() []help.Provider {
	var out []help.Provider
	for _, t := range documentTypes {
		if p, ok := v.validators[t].(help.Provider); ok {
			out = append(out, p)
		}
	}
	return out
}

// SetClock replaces the clock of every validator.
func (v *Verifier) SetClock(now func() time.Time) {
	for _, val := range v.validators {
		if c, ok := val.(interface{ SetClock(func() time.Time) }); ok {
			c.SetClock(now)
		}
	}
}
