// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package validators holds the matching engine shared by every document
// validator: recognition with language fallback, ordered match strategies
// and the issue date check.
package validators

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"docverify/internal/detector"
	"docverify/internal/extract"
	"docverify/internal/failure"
	"docverify/internal/observability"
)

// ContentFunc checks recognized text against the expected values.
type ContentFunc func(rec detector.Recognition, expected detector.Expected) *detector.Report

// Base carries what every document validator needs. It holds no per-call
// state and can be shared between goroutines once configured.
type Base struct {
	docType    string
	common     Common
	recognizer detector.Recognizer
	observer   *observability.StandardObserver
	now        func() time.Time
}

// NewBase creates the shared part of a validator for docType.
func NewBase(docType string, common Common, recognizer detector.Recognizer) Base {
	return Base{
		docType:    docType,
		common:     common,
		recognizer: recognizer,
		now:        time.Now,
	}
}

// Name returns the document type.
func (b *Base) Name() string {
	return b.docType
}

// SetObserver sets the observability component
func (b *Base) SetObserver(observer *observability.StandardObserver) {
	b.observer = observer
}

// SetClock replaces the clock used for the recency check.
func (b *Base) SetClock(now func() time.Time) {
	if now != nil {
		b.now = now
	}
}

// Now returns the current time according to the validator clock.
func (b *Base) Now() time.Time {
	return b.now()
}

// Observer returns the observer bound to the request carried by ctx.
func (b *Base) Observer(ctx context.Context) *observability.StandardObserver {
	return b.observer.WithRequest(observability.RequestIDFrom(ctx))
}

// Recognize runs recognition with the first language and falls back to the
// next ones while the text stays shorter than the configured minimum. The
// longest text wins. Only a failure of the first language is returned.
func (b *Base) Recognize(ctx context.Context, path string) (detector.Recognition, error) {
	if b.recognizer == nil {
		return detector.Recognition{}, failure.New(failure.KindConfiguration, "no recognizer configured", nil)
	}

	languages := b.common.Languages
	if len(languages) == 0 {
		languages = []string{"spa"}
	}

	obs := b.Observer(ctx)
	debug := obs.Debug()

	best, err := b.recognizer.Recognize(ctx, path, languages[0])
	if err != nil {
		obs.LogError(b.docType, "recognize", path, err)
		return detector.Recognition{}, err
	}
	debug.LogMetric(b.docType, "text_length["+languages[0]+"]", textLength(best.Text))

	for _, lang := range languages[1:] {
		if textLength(best.Text) >= b.common.MinTextLength {
			break
		}
		rec, err := b.recognizer.Recognize(ctx, path, lang)
		if err != nil {
			obs.LogError(b.docType, "recognize:"+lang, path, err)
			continue
		}
		debug.LogMetric(b.docType, "text_length["+lang+"]", textLength(rec.Text))
		if textLength(rec.Text) > textLength(best.Text) {
			best = rec
		}
	}
	return best, nil
}

// Run recognizes the document at path and hands the text to check. A
// recognition failure becomes a degraded report.
func (b *Base) Run(ctx context.Context, path string, expected detector.Expected, check ContentFunc) *detector.Report {
	obs := b.Observer(ctx)
	finish := obs.StartTiming(b.docType, "validate", path)
	done := obs.Debug().StartStep(b.docType, "validate", path)

	rec, err := b.Recognize(ctx, path)
	if err != nil {
		report := b.Degraded(err)
		done(false, err.Error())
		finish(false, map[string]interface{}{"error": err.Error()})
		return report
	}

	report := check(rec, expected)
	done(!report.Failed(), fmt.Sprintf("name=%t id=%t", report.NameFound, report.IDFound))
	finish(!report.Failed(), map[string]interface{}{
		"name_found":  report.NameFound,
		"id_found":    report.IDFound,
		"date_valid":  report.DateValid,
		"text_length": len(report.Text),
		"language":    report.Language,
	})
	return report
}

// Degraded returns a report with every check negative and the error set.
func (b *Base) Degraded(err error) *detector.Report {
	report := detector.NewReport(b.docType)
	report.SetError(err)
	return report
}

// Begin creates the report for rec and the document projections.
func (b *Base) Begin(rec detector.Recognition) (*detector.Report, *Document) {
	doc := NewDocument(rec.Text)
	report := detector.NewReport(b.docType)
	report.Text = rec.Text
	report.NormalizedText = doc.Normalized
	report.Language = rec.Language
	report.RecognitionMethod = rec.Method
	report.Debug["textLength"] = textLength(rec.Text)
	if rec.Pages > 0 {
		report.Debug["pages"] = rec.Pages
	}
	if len(rec.Metadata) > 0 {
		report.Debug["metadata"] = rec.Metadata
	}
	if doc.Empty() {
		report.Debug["emptyText"] = true
	}
	return report, doc
}

// Skip notes a check that could not run because its expected value is
// missing.
func (b *Base) Skip(report *detector.Report, field string) {
	skipped, _ := report.Debug["skippedChecks"].([]string)
	report.Debug["skippedChecks"] = append(skipped, field)
	report.Debug["skipKind"] = string(failure.KindOf(failure.ErrEmptyExpected))
}

// ApplyDate finds the issue date and checks it against the recency window.
// It does nothing when the document type has no date check.
func (b *Base) ApplyDate(report *detector.Report, doc *Document) {
	if !b.common.CheckDate {
		return
	}
	d, ok := extract.FindDate(doc.Raw)
	if !ok {
		// A date was printed but none of the candidates is a usable date
		if extract.HasDateCandidate(doc.Raw) {
			report.Debug["dateError"] = string(failure.KindParse)
		}
		return
	}
	days, valid := extract.Recent(d, b.now(), b.common.MaxAgeDays)
	report.SetDate(d.String(), days, valid)
	report.Debug["dateSource"] = d.Source
}

// Blank reports whether s has no content.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func textLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
