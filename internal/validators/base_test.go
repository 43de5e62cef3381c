// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/detector"
	"docverify/internal/failure"
	"docverify/internal/observability"
)

type fakeRecognizer struct {
	texts  map[string]string
	errs   map[string]error
	called []string
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ string, lang string) (detector.Recognition, error) {
	f.called = append(f.called, lang)
	if err := f.errs[lang]; err != nil {
		return detector.Recognition{}, err
	}
	return detector.Recognition{Text: f.texts[lang], Language: lang, Method: "image-ocr"}, nil
}

func fallbackCommon() Common {
	return Common{Languages: []string{"spa", "eng", "spa+eng"}, MinTextLength: 10}
}

func TestRecognizeKeepsPrimaryWhenLongEnough(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{"spa": "REPUBLICA DE COLOMBIA"}}
	b := NewBase("cedula", fallbackCommon(), rec)

	got, err := b.Recognize(context.Background(), "doc.png")
	require.NoError(t, err)
	assert.Equal(t, "spa", got.Language)
	assert.Equal(t, []string{"spa"}, rec.called)
}

func TestRecognizeFallsBackAndStops(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{"spa": "ab", "eng": "REPUBLIC OF COLOMBIA"}}
	b := NewBase("cedula", fallbackCommon(), rec)

	got, err := b.Recognize(context.Background(), "doc.png")
	require.NoError(t, err)
	assert.Equal(t, "eng", got.Language)
	assert.Equal(t, []string{"spa", "eng"}, rec.called)
}

func TestRecognizeKeepsLongestAndIgnoresFallbackErrors(t *testing.T) {
	rec := &fakeRecognizer{
		texts: map[string]string{"spa": "ab", "eng": "abcd"},
		errs:  map[string]error{"spa+eng": errors.New("exit status 1")},
	}
	b := NewBase("cedula", fallbackCommon(), rec)

	got, err := b.Recognize(context.Background(), "doc.png")
	require.NoError(t, err)
	assert.Equal(t, "abcd", got.Text)
	assert.Equal(t, []string{"spa", "eng", "spa+eng"}, rec.called)
}

func TestRunDegradesOnRecognitionFailure(t *testing.T) {
	rec := &fakeRecognizer{errs: map[string]error{"spa": &exec.Error{Name: "tesseract", Err: exec.ErrNotFound}}}
	b := NewBase("eps", DefaultCommon(), rec)

	var buf bytes.Buffer
	b.SetObserver(observability.NewStandardObserver(observability.ObservabilityDebug, &buf))

	called := false
	report := b.Run(context.Background(), "eps.png", detector.Expected{Name: "Juan", IDNumber: "1"},
		func(detector.Recognition, detector.Expected) *detector.Report {
			called = true
			return nil
		})

	assert.False(t, called)
	require.True(t, report.Failed())
	assert.Equal(t, string(failure.KindInfrastructure), *report.ErrorKind)
	assert.False(t, report.NameFound)
	assert.Empty(t, report.Text)
	assert.NoError(t, detector.CheckShape(report))
	assert.Contains(t, buf.String(), `"success":false`)
}

func TestRunWithoutRecognizer(t *testing.T) {
	b := NewBase("arl", DefaultCommon(), nil)
	report := b.Run(context.Background(), "arl.png", detector.Expected{},
		func(detector.Recognition, detector.Expected) *detector.Report { return nil })
	require.True(t, report.Failed())
	assert.Equal(t, string(failure.KindConfiguration), *report.ErrorKind)
}

func TestApplyDate(t *testing.T) {
	b := NewBase("eps", DefaultCommon(), nil)

	tests := []struct {
		name  string
		today time.Time
		valid bool
		days  int
	}{
		{"within window", time.Date(2024, 5, 20, 10, 0, 0, 0, time.Local), true, 15},
		{"too old", time.Date(2024, 7, 1, 10, 0, 0, 0, time.Local), false, 57},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.SetClock(func() time.Time { return tt.today })
			report, doc := b.Begin(detector.Recognition{Text: "Expedido en Bogotá el 05/05/2024"})
			b.ApplyDate(report, doc)

			require.NotNil(t, report.DetectedDate)
			assert.Equal(t, "05/05/2024", *report.DetectedDate)
			require.NotNil(t, report.DaysSinceIssue)
			assert.Equal(t, tt.days, *report.DaysSinceIssue)
			assert.Equal(t, tt.valid, report.DateValid)
		})
	}
}

func TestApplyDateTwoDigitYear(t *testing.T) {
	b := NewBase("eps", DefaultCommon(), nil)
	b.SetClock(func() time.Time { return time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC) })

	report, doc := b.Begin(detector.Recognition{Text: "fecha 05/05/24"})
	b.ApplyDate(report, doc)
	require.NotNil(t, report.DetectedDate)
	assert.Equal(t, "05/05/2024", *report.DetectedDate)
	assert.True(t, report.DateValid)
}

func TestApplyDateMisreadYear(t *testing.T) {
	b := NewBase("eps", DefaultCommon(), nil)
	b.SetClock(func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) })

	report, doc := b.Begin(detector.Recognition{Text: "expedida 01/01/0202"})
	b.ApplyDate(report, doc)
	assert.Nil(t, report.DetectedDate)
	assert.Nil(t, report.DaysSinceIssue)
	assert.False(t, report.DateValid)
	assert.Equal(t, string(failure.KindParse), report.Debug["dateError"])

	report, doc = b.Begin(detector.Recognition{Text: "sin fecha"})
	b.ApplyDate(report, doc)
	assert.NotContains(t, report.Debug, "dateError")
}

func TestSkipRecordsConfigurationKind(t *testing.T) {
	b := NewBase("eps", DefaultCommon(), nil)
	report, _ := b.Begin(detector.Recognition{Text: "NUEVA EPS"})

	b.Skip(report, "idNumber")
	b.Skip(report, "name")
	assert.Equal(t, []string{"idNumber", "name"}, report.Debug["skippedChecks"])
	assert.Equal(t, string(failure.KindConfiguration), report.Debug["skipKind"])
}

func TestBeginFlagsEmptyText(t *testing.T) {
	b := NewBase("arl", DefaultCommon(), nil)

	report, _ := b.Begin(detector.Recognition{Text: " \n "})
	assert.Equal(t, true, report.Debug["emptyText"])

	report, _ = b.Begin(detector.Recognition{Text: "CERTIFICADO"})
	assert.NotContains(t, report.Debug, "emptyText")
}

func TestApplyDateDisabled(t *testing.T) {
	common := DefaultCommon()
	common.CheckDate = false
	b := NewBase("cedula", common, nil)

	report, doc := b.Begin(detector.Recognition{Text: "05/05/2024"})
	b.ApplyDate(report, doc)
	assert.Nil(t, report.DetectedDate)
	assert.Nil(t, report.DaysSinceIssue)
	assert.False(t, report.DateValid)
}

func TestCommonValidate(t *testing.T) {
	assert.NoError(t, DefaultCommon().Validate())
	assert.Error(t, Common{}.Validate())
	assert.Error(t, Common{Languages: []string{"spa"}, MaxAgeDays: -1}.Validate())
	assert.Error(t, CheckThreshold("x", 1.5))
	assert.Error(t, CheckWindow("x", 3, 2))
}

func TestDocumentProjections(t *testing.T) {
	doc := NewDocument("Señor JUAN Pérez, C.C. 1.023.456")
	assert.Equal(t, "Señor JUAN Pérez, C.C. 1.023.456", doc.Raw)
	assert.Equal(t, "senor juan perez, c.c. 1.023.456", doc.Plain)
	assert.Equal(t, "senor juan perez c c 1 023 456", doc.Normalized)
	assert.Equal(t, []string{"senor", "juan", "perez", "c", "c", "1", "023", "456"}, doc.Tokens)
	assert.True(t, NewDocument("  ").Empty())
}
