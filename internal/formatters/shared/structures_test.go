// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docverify/internal/detector"
	"docverify/internal/formatters"
)

func sampleReports() []*detector.Report {
	ok := detector.NewReport("cedula")
	ok.Text = "REPUBLICA DE COLOMBIA"
	ok.Debug["skippedChecks"] = []string{}
	ok.SetName(detector.Matched(detector.MethodExact, "juan perez", 1))
	ok.SetID(detector.Matched(detector.MethodExact, "1234567890", 1))

	bad := detector.NewReport("eps")
	bad.SetError(assert.AnError)
	return []*detector.Report{ok, bad}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleReports())
	assert.Equal(t, Summary{Documents: 2, Verified: 1, Failed: 1}, s)
}

func TestNewResponseHidesTextUnlessVerbose(t *testing.T) {
	reports := sampleReports()

	quiet := NewResponse(reports, formatters.FormatterOptions{})
	assert.Empty(t, quiet.Reports[0].Text)
	assert.Empty(t, quiet.Reports[0].Debug)
	assert.Equal(t, "REPUBLICA DE COLOMBIA", reports[0].Text, "input must not be modified")

	verbose := NewResponse(reports, formatters.FormatterOptions{Verbose: true})
	assert.Equal(t, "REPUBLICA DE COLOMBIA", verbose.Reports[0].Text)
	assert.Contains(t, verbose.Reports[0].Debug, "skippedChecks")
}

func TestColumns(t *testing.T) {
	without := ColumnNames(Columns(false))
	with := ColumnNames(Columns(true))

	assert.NotContains(t, without, "text")
	assert.Equal(t, "text", with[len(with)-1])
	assert.Equal(t, len(without)+1, len(with))
	for _, key := range detector.Keys {
		if key == "text" {
			continue
		}
		assert.Contains(t, without, key)
	}
}

func TestColumnValues(t *testing.T) {
	r := detector.NewReport("arl")
	r.NameSimilarity = 0.876543
	r.KeywordFlags = map[string]bool{"vigente": true, "activo": true, "afiliado": false}
	r.SetDate("01/06/2024", 9, true)

	values := map[string]interface{}{}
	for _, c := range Columns(false) {
		values[c.Name] = c.Value(r)
	}
	assert.Equal(t, 0.8765, values["nameSimilarity"])
	assert.Equal(t, "activo vigente", values["keywordFlags"])
	assert.Equal(t, "01/06/2024", values["detectedDate"])
	assert.Equal(t, 9, values["daysSinceIssue"])
	assert.Nil(t, values["riskClassFound"])
	assert.Nil(t, values["error"])
	assert.Equal(t, false, values["verdict"])
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", CellString(nil))
	assert.Equal(t, "true", CellString(true))
	assert.Equal(t, "42", CellString(42))
	assert.Equal(t, "0.5", CellString(0.5))
	assert.Equal(t, "x", CellString("x"))
}
