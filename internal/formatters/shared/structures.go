// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"docverify/internal/detector"
	"docverify/internal/formatters"
)

// Response is the top-level structure for JSON/YAML output
type Response struct {
	Summary Summary            `json:"summary" yaml:"summary"`
	Reports []*detector.Report `json:"reports" yaml:"reports"`
}

// Summary counts the outcome of a batch
type Summary struct {
	Documents int `json:"documents" yaml:"documents"`
	Verified  int `json:"verified" yaml:"verified"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Column is one field of the tabular outputs
type Column struct {
	Name  string
	Value func(r *detector.Report) interface{}
}

// Summarize counts verified and failed reports
func Summarize(reports []*detector.Report) Summary {
	s := Summary{Documents: len(reports)}
	for _, r := range reports {
		if r.Verdict() {
			s.Verified++
		}
		if r.Failed() {
			s.Failed++
		}
	}
	return s
}

// NewResponse builds the JSON/YAML response. Without Verbose the recognized
// text and debug details are emptied but the keys stay.
func NewResponse(reports []*detector.Report, options formatters.FormatterOptions) Response {
	out := make([]*detector.Report, len(reports))
	for i, r := range reports {
		if options.Verbose {
			out[i] = r
			continue
		}
		c := *r
		c.Text = ""
		c.NormalizedText = ""
		c.Debug = map[string]interface{}{}
		out[i] = &c
	}
	return Response{Summary: Summarize(reports), Reports: out}
}

// Columns returns the tabular columns; the recognized text is last and only
// present when includeText is set.
func Columns(includeText bool) []Column {
	cols := []Column{
		{"documentType", func(r *detector.Report) interface{} { return r.DocumentType }},
		{"verdict", func(r *detector.Report) interface{} { return r.Verdict() }},
		{"nameFound", func(r *detector.Report) interface{} { return r.NameFound }},
		{"nameSimilarity", func(r *detector.Report) interface{} { return round(r.NameSimilarity) }},
		{"idFound", func(r *detector.Report) interface{} { return r.IDFound }},
		{"detectedDate", func(r *detector.Report) interface{} { return strPtr(r.DetectedDate) }},
		{"dateValid", func(r *detector.Report) interface{} { return r.DateValid }},
		{"daysSinceIssue", func(r *detector.Report) interface{} { return intPtr(r.DaysSinceIssue) }},
		{"riskClassFound", func(r *detector.Report) interface{} { return intPtr(r.RiskClassFound) }},
		{"riskCompliant", func(r *detector.Report) interface{} { return r.RiskCompliant }},
		{"affiliationStatus", func(r *detector.Report) interface{} { return strPtr(r.AffiliationStatus) }},
		{"keywordFlags", func(r *detector.Report) interface{} { return strings.Join(TrueFlags(r.KeywordFlags), " ") }},
		{"documentSubtype", func(r *detector.Report) interface{} { return strPtr(r.DocumentSubtype) }},
		{"transporterCodeFound", func(r *detector.Report) interface{} { return r.TransporterCodeFound }},
		{"transporterNameFound", func(r *detector.Report) interface{} { return r.TransporterNameFound }},
		{"transporterNameSimilarity", func(r *detector.Report) interface{} { return round(r.TransporterNameSimilarity) }},
		{"error", func(r *detector.Report) interface{} { return strPtr(r.Error) }},
	}
	if includeText {
		cols = append(cols, Column{"text", func(r *detector.Report) interface{} { return r.Text }})
	}
	return cols
}

// ColumnNames returns the header row
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// CellString renders a cell value for text outputs
func CellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// TrueFlags returns the names of the set flags, sorted
func TrueFlags(flags map[string]bool) []string {
	var out []string
	for k, v := range flags {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func round(f float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 4, 64), 64)
	return v
}

func strPtr(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func intPtr(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}
