// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"docverify/internal/detector"
	"docverify/internal/formatters"
	"docverify/internal/formatters/shared"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable verdict lines with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

type palette struct {
	ok, bad, warn, label, dim *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		ok:    color.New(color.FgGreen, color.Bold),
		bad:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow),
		label: color.New(color.FgCyan),
		dim:   color.New(color.FgWhite),
	}
	if noColor {
		for _, c := range []*color.Color{p.ok, p.bad, p.warn, p.label, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

func (f *Formatter) Format(reports []*detector.Report, options formatters.FormatterOptions) (string, error) {
	if len(reports) == 0 {
		return "No documents processed.", nil
	}

	p := newPalette(options.NoColor)
	var sb strings.Builder

	for i, r := range reports {
		if i > 0 {
			sb.WriteString("\n")
		}
		f.writeReport(&sb, r, p, options.Verbose)
	}

	s := shared.Summarize(reports)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d document(s): %s verified, %s not verified",
		s.Documents,
		p.ok.Sprint(s.Verified),
		p.bad.Sprint(s.Documents-s.Verified)))
	if s.Failed > 0 {
		sb.WriteString(fmt.Sprintf(", %s failed", p.warn.Sprint(s.Failed)))
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

func (f *Formatter) writeReport(sb *strings.Builder, r *detector.Report, p palette, verbose bool) {
	verdict := p.ok.Sprint("VERIFIED")
	if !r.Verdict() {
		verdict = p.bad.Sprint("NOT VERIFIED")
	}
	sb.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(r.DocumentType), verdict))

	if r.Failed() {
		kind := ""
		if r.ErrorKind != nil {
			kind = " (" + *r.ErrorKind + ")"
		}
		sb.WriteString(fmt.Sprintf("  %s %s%s\n", p.label.Sprint("error:"), p.warn.Sprint(*r.Error), kind))
		return
	}

	f.line(sb, p, "name", check(p, r.NameFound), fmt.Sprintf("similarity %.2f, %s", r.NameSimilarity, r.NameMatch.Method))
	f.line(sb, p, "id", check(p, r.IDFound), string(r.IDMatch.Method))

	if r.DocumentType == "formato" {
		f.line(sb, p, "code", check(p, r.TransporterCodeFound), "")
		f.line(sb, p, "company", check(p, r.TransporterNameFound), fmt.Sprintf("similarity %.2f", r.TransporterNameSimilarity))
	}
	if r.DetectedDate != nil {
		detail := *r.DetectedDate
		if r.DaysSinceIssue != nil {
			detail = fmt.Sprintf("%s, %d days", detail, *r.DaysSinceIssue)
		}
		f.line(sb, p, "date", check(p, r.DateValid), detail)
	}
	if r.RiskClassFound != nil {
		f.line(sb, p, "risk", check(p, r.RiskCompliant), fmt.Sprintf("class %d", *r.RiskClassFound))
	}
	if r.AffiliationStatus != nil {
		f.line(sb, p, "status", *r.AffiliationStatus, "")
	}
	if r.DocumentSubtype != nil {
		f.line(sb, p, "subtype", *r.DocumentSubtype, "")
	}
	if flags := shared.TrueFlags(r.KeywordFlags); len(flags) > 0 {
		f.line(sb, p, "keywords", strings.Join(flags, " "), "")
	}

	if verbose && r.Text != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", p.label.Sprint("text:")))
		for _, l := range strings.Split(strings.TrimSpace(r.Text), "\n") {
			sb.WriteString("    " + p.dim.Sprint(l) + "\n")
		}
	}
}

func (f *Formatter) line(sb *strings.Builder, p palette, label, value, detail string) {
	sb.WriteString(fmt.Sprintf("  %-9s %s", p.label.Sprint(label+":"), value))
	if detail != "" {
		sb.WriteString(" (" + detail + ")")
	}
	sb.WriteString("\n")
}

func check(p palette, ok bool) string {
	if ok {
		return p.ok.Sprint("yes")
	}
	return p.bad.Sprint("no")
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
