// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package eps

import (
	"docverify/internal/extract"
	"docverify/internal/help"
)

// GetDocumentInfo describes the EPS checks.
func (v *Validator) GetDocumentInfo() help.DocumentInfo {
	return help.DocumentInfo{
		Name:             DocumentType,
		ShortDescription: "Health insurance (EPS) affiliation certificate",
		DetailedDescription: `Looks for the affiliate's name after the salutation ("señor", "sra"),
the ID number with one misread digit tolerated, the issue date and the
affiliation status line.`,
		Strategies: []help.FieldStrategy{
			{Field: "name", Steps: []string{
				"anchor: words after the salutation, up to a stop word",
				"windows: best 2-5 word window above window_threshold or containing every word",
				"subset: every expected word appears in the text",
			}},
			{Field: "idNumber", Steps: []string{
				"exact digits",
				"same length with at most id_max_digit_errors different digits",
			}},
		},
		Thresholds: []help.Threshold{
			{Name: "anchor_threshold", Value: v.cfg.AnchorThreshold},
			{Name: "window_threshold", Value: v.cfg.WindowThreshold},
			{Name: "id_max_digit_errors", Value: v.cfg.IDMaxDigitErrors},
			{Name: "max_age_days", Value: v.cfg.MaxAgeDays},
		},
		Keywords: extract.FlagNames(v.cfg.Keywords),
		Examples: []string{
			`docverify --type eps --file eps.pdf --name "Juan Pérez" --id 1023456789`,
		},
	}
}
