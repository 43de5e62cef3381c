// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cedula

import (
	"docverify/internal/extract"
	"docverify/internal/help"
)

// GetDocumentInfo describes the cédula checks.
func (v *Validator) GetDocumentInfo() help.DocumentInfo {
	return help.DocumentInfo{
		Name:             DocumentType,
		ShortDescription: "Colombian national ID card (cédula de ciudadanía)",
		DetailedDescription: `Recognizes the card and looks for the holder's ID number and name.
Short recognition results are retried with the alternate languages and the
longest text is kept. Cards carry no issue date check.`,
		Strategies: []help.FieldStrategy{
			{Field: "idNumber", Steps: []string{
				"exact: a number on the card equals the expected digits",
				"contained: one contains the other",
				"fuzzy: similarity above id_fuzzy_threshold",
				"prefix: length within id_length_tolerance and same first id_prefix_length digits",
			}},
			{Field: "name", Steps: []string{
				"each expected word is looked up verbatim, by its first four letters, or fuzzily",
				"accepted when the found fraction exceeds name_coverage or name_min_words are found",
			}},
		},
		Thresholds: []help.Threshold{
			{Name: "languages", Value: v.cfg.Languages},
			{Name: "min_text_length", Value: v.cfg.MinTextLength},
			{Name: "min_id_length", Value: v.cfg.MinIDLength},
			{Name: "id_fuzzy_threshold", Value: v.cfg.IDFuzzyThreshold},
			{Name: "name_word_threshold", Value: v.cfg.NameWordThreshold},
			{Name: "name_coverage", Value: v.cfg.NameCoverage},
		},
		Keywords: extract.FlagNames(v.cfg.Keywords),
		Examples: []string{
			`docverify --type cedula --file cc.jpg --name "Juan Pérez" --id 1.023.456.789`,
		},
	}
}
