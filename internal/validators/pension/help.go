// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pension

import (
	"strings"

	"docverify/internal/extract"
	"docverify/internal/help"
)

// GetDocumentInfo describes the pension checks.
func (v *Validator) GetDocumentInfo() help.DocumentInfo {
	return help.DocumentInfo{
		Name:             DocumentType,
		ShortDescription: "Pension fund affiliation certificate (generic or Protección)",
		DetailedDescription: `The document is recognized once. When the text mentions ` + strings.Join(quoted(v.protCfg.Markers), " or ") + `
the Protección rules run and the report type is "proteccion"; otherwise the
generic rules run. Protección reports carry a documentSubtype:
constancia_afiliacion, certificado_pensiones or documento_proteccion.`,
		Strategies: []help.FieldStrategy{
			{Field: "name", Steps: []string{
				"generic: best 2-5 word window above window_threshold",
				"proteccion: best window of window_size words above window_threshold",
			}},
			{Field: "idNumber", Steps: []string{"exact match against 7-12 digit runs"}},
		},
		Thresholds: []help.Threshold{
			{Name: "window_threshold", Value: v.cfg.WindowThreshold},
			{Name: "proteccion.window_threshold", Value: v.protCfg.WindowThreshold},
			{Name: "proteccion.window_size", Value: v.protCfg.WindowSize},
			{Name: "max_age_days", Value: v.cfg.MaxAgeDays},
		},
		Keywords: extract.FlagNames(v.protCfg.Keywords),
		Examples: []string{
			`docverify --type pension --file pension.jpg --name "María López" --id 52345678`,
		},
	}
}

func quoted(values []string) []string {
	out := make([]string, len(values))
	for i, s := range values {
		out[i] = `"` + s + `"`
	}
	return out
}
