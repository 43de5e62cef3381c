// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package arl

import (
	"docverify/internal/extract"
	"docverify/internal/help"
)

// GetDocumentInfo describes the ARL checks.
func (v *Validator) GetDocumentInfo() help.DocumentInfo {
	return help.DocumentInfo{
		Name:             DocumentType,
		ShortDescription: "Occupational risk insurance (ARL) certificate",
		DetailedDescription: `Checks the worker's name and ID number, the issue date and the risk
class printed after "clase de riesgo". Drivers need class 4 or higher.`,
		Strategies: []help.FieldStrategy{
			{Field: "name", Steps: []string{"windows: best 2-5 word window above window_threshold"}},
			{Field: "idNumber", Steps: []string{"exact digits"}},
			{Field: "riskClass", Steps: []string{"1-5 or I-V within a few words of \"clase ... riesgo\""}},
		},
		Thresholds: []help.Threshold{
			{Name: "window_threshold", Value: v.cfg.WindowThreshold},
			{Name: "risk_compliant_min", Value: v.cfg.RiskCompliantMin},
			{Name: "max_age_days", Value: v.cfg.MaxAgeDays},
		},
		Keywords: extract.FlagNames(v.cfg.Keywords),
		Examples: []string{
			`docverify --type arl --file arl.pdf --name "Juan Pérez" --id 1023456789`,
		},
	}
}
