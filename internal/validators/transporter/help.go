// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package transporter

import "docverify/internal/help"

// GetDocumentInfo describes the sheet checks.
func (v *Validator) GetDocumentInfo() help.DocumentInfo {
	return help.DocumentInfo{
		Name:             DocumentType,
		ShortDescription: "Transporter creation sheet",
		DetailedDescription: `Checks the carrier code, the carrier's legal name, the driver's ID number
and the driver's name. The sheet has no issue date.`,
		Strategies: []help.FieldStrategy{
			{Field: "transporterCode", Steps: []string{"5-10 digit run, alone or with up to five characters around it"}},
			{Field: "transporterName", Steps: []string{"best window of n..n+name_slack words scoring at least name_threshold"}},
			{Field: "idNumber", Steps: []string{"numbers written with ' . or - separators, exact digits"}},
			{Field: "name", Steps: []string{"same windows as the carrier name"}},
		},
		Thresholds: []help.Threshold{
			{Name: "name_threshold", Value: v.cfg.NameThreshold},
			{Name: "name_slack", Value: v.cfg.NameSlack},
		},
		Examples: []string{
			`docverify --type formato --file formato.png --code 45821 --company "Transportes El Cóndor SAS" --name "Carlos Ruiz" --id 1023456789`,
		},
	}
}
