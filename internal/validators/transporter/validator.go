// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package transporter validates the transporter creation sheet, the form
// that links a carrier company to the driver being onboarded.
package transporter

import (
	"context"
	"fmt"

	"docverify/internal/detector"
	"docverify/internal/extract"
	"docverify/internal/validators"
)

// DocumentType is the report type of this validator.
const DocumentType = "formato"

// Config tunes the sheet checks.
type Config struct {
	validators.Common `yaml:",inline"`

	// Name windows span the expected word count plus up to NameSlack words.
	NameSlack     int     `yaml:"name_slack"`
	NameThreshold float64 `yaml:"name_threshold"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	common := validators.DefaultCommon()
	common.CheckDate = false
	return Config{
		Common:        common,
		NameSlack:     2,
		NameThreshold: 0.65,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if c.NameSlack < 0 {
		return fmt.Errorf("transporter name_slack must not be negative, got %d", c.NameSlack)
	}
	return validators.CheckThreshold("transporter name_threshold", c.NameThreshold)
}

// Validator checks transporter creation sheets.
type Validator struct {
	validators.Base
	cfg Config
}

// NewValidator creates a sheet validator.
func NewValidator(cfg Config, recognizer detector.Recognizer) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		Base: validators.NewBase(DocumentType, cfg.Common, recognizer),
		cfg:  cfg,
	}, nil
}

// Validate recognizes the sheet at path and checks it.
func (v *Validator) Validate(ctx context.Context, path string, expected detector.Expected) *detector.Report {
	return v.Run(ctx, path, expected, v.ValidateContent)
}

// ValidateContent checks recognized text. The driver's name and ID fill
// the name and ID fields; the carrier's code and legal name fill the
// transporter fields.
func (v *Validator) ValidateContent(rec detector.Recognition, expected detector.Expected) *detector.Report {
	report, doc := v.Begin(rec)

	code := extract.Digits(expected.TransporterCode)
	if code == "" {
		v.Skip(report, "transporterCode")
	}
	codes := extract.ProximityNumbers(doc.Raw)
	report.Debug["codeCandidates"] = extract.Unique(codes)
	codeMatch := validators.FirstMatch(code, validators.ProximityIn(codes))
	report.TransporterCodeFound = codeMatch.Found
	report.Debug["transporterCodeMatch"] = codeMatch

	company := validators.Normalized(expected.TransporterName)
	if company == "" {
		v.Skip(report, "transporterName")
	}
	companyMatch := validators.FirstMatch(company,
		validators.InclusiveWindowMatch(doc.Tokens, v.cfg.NameSlack, v.cfg.NameThreshold),
	)
	report.TransporterNameFound = companyMatch.Found
	report.TransporterNameSimilarity = companyMatch.Similarity
	report.Debug["transporterNameMatch"] = companyMatch

	ids := extract.SeparatedNumbers(doc.Raw)
	report.IDCandidates = extract.Unique(ids)
	id := extract.Digits(expected.IDNumber)
	if id == "" {
		v.Skip(report, "idNumber")
	}
	report.SetID(validators.FirstMatch(id, validators.ExactIn(ids)))

	driver := validators.Normalized(expected.Name)
	if driver == "" {
		v.Skip(report, "name")
	}
	report.SetName(validators.FirstMatch(driver,
		validators.InclusiveWindowMatch(doc.Tokens, v.cfg.NameSlack, v.cfg.NameThreshold),
	))

	v.ApplyDate(report, doc)
	return report
}
