// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package arl validates occupational risk insurance (ARL) certificates.
package arl

import (
	"context"
	"fmt"

	"docverify/internal/detector"
	"docverify/internal/extract"
	"docverify/internal/validators"
)

// DocumentType is the report type of this validator.
const DocumentType = "arl"

// Config tunes the ARL checks.
type Config struct {
	validators.Common `yaml:",inline"`

	WindowThreshold float64 `yaml:"window_threshold"`
	WindowMin       int     `yaml:"window_min"`
	WindowMax       int     `yaml:"window_max"`

	// RiskCompliantMin is the lowest risk class accepted for transport work.
	RiskCompliantMin int     `yaml:"risk_compliant_min"`
	RiskConfidence   float64 `yaml:"risk_confidence"`

	Keywords []extract.Keyword `yaml:"keywords"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		Common:           validators.DefaultCommon(),
		WindowThreshold:  0.55,
		WindowMin:        2,
		WindowMax:        5,
		RiskCompliantMin: 4,
		RiskConfidence:   0.8,
		Keywords:         extract.Simple("afiliado", "vinculado", "habilitado", "activo", "vigente", "registra"),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if err := validators.CheckThreshold("arl window_threshold", c.WindowThreshold); err != nil {
		return err
	}
	if err := validators.CheckThreshold("arl risk_confidence", c.RiskConfidence); err != nil {
		return err
	}
	if c.RiskCompliantMin < 1 || c.RiskCompliantMin > 5 {
		return fmt.Errorf("arl risk_compliant_min must be between 1 and 5, got %d", c.RiskCompliantMin)
	}
	return validators.CheckWindow("arl", c.WindowMin, c.WindowMax)
}

// Validator checks ARL certificates.
type Validator struct {
	validators.Base
	cfg Config
}

// NewValidator creates an ARL validator.
func NewValidator(cfg Config, recognizer detector.Recognizer) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		Base: validators.NewBase(DocumentType, cfg.Common, recognizer),
		cfg:  cfg,
	}, nil
}

// Validate recognizes the certificate at path and checks it.
func (v *Validator) Validate(ctx context.Context, path string, expected detector.Expected) *detector.Report {
	return v.Run(ctx, path, expected, v.ValidateContent)
}

// ValidateContent checks recognized text.
func (v *Validator) ValidateContent(rec detector.Recognition, expected detector.Expected) *detector.Report {
	report, doc := v.Begin(rec)

	name := validators.Normalized(expected.Name)
	if name == "" {
		v.Skip(report, "name")
	}
	report.SetName(validators.FirstMatch(name,
		validators.WindowMatch(doc.Tokens, v.cfg.WindowMin, v.cfg.WindowMax, v.cfg.WindowThreshold, false),
	))

	candidates := extract.IDNumbers(doc.Raw)
	report.IDCandidates = extract.Unique(candidates)
	expectedID := extract.Digits(expected.IDNumber)
	if expectedID == "" {
		v.Skip(report, "idNumber")
	}
	report.SetID(validators.FirstMatch(expectedID, validators.ExactIn(candidates)))

	v.ApplyDate(report, doc)

	if class, ok := extract.RiskClass(doc.Plain); ok {
		report.RiskClassFound = detector.IntPtr(class)
		report.RiskCompliant = class >= v.cfg.RiskCompliantMin
		report.RiskConfidence = v.cfg.RiskConfidence
	}
	report.KeywordFlags = extract.Flags(doc.Plain, v.cfg.Keywords)
	return report
}
