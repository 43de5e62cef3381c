// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package eps validates health insurance (EPS) affiliation certificates.
package eps

import (
	"context"
	"fmt"
	"regexp"

	"docverify/internal/detector"
	"docverify/internal/extract"
	"docverify/internal/validators"
)

// DocumentType is the report type of this validator.
const DocumentType = "eps"

// Config tunes the EPS checks.
type Config struct {
	validators.Common `yaml:",inline"`

	// AnchorPattern marks where the holder name starts, matched against
	// fully normalized text.
	AnchorPattern   string   `yaml:"anchor_pattern"`
	StopWords       []string `yaml:"stop_words"`
	SkipWords       []string `yaml:"skip_words"`
	MaxNameTokens   int      `yaml:"max_name_tokens"`
	AnchorThreshold float64  `yaml:"anchor_threshold"`

	WindowThreshold float64 `yaml:"window_threshold"`
	WindowMin       int     `yaml:"window_min"`
	WindowMax       int     `yaml:"window_max"`

	// IDMaxDigitErrors is how many misread digits an ID may have.
	IDMaxDigitErrors int `yaml:"id_max_digit_errors"`

	Keywords []extract.Keyword `yaml:"keywords"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		Common:        validators.DefaultCommon(),
		AnchorPattern: `\b(?:senor|senora|senor a|sr|sra)\b`,
		StopWords: []string{
			"identificado", "identificada", "identificad", "identificacion",
			"con", "cc", "cedula", "numero", "c", "documento",
		},
		SkipWords:        []string{"el", "la", "del", "de", "los", "las", "y", "en", "por", "a", "al"},
		MaxNameTokens:    5,
		AnchorThreshold:  0.5,
		WindowThreshold:  0.55,
		WindowMin:        2,
		WindowMax:        5,
		IDMaxDigitErrors: 1,
		Keywords:         extract.Simple("afiliado", "activo", "vinculado", "habilitado", "vigente"),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if _, err := regexp.Compile(c.AnchorPattern); err != nil {
		return fmt.Errorf("eps anchor_pattern: %w", err)
	}
	if err := validators.CheckThreshold("eps anchor_threshold", c.AnchorThreshold); err != nil {
		return err
	}
	if err := validators.CheckThreshold("eps window_threshold", c.WindowThreshold); err != nil {
		return err
	}
	if c.IDMaxDigitErrors < 0 {
		return fmt.Errorf("eps id_max_digit_errors must not be negative")
	}
	return validators.CheckWindow("eps", c.WindowMin, c.WindowMax)
}

// Validator checks EPS affiliation certificates.
type Validator struct {
	validators.Base
	cfg    Config
	anchor extract.Anchor
}

// NewValidator creates an EPS validator.
func NewValidator(cfg Config, recognizer detector.Recognizer) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		Base: validators.NewBase(DocumentType, cfg.Common, recognizer),
		cfg:  cfg,
		anchor: extract.Anchor{
			Pattern:   regexp.MustCompile(cfg.AnchorPattern),
			StopWords: cfg.StopWords,
			SkipWords: cfg.SkipWords,
			MaxTokens: cfg.MaxNameTokens,
		},
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
	candidate := v.anchor.Find(doc.Normalized)
	report.Debug["anchorCandidate"] = candidate
	report.SetName(validators.FirstMatch(name,
		validators.AnchoredMatch(candidate, v.cfg.AnchorThreshold),
		validators.WindowMatch(doc.Tokens, v.cfg.WindowMin, v.cfg.WindowMax, v.cfg.WindowThreshold, true),
		validators.TokenSubset(doc.Normalized),
	))

	candidates := extract.IDNumbers(doc.Raw)
	report.IDCandidates = extract.Unique(candidates)
	expectedID := extract.Digits(expected.IDNumber)
	if expectedID == "" {
		v.Skip(report, "idNumber")
	}
	report.SetID(validators.FirstMatch(expectedID,
		validators.ExactIn(candidates),
		validators.DigitToleranceIn(candidates, v.cfg.IDMaxDigitErrors),
	))

	v.ApplyDate(report, doc)

	report.KeywordFlags = extract.Flags(doc.Plain, v.cfg.Keywords)
	if status, ok := extract.AffiliationStatus(doc.Plain); ok {
		report.AffiliationStatus = detector.StringPtr(status)
	}
	return report
}
