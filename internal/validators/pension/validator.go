// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pension validates pension fund affiliation certificates. One
// recognition pass decides whether the Protección rules or the generic
// rules apply.
package pension

import (
	"context"
	"strings"
	"time"

	"docverify/internal/detector"
	"docverify/internal/extract"
	"docverify/internal/observability"
	"docverify/internal/validators"
)

// Report types produced by this validator.
const (
	DocumentType           = "pension"
	ProteccionDocumentType = "proteccion"
)

// Flags that drive the Protección subtype.
const (
	FlagProteccion     = "proteccion"
	FlagFondoPensiones = "fondoPensiones"
	FlagObligatorias   = "obligatorias"
	FlagAfiliado       = "afiliado"
	FlagConstancia     = "constancia"
)

// Protección document subtypes.
const (
	SubtypeConstancia  = "constancia_afiliacion"
	SubtypeCertificado = "certificado_pensiones"
	SubtypeOther       = "documento_proteccion"
)

// Validator checks pension certificates.
type Validator struct {
	validators.Base
	proteccion validators.Base

	cfg     Config
	protCfg ProteccionConfig
}

// NewValidator creates a pension validator. Recognition always uses the
// generic settings.
func NewValidator(cfg Config, protCfg ProteccionConfig, recognizer detector.Recognizer) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := protCfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		Base:       validators.NewBase(DocumentType, cfg.Common, recognizer),
		proteccion: validators.NewBase(ProteccionDocumentType, protCfg.Common, recognizer),
		cfg:        cfg,
		protCfg:    protCfg,
	}, nil
}

// SetObserver sets the observability component
func (v *Validator) SetObserver(observer *observability.StandardObserver) {
	v.Base.SetObserver(observer)
	v.proteccion.SetObserver(observer)
}

// SetClock replaces the clock used for the recency check.
func (v *Validator) SetClock(now func() time.Time) {
	v.Base.SetClock(now)
	v.proteccion.SetClock(now)
}

// Validate recognizes the certificate at path and checks it.
func (v *Validator) Validate(ctx context.Context, path string, expected detector.Expected) *detector.Report {
	return v.Run(ctx, path, expected, v.ValidateContent)
}

// ValidateContent routes recognized text to the Protección or the generic
// rules.
func (v *Validator) ValidateContent(rec detector.Recognition, expected detector.Expected) *detector.Report {
	if v.IsProteccion(rec.Text) {
		return v.validateProteccion(rec, expected)
	}
	return v.validateGeneric(rec, expected)
}

// IsProteccion reports whether text carries one of the Protección markers.
func (v *Validator) IsProteccion(text string) bool {
	plain := validators.NewDocument(text).Plain
	for _, m := range v.protCfg.Markers {
		if strings.Contains(plain, m) {
			return true
		}
	}
	return false
}

func (v *Validator) validateGeneric(rec detector.Recognition, expected detector.Expected) *detector.Report {
	report, doc := v.Begin(rec)

	name := validators.Normalized(expected.Name)
	if name == "" {
		v.Skip(report, "name")
	}
	report.SetName(validators.FirstMatch(name,
		validators.WindowMatch(doc.Tokens, v.cfg.WindowMin, v.cfg.WindowMax, v.cfg.WindowThreshold, false),
	))

	candidates := extract.BareIDNumbers(doc.Raw)
	report.IDCandidates = extract.Unique(candidates)
	v.matchID(&v.Base, report, candidates, expected.IDNumber)

	v.ApplyDate(report, doc)
	return report
}

func (v *Validator) validateProteccion(rec detector.Recognition, expected detector.Expected) *detector.Report {
	b := &v.proteccion
	report, doc := b.Begin(rec)

	name := validators.Normalized(expected.Name)
	if name == "" {
		b.Skip(report, "name")
	}
	size := v.protCfg.WindowSize
	report.SetName(validators.FirstMatch(name,
		validators.WindowMatch(doc.Tokens, size, size, v.protCfg.WindowThreshold, false),
	))

	candidates := extract.Unique(extract.BareIDNumbers(doc.Raw))
	report.IDCandidates = candidates
	v.matchID(b, report, candidates, expected.IDNumber)

	b.ApplyDate(report, doc)

	flags := extract.Flags(doc.Plain, v.protCfg.Keywords)
	report.KeywordFlags = flags
	subtype := Subtype(flags)
	report.DocumentSubtype = detector.StringPtr(subtype)
	report.Debug["esProteccion"] = isProteccion(flags)
	return report
}

func (v *Validator) matchID(b *validators.Base, report *detector.Report, candidates []string, expectedID string) {
	id := extract.Digits(expectedID)
	if id == "" {
		b.Skip(report, "idNumber")
	}
	report.SetID(validators.FirstMatch(id, validators.ExactIn(candidates)))
}

// Subtype classifies a Protección document from its keyword flags.
func Subtype(flags map[string]bool) string {
	switch {
	case isProteccion(flags) && flags[FlagConstancia]:
		return SubtypeConstancia
	case isProteccion(flags) && flags[FlagAfiliado]:
		return SubtypeCertificado
	default:
		return SubtypeOther
	}
}

func isProteccion(flags map[string]bool) bool {
	return flags[FlagProteccion] || (flags[FlagFondoPensiones] && flags[FlagObligatorias])
}
