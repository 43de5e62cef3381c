// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"

	"docverify/internal/config"
	"docverify/internal/detector"
	"docverify/internal/observability"
	"docverify/internal/validators/arl"
	"docverify/internal/validators/cedula"
	"docverify/internal/validators/eps"
	"docverify/internal/validators/pension"
	"docverify/internal/validators/transporter"
)

// Document types accepted by Verify, in the order the onboarding form
// lists them.
var documentTypes = []string{
	transporter.DocumentType,
	cedula.DocumentType,
	eps.DocumentType,
	arl.DocumentType,
	pension.DocumentType,
}

var aliases = map[string]string{
	"transporter": transporter.DocumentType,
	"documento":   cedula.DocumentType,
	"proteccion":  pension.DocumentType,
}

type observable interface {
	SetObserver(*observability.StandardObserver)
}

// BuildValidatorSet constructs one validator per document type from cfg.
// Every validator shares recognizer and observer.
func BuildValidatorSet(cfg *config.Config, recognizer detector.Recognizer, observer *observability.StandardObserver) (map[string]detector.Validator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	docs := cfg.Documents
	result := make(map[string]detector.Validator, len(documentTypes))

	ced, err := cedula.NewValidator(docs.Cedula, recognizer)
	if err != nil {
		return nil, fmt.Errorf("cedula: %w", err)
	}
	result[cedula.DocumentType] = ced

	epsV, err := eps.NewValidator(docs.EPS, recognizer)
	if err != nil {
		return nil, fmt.Errorf("eps: %w", err)
	}
	result[eps.DocumentType] = epsV

	arlV, err := arl.NewValidator(docs.ARL, recognizer)
	if err != nil {
		return nil, fmt.Errorf("arl: %w", err)
	}
	result[arl.DocumentType] = arlV

	pen, err := pension.NewValidator(docs.Pension, docs.Proteccion, recognizer)
	if err != nil {
		return nil, fmt.Errorf("pension: %w", err)
	}
	result[pension.DocumentType] = pen

	sheet, err := transporter.NewValidator(docs.Transporter, recognizer)
	if err != nil {
		return nil, fmt.Errorf("transporter: %w", err)
	}
	result[transporter.DocumentType] = sheet

	for _, v := range result {
		if o, ok := v.(observable); ok {
			o.SetObserver(observer)
		}
	}
	return result, nil
}
