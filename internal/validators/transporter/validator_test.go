// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package transporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/detector"
)

const sheet = `FORMATO DE CREACIÓN DE TRANSPORTADOR
Código transportador: 45821
Razón social: TRANSPORTES EL CÓNDOR S.A.S.
Conductor: CARLOS ANDRÉS RUIZ
Cédula: 1'023.456-789
Fecha: 01/01/2020`

var complete = detector.Expected{
	Name:            "Carlos Andrés Ruiz",
	IDNumber:        "1023456789",
	TransporterCode: "45821",
	TransporterName: "Transportes El Cóndor SAS",
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(DefaultConfig(), nil)
	require.NoError(t, err)
	return v
}

func TestValidateContentSheet(t *testing.T) {
	report := newValidator(t).ValidateContent(detector.Recognition{Text: sheet}, complete)

	assert.Equal(t, DocumentType, report.DocumentType)
	assert.True(t, report.TransporterCodeFound)
	assert.True(t, report.TransporterNameFound)
	assert.Greater(t, report.TransporterNameSimilarity, 0.9)
	assert.True(t, report.IDFound)
	assert.Equal(t, []string{"1023456789"}, report.IDCandidates)
	assert.True(t, report.NameFound)
	assert.Equal(t, 1.0, report.NameSimilarity)
	assert.True(t, report.Verdict())

	assert.Nil(t, report.DetectedDate, "the sheet has no recency check")
	assert.False(t, report.DateValid)
	require.NoError(t, detector.CheckShape(report))
}

func TestTransporterCode(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		code  string
		found bool
	}{
		{"plain", "45821", true},
		{"prefixed", "CT-45821", true},
		{"other", "99999", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := complete
			expected.TransporterCode = tt.code
			report := v.ValidateContent(detector.Recognition{Text: sheet}, expected)
			assert.Equal(t, tt.found, report.TransporterCodeFound)
			assert.Equal(t, tt.found, report.Verdict())
		})
	}
}

func TestNameThresholdIsInclusive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameThreshold = 1.0
	v, err := NewValidator(cfg, nil)
	require.NoError(t, err)

	report := v.ValidateContent(detector.Recognition{Text: "conductor carlos ruiz"}, detector.Expected{Name: "Carlos Ruiz"})
	assert.True(t, report.NameFound)
	assert.Equal(t, 1.0, report.NameSimilarity)
}

func TestDriverIDNeedsSeparatorPattern(t *testing.T) {
	v := newValidator(t)

	report := v.ValidateContent(detector.Recognition{Text: "Cédula 1.023.456.789"}, detector.Expected{IDNumber: "1023456789"})
	assert.True(t, report.IDFound)

	report = v.ValidateContent(detector.Recognition{Text: "Cédula 123456"}, detector.Expected{IDNumber: "123456"})
	assert.False(t, report.IDFound)
}

func TestMissingExpectedValuesAreSkipped(t *testing.T) {
	report := newValidator(t).ValidateContent(detector.Recognition{Text: sheet}, detector.Expected{})

	assert.False(t, report.NameFound)
	assert.False(t, report.TransporterNameFound)
	assert.False(t, report.TransporterCodeFound)
	assert.ElementsMatch(t, []string{"transporterCode", "transporterName", "idNumber", "name"}, report.Debug["skippedChecks"])
	require.NoError(t, detector.CheckShape(report))
}
