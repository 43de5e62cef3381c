// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package arl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/detector"
)

const certificate = `POSITIVA COMPAÑÍA DE SEGUROS
Certificamos que JUAN PÉREZ con cédula 1.023.456.789 se encuentra afiliado
Clase de riesgo: 4
Fecha: 01/06/2024`

func newValidator(t *testing.T, today time.Time) *Validator {
	t.Helper()
	v, err := NewValidator(DefaultConfig(), nil)
	require.NoError(t, err)
	v.SetClock(func() time.Time { return today })
	return v
}

func TestValidateContentCertificate(t *testing.T) {
	v := newValidator(t, time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local))
	report := v.ValidateContent(detector.Recognition{Text: certificate, Language: "spa"},
		detector.Expected{Name: "Juan Pérez", IDNumber: "1023456789"})

	assert.Equal(t, DocumentType, report.DocumentType)
	assert.True(t, report.NameFound)
	assert.Equal(t, 1.0, report.NameSimilarity)
	assert.True(t, report.IDFound)
	assert.Equal(t, []string{"1023456789"}, report.IDCandidates)

	require.NotNil(t, report.DetectedDate)
	assert.Equal(t, "01/06/2024", *report.DetectedDate)
	assert.Equal(t, 9, *report.DaysSinceIssue)
	assert.True(t, report.DateValid)

	require.NotNil(t, report.RiskClassFound)
	assert.Equal(t, 4, *report.RiskClassFound)
	assert.True(t, report.RiskCompliant)
	assert.Equal(t, 0.8, report.RiskConfidence)

	assert.True(t, report.KeywordFlags["afiliado"])
	assert.False(t, report.KeywordFlags["registra"])
	assert.Len(t, report.KeywordFlags, 6)
	assert.True(t, report.Verdict())
	require.NoError(t, detector.CheckShape(report))
}

func TestRiskClass(t *testing.T) {
	v := newValidator(t, time.Now())

	tests := []struct {
		name      string
		text      string
		class     *int
		compliant bool
	}{
		{"class five", "CLASE DE RIESGO 5", detector.IntPtr(5), true},
		{"class three", "clase de riesgo: 3", detector.IntPtr(3), false},
		{"roman four", "Clase de Riesgo IV", detector.IntPtr(4), true},
		{"roman one", "clase riesgo I", detector.IntPtr(1), false},
		{"missing", "riesgo laboral", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := v.ValidateContent(detector.Recognition{Text: tt.text}, detector.Expected{})
			assert.Equal(t, tt.class, report.RiskClassFound)
			assert.Equal(t, tt.compliant, report.RiskCompliant)
			if tt.class == nil {
				assert.Zero(t, report.RiskConfidence)
			} else {
				assert.Equal(t, 0.8, report.RiskConfidence)
			}
		})
	}
}

func TestIDRequiresExactDigits(t *testing.T) {
	v := newValidator(t, time.Now())

	report := v.ValidateContent(detector.Recognition{Text: "CC 1023456788"}, detector.Expected{IDNumber: "1023456789"})
	assert.False(t, report.IDFound)

	report = v.ValidateContent(detector.Recognition{Text: "CC 1023456789"}, detector.Expected{IDNumber: "1.023.456.789"})
	assert.True(t, report.IDFound)
	assert.Equal(t, detector.MethodExact, report.IDMatch.Method)
}

func TestUnrelatedNameIsNotFound(t *testing.T) {
	v := newValidator(t, time.Now())
	report := v.ValidateContent(detector.Recognition{Text: certificate}, detector.Expected{Name: "wwww kkkk"})
	assert.False(t, report.NameFound)
	assert.Less(t, report.NameSimilarity, 0.55)
}

func TestEmptyInputsKeepShape(t *testing.T) {
	v := newValidator(t, time.Now())
	for _, text := range []string{"", certificate} {
		for _, expected := range []detector.Expected{{}, {Name: "Juan Pérez"}, {IDNumber: "1023456789"}} {
			report := v.ValidateContent(detector.Recognition{Text: text}, expected)
			require.NoError(t, detector.CheckShape(report))
			if text == "" {
				assert.False(t, report.NameFound)
				assert.False(t, report.IDFound)
				assert.Zero(t, report.NameSimilarity)
			}
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.RiskCompliantMin = 6
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.WindowMin = 0
	assert.Error(t, cfg.Validate())
}
