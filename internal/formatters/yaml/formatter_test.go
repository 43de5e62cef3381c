// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"docverify/internal/detector"
	"docverify/internal/formatters"
)

func TestFormatRoundTrip(t *testing.T) {
	r := detector.NewReport("arl")
	r.RiskClassFound = detector.IntPtr(4)
	r.RiskCompliant = true

	out, err := NewFormatter().Format([]*detector.Report{r}, formatters.FormatterOptions{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))

	summary := decoded["summary"].(map[string]interface{})
	assert.Equal(t, 1, summary["documents"])

	reports := decoded["reports"].([]interface{})
	require.Len(t, reports, 1)
	first := reports[0].(map[string]interface{})
	assert.Equal(t, "arl", first["documentType"])
	assert.Equal(t, 4, first["riskClassFound"])
	assert.Equal(t, true, first["riskCompliant"])
	for _, key := range detector.Keys {
		assert.Contains(t, first, key)
	}
}

func TestFormatMetadata(t *testing.T) {
	f := NewFormatter()
	assert.Equal(t, "yaml", f.Name())
	assert.Equal(t, ".yaml", f.FileExtension())
}
