// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/detector"
	"docverify/internal/formatters"
)

func TestFormatKeepsEveryKey(t *testing.T) {
	r := detector.NewReport("cedula")
	r.Text = "CEDULA DE CIUDADANIA"

	out, err := NewFormatter().Format([]*detector.Report{r}, formatters.FormatterOptions{})
	require.NoError(t, err)

	var decoded struct {
		Summary map[string]int           `json:"summary"`
		Reports []map[string]interface{} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1, decoded.Summary["documents"])
	require.Len(t, decoded.Reports, 1)
	for _, key := range detector.Keys {
		assert.Contains(t, decoded.Reports[0], key)
	}
	assert.Equal(t, "", decoded.Reports[0]["text"])
	assert.Nil(t, decoded.Reports[0]["detectedDate"])
}

func TestFormatVerboseIncludesText(t *testing.T) {
	r := detector.NewReport("eps")
	r.Text = "NUEVA EPS"

	out, err := NewFormatter().Format([]*detector.Report{r}, formatters.FormatterOptions{Verbose: true})
	require.NoError(t, err)
	assert.Contains(t, out, `"text": "NUEVA EPS"`)
}

func TestFormatEmpty(t *testing.T) {
	out, err := NewFormatter().Format(nil, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, `"reports": []`)
}
