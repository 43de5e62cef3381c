// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docverify/internal/detector"
	"docverify/internal/formatters"
)

func TestFormatWorkbook(t *testing.T) {
	r := detector.NewReport("pension")
	r.Text = "FONDO DE PENSIONES OBLIGATORIAS"
	r.DocumentSubtype = detector.StringPtr("certificado_pensiones")
	r.SetID(detector.Matched(detector.MethodExact, "1234567890", 1))

	out, err := NewFormatter().Format([]*detector.Report{r}, formatters.FormatterOptions{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(strings.NewReader(out))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, "documentType", header[0])
	assert.Equal(t, "text", header[len(header)-1])

	values := map[string]string{}
	for i, v := range rows[1] {
		values[header[i]] = v
	}
	assert.Equal(t, "pension", values["documentType"])
	assert.Contains(t, []string{"TRUE", "1"}, strings.ToUpper(values["idFound"]))
	assert.Equal(t, "certificado_pensiones", values["documentSubtype"])
	assert.Equal(t, "FONDO DE PENSIONES OBLIGATORIAS", values["text"])
}

func TestFormatEmptyHasHeader(t *testing.T) {
	out, err := NewFormatter().Format(nil, formatters.FormatterOptions{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(strings.NewReader(out))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
