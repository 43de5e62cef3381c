// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"docverify/internal/detector"
	"docverify/internal/formatters"
	"docverify/internal/formatters/shared"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values, one row per document"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(reports []*detector.Report, options formatters.FormatterOptions) (string, error) {
	cols := shared.Columns(options.Verbose)

	// Start with header row
	csvRows := []string{strings.Join(shared.ColumnNames(cols), ",")}

	for _, report := range reports {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = f.escapeCSVField(shared.CellString(c.Value(report)))
		}
		csvRows = append(csvRows, strings.Join(row, ","))
	}

	return strings.Join(csvRows, "\n"), nil
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	// Prevent CSV injection by sanitizing formula characters
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.ContainsAny(field, ",\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prefixes cells that a spreadsheet would run as a formula
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
