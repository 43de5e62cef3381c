// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"docverify/internal/detector"
	"docverify/internal/formatters"
	"docverify/internal/formatters/shared"
)

// SheetName is the worksheet holding one row per document.
const SheetName = "Documentos"

// Formatter writes an Excel workbook.
type Formatter struct{}

// NewFormatter creates a new XLSX formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "xlsx"
}

func (f *Formatter) Description() string {
	return "Excel workbook, one row per document and one column per report field"
}

func (f *Formatter) FileExtension() string {
	return ".xlsx"
}

// Format returns the workbook bytes. The recognized text is always included.
func (f *Formatter) Format(reports []*detector.Report, _ formatters.FormatterOptions) (string, error) {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), SheetName); err != nil {
		return "", fmt.Errorf("xlsx sheet: %w", err)
	}

	cols := shared.Columns(true)
	for i, name := range shared.ColumnNames(cols) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := book.SetCellValue(SheetName, cell, name); err != nil {
			return "", fmt.Errorf("xlsx header: %w", err)
		}
	}

	for r, report := range reports {
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			v := col.Value(report)
			if v == nil {
				continue
			}
			if err := book.SetCellValue(SheetName, cell, v); err != nil {
				return "", fmt.Errorf("xlsx cell %s: %w", cell, err)
			}
		}
	}

	// Widen the text column
	last, _ := excelize.ColumnNumberToName(len(cols))
	_ = book.SetColWidth(SheetName, "A", "A", 14)
	_ = book.SetColWidth(SheetName, last, last, 80)

	buf, err := book.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("xlsx write: %w", err)
	}
	return buf.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
