// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"io"
	"time"
)

// DebugObserver prints human readable step traces next to the JSON records.
type DebugObserver struct {
	*StandardObserver
}

// NewDebugObserver creates a debug observer with step-by-step logging
func NewDebugObserver(writer io.Writer) *DebugObserver {
	return &DebugObserver{StandardObserver: NewStandardObserver(ObservabilityDebug, writer)}
}

// Debug returns a step logger sharing o's writer, or nil when o is not in
// debug mode.
func (o *StandardObserver) Debug() *DebugObserver {
	if !o.Enabled(ObservabilityDebug) {
		return nil
	}
	return &DebugObserver{StandardObserver: o}
}

// StartStep begins a processing step.
func (d *DebugObserver) StartStep(component, step, filePath string) func(success bool, details string) {
	if d == nil {
		return func(bool, string) {}
	}
	start := time.Now()
	d.printf("> %s: %s (%s)\n", component, step, filePath)

	return func(success bool, details string) {
		status := "completed"
		if !success {
			status = "failed"
		}
		d.printf("< %s: %s %s (%dms) %s\n", component, step, status, time.Since(start).Milliseconds(), details)
	}
}

// LogDetail logs a detail within the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	if d == nil {
		return
	}
	d.printf("  - %s: %s\n", component, detail)
}

// LogMetric logs a metric value
func (d *DebugObserver) LogMetric(component, metric string, value interface{}) {
	if d == nil {
		return
	}
	d.printf("  # %s: %s = %v\n", component, metric, value)
}

func (d *DebugObserver) printf(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.requestID != "" {
		fmt.Fprintf(d.writer, "[%s] ", d.requestID)
	}
	fmt.Fprintf(d.writer, format, args...)
}
