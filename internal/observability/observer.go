// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StandardObserver writes one JSON line per completed operation. A nil
// *StandardObserver is valid and discards everything.
type StandardObserver struct {
	level     ObservabilityLevel
	writer    io.Writer
	mu        *sync.Mutex
	requestID string
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates an observer writing to writer.
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	if writer == nil {
		writer = io.Discard
	}
	return &StandardObserver{
		level:  level,
		writer: writer,
		mu:     &sync.Mutex{},
	}
}

// NewRequestID returns a fresh request identifier.
func NewRequestID() string {
	return "req-" + uuid.New().String()
}

// WithRequest returns an observer that tags every record with requestID.
// The copy shares the writer and its lock with o.
func (o *StandardObserver) WithRequest(requestID string) *StandardObserver {
	if o == nil {
		return nil
	}
	c := *o
	c.requestID = requestID
	return &c
}

// RequestID returns the identifier bound with WithRequest, if any.
func (o *StandardObserver) RequestID() string {
	if o == nil {
		return ""
	}
	return o.requestID
}

// Enabled reports whether records at level are written.
func (o *StandardObserver) Enabled(level ObservabilityLevel) bool {
	return o != nil && o.level >= level && level != ObservabilityOff
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		o.LogOperation(StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation writes data as a JSON line in debug mode.
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if !o.Enabled(ObservabilityDebug) {
		return
	}

	if data.RequestID == "" {
		data.RequestID = o.requestID
	}
	if data.RequestID == "" {
		data.RequestID = NewRequestID()
	}
	data.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)

	o.mu.Lock()
	defer o.mu.Unlock()
	_ = json.NewEncoder(o.writer).Encode(data)
}

// LogError records a failed operation.
func (o *StandardObserver) LogError(component, operation, filePath string, err error) {
	if err == nil {
		return
	}
	o.LogOperation(StandardObservabilityData{
		Component: component,
		Operation: operation,
		FilePath:  filePath,
		Success:   false,
		Error:     err.Error(),
	})
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Timestamp     string                 `json:"timestamp"`
	Component     string                 `json:"component"`
	Operation     string                 `json:"operation"`
	RequestID     string                 `json:"request_id"`
	FilePath      string                 `json:"file_path,omitempty"`
	DurationMs    int64                  `json:"duration_ms,omitempty"`
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
	ContentLength int                    `json:"content_length,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}
