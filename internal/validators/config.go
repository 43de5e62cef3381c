// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"fmt"
	"strings"
)

// Common holds the settings every document type has.
type Common struct {
	// Languages are tried in order while the recognized text is shorter
	// than MinTextLength. The longest result is kept.
	Languages     []string `yaml:"languages"`
	MinTextLength int      `yaml:"min_text_length"`

	// CheckDate enables the issue date recency check.
	CheckDate  bool `yaml:"check_date"`
	MaxAgeDays int  `yaml:"max_age_days"`
}

// DefaultCommon is a single "spa" pass with a 30 day recency window.
func DefaultCommon() Common {
	return Common{
		Languages:  []string{"spa"},
		CheckDate:  true,
		MaxAgeDays: 30,
	}
}

// Validate checks the common settings.
func (c Common) Validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one recognition language is required")
	}
	for _, l := range c.Languages {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("empty recognition language")
		}
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("min_text_length must not be negative, got %d", c.MinTextLength)
	}
	if c.MaxAgeDays < 0 {
		return fmt.Errorf("max_age_days must not be negative, got %d", c.MaxAgeDays)
	}
	return nil
}

// CheckThreshold verifies that a similarity threshold lies in [0,1].
func CheckThreshold(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
	}
	return nil
}

// CheckWindow verifies a sliding window size range.
func CheckWindow(name string, minSize, maxSize int) error {
	if minSize < 1 || maxSize < minSize {
		return fmt.Errorf("%s window must satisfy 1 <= min <= max, got %d..%d", name, minSize, maxSize)
	}
	return nil
}
