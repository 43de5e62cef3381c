// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pension

import (
	"fmt"
	"strings"

	"docverify/internal/extract"
	"docverify/internal/validators"
)

// Config tunes the checks for pension certificates of any fund.
type Config struct {
	validators.Common `yaml:",inline"`

	WindowThreshold float64 `yaml:"window_threshold"`
	WindowMin       int     `yaml:"window_min"`
	WindowMax       int     `yaml:"window_max"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		Common:          validators.DefaultCommon(),
		WindowThreshold: 0.55,
		WindowMin:       2,
		WindowMax:       5,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if err := validators.CheckThreshold("pension window_threshold", c.WindowThreshold); err != nil {
		return err
	}
	return validators.CheckWindow("pension", c.WindowMin, c.WindowMax)
}

// ProteccionConfig tunes the checks for certificates issued by Protección.
type ProteccionConfig struct {
	validators.Common `yaml:",inline"`

	// Markers route a document to these rules when any of them appears in
	// the accent-stripped lower-case text.
	Markers []string `yaml:"markers"`

	WindowSize      int     `yaml:"window_size"`
	WindowThreshold float64 `yaml:"window_threshold"`

	Keywords []extract.Keyword `yaml:"keywords"`
}

// DefaultProteccionConfig returns the calibrated defaults.
func DefaultProteccionConfig() ProteccionConfig {
	return ProteccionConfig{
		Common:          validators.DefaultCommon(),
		Markers:         []string{"proteccion", "fondo de pensiones obligatorias"},
		WindowSize:      3,
		WindowThreshold: 0.55,
		Keywords: []extract.Keyword{
			{Flag: FlagProteccion, Any: []string{"proteccion"}},
			{Flag: FlagFondoPensiones, All: []string{"fondo", "pensiones"}},
			{Flag: FlagObligatorias, Any: []string{"obligatorias"}},
			{Flag: FlagAfiliado, Any: []string{"afiliado", "afiliada"}},
			{Flag: FlagConstancia, Any: []string{"constancia"}},
			{Flag: "nit", Any: []string{"nit"}},
			{Flag: "expedicion", Any: []string{"expedicion", "expide"}},
		},
	}
}

// Validate checks the configuration.
func (c ProteccionConfig) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if len(c.Markers) == 0 {
		return fmt.Errorf("proteccion markers must not be empty")
	}
	for _, m := range c.Markers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("proteccion markers must not contain empty entries")
		}
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("proteccion window_size must be positive, got %d", c.WindowSize)
	}
	return validators.CheckThreshold("proteccion window_threshold", c.WindowThreshold)
}
