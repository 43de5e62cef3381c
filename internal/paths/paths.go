// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// GetConfigDir returns the docverify configuration directory
func GetConfigDir() string {
	// Check for explicit override first
	if dir := os.Getenv("DOCVERIFY_CONFIG_DIR"); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".docverify"
	}
	return filepath.Join(home, ".docverify")
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetTempDir returns the directory for uploaded documents and rendered pages
func GetTempDir() string {
	if dir := os.Getenv("DOCVERIFY_TMPDIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// ValidatePath validates a configured path
func ValidatePath(path string) error {
	if path == "" {
		return nil // Empty path is valid
	}
	if strings.ContainsRune(path, 0) {
		return &PathValidationError{Path: path, Reason: "contains null byte"}
	}
	return nil
}

// SafeBase returns the last element of an uploaded file name with any
// directory parts dropped, or "" when nothing usable remains.
func SafeBase(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}
