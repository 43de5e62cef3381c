// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/detector"
	"docverify/internal/observability"
	"docverify/internal/ocr"
)

const cedulaText = "REPUBLICA DE COLOMBIA CEDULA DE CIUDADANIA 1.023.456.789 PEREZ GOMEZ JUAN CARLOS"

// withFakeRecognizer makes the CLI read documents as plain text files.
func withFakeRecognizer(t *testing.T) {
	t.Helper()
	t.Setenv("DOCVERIFY_CONFIG_DIR", t.TempDir())
	t.Setenv("DOCVERIFY_CONFIG", "")
	chdir(t, t.TempDir())

	origRecognizer, origTerminal := newRecognizer, isTerminal
	newRecognizer = func(ocr.Config, *observability.StandardObserver) detector.Recognizer {
		return detector.RecognizerFunc(func(_ context.Context, path, language string) (detector.Recognition, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return detector.Recognition{}, err
			}
			return detector.Recognition{Text: string(data), Language: language, Method: "fake"}, nil
		})
	}
	isTerminal = func(io.Writer) bool { return false }
	t.Cleanup(func() {
		newRecognizer, isTerminal = origRecognizer, origTerminal
	})
}

func writeDocument(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cedula.png")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	withFakeRecognizer(t)
	code, out, _ := runCLI("--version")
	assert.Equal(t, exitVerified, code)
	assert.Contains(t, out, "docverify ")
}

func TestVerifiedCedulaAsJSON(t *testing.T) {
	withFakeRecognizer(t)
	doc := writeDocument(t, cedulaText)

	code, out, stderr := runCLI("--type", "cedula", "--file", doc,
		"--name", "Juan Carlos Pérez Gómez", "--id", "1023456789", "--format", "json")
	require.Equal(t, exitVerified, code, stderr)

	var decoded struct {
		Summary map[string]int           `json:"summary"`
		Reports []map[string]interface{} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1, decoded.Summary["verified"])
	require.Len(t, decoded.Reports, 1)
	assert.Equal(t, "cedula", decoded.Reports[0]["documentType"])
}

func TestNegativeVerdictExitsOne(t *testing.T) {
	withFakeRecognizer(t)
	doc := writeDocument(t, cedulaText)

	code, out, _ := runCLI("--type", "cedula", "--file", doc,
		"--name", "Maria Fernanda Lopez", "--id", "5550001", "--no-color")
	assert.Equal(t, exitNotVerified, code)
	assert.Contains(t, out, "[CEDULA] NOT VERIFIED")
}

func TestUsageErrors(t *testing.T) {
	withFakeRecognizer(t)
	doc := writeDocument(t, cedulaText)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing flags", []string{"--type", "cedula"}, "missing required flags: --file, --name, --id"},
		{"unknown type", []string{"--type", "licencia", "--file", doc, "--name", "a", "--id", "1"}, "licencia"},
		{"formato without code", []string{"--type", "formato", "--file", doc, "--name", "a", "--id", "1"}, "--code"},
		{"missing file", []string{"--type", "eps", "--file", "nope.pdf", "--name", "a", "--id", "1"}, "cannot read nope.pdf"},
		{"bad format", []string{"--type", "eps", "--file", doc, "--name", "a", "--id", "1", "--format", "sarif"}, "unsupported format"},
		{"xlsx to stdout", []string{"--type", "eps", "--file", doc, "--name", "a", "--id", "1", "--format", "xlsx"}, "needs --output"},
		{"unknown flag", []string{"--confidence", "high"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestOutputFile(t *testing.T) {
	withFakeRecognizer(t)
	doc := writeDocument(t, cedulaText)
	out := filepath.Join(t.TempDir(), "reports", "cedula.csv")

	code, stdout, stderr := runCLI("--type", "cedula", "--file", doc,
		"--name", "Juan Carlos Pérez Gómez", "--id", "1023456789", "--format", "csv", "--output", out)
	require.Equal(t, exitVerified, code, stderr)
	assert.Empty(t, stdout)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "documentType,verdict")
}

func TestHelpTopics(t *testing.T) {
	withFakeRecognizer(t)

	code, out, _ := runCLI("--help")
	assert.Equal(t, exitVerified, code)
	assert.Contains(t, out, "USAGE:")

	code, out, _ = runCLI("--help", "types")
	assert.Equal(t, exitVerified, code)
	for _, name := range []string{"formato", "cedula", "eps", "arl", "pension"} {
		assert.Contains(t, out, name)
	}

	code, out, _ = runCLI("--help", "transporter")
	assert.Equal(t, exitVerified, code)
	assert.Contains(t, out, "formato document")

	code, _, _ = runCLI("--help", "pasaporte")
	assert.Equal(t, exitUsage, code)
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	withFakeRecognizer(t)
	doc := writeDocument(t, cedulaText)
	cfgPath := filepath.Join(t.TempDir(), "docverify.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("defaults: [not a map"), 0600))

	code, _, stderr := runCLI("--config", cfgPath, "--type", "cedula", "--file", doc,
		"--name", "Juan Carlos Pérez Gómez", "--id", "1023456789")
	assert.Equal(t, exitVerified, code)
	assert.Contains(t, stderr, "Using default configuration")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}
