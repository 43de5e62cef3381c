// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docverify.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DOCVERIFY_CONFIG", "")
	t.Setenv("DOCVERIFY_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfigOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.Equal(t, 30, cfg.Documents.EPS.MaxAgeDays)
	assert.Equal(t, []string{"spa", "eng", "spa+eng"}, cfg.Documents.Cedula.Languages)
	assert.Equal(t, 5000, cfg.Web.Port)
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	cfg, err := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	require.NotNil(t, cfg, "expected fallback to defaults")
	assert.Equal(t, 0.55, cfg.Documents.ARL.WindowThreshold)
}

func TestLoadConfigKeepsUnspecifiedDefaults(t *testing.T) {
	path := writeConfig(t, `
defaults:
  format: json
  timeout: 45s
recognition:
  dpi: 200
  tessdata_dir: /usr/share/tessdata
documents:
  eps:
    max_age_days: 45
    window_threshold: 0.6
  arl:
    risk_compliant_min: 3
  proteccion:
    markers: [proteccion]
web:
  port: 8080
  request_timeout: 90s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Defaults.Format)
	assert.Equal(t, 45*time.Second, cfg.Defaults.Timeout)
	assert.Equal(t, 200, cfg.Recognition.DPI)
	assert.Equal(t, "tesseract", cfg.Recognition.Tesseract)
	assert.Equal(t, "/usr/share/tessdata", cfg.Recognition.TessdataDir)

	assert.Equal(t, 45, cfg.Documents.EPS.MaxAgeDays)
	assert.Equal(t, 0.6, cfg.Documents.EPS.WindowThreshold)
	assert.Equal(t, 0.5, cfg.Documents.EPS.AnchorThreshold)
	assert.Equal(t, []string{"spa"}, cfg.Documents.EPS.Languages)
	assert.True(t, cfg.Documents.EPS.CheckDate)

	assert.Equal(t, 3, cfg.Documents.ARL.RiskCompliantMin)
	assert.Equal(t, []string{"proteccion"}, cfg.Documents.Proteccion.Markers)
	assert.Equal(t, 3, cfg.Documents.Proteccion.WindowSize)
	assert.False(t, cfg.Documents.Transporter.CheckDate)

	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, 90*time.Second, cfg.Web.RequestTimeout)
	assert.Equal(t, int64(32), cfg.Web.MaxUploadMB)
}

func TestLoadConfigKeywordsReplaceList(t *testing.T) {
	path := writeConfig(t, `
documents:
  arl:
    keywords:
      - flag: vigente
        any: [vigente, activa]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Documents.ARL.Keywords, 1)
	assert.Equal(t, []string{"vigente", "activa"}, cfg.Documents.ARL.Keywords[0].Any)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"threshold above one": "documents:\n  eps:\n    window_threshold: 1.5\n",
		"empty languages":     "documents:\n  cedula:\n    languages: []\n",
		"bad window":          "documents:\n  pension:\n    window_min: 4\n    window_max: 2\n",
		"bad anchor":          "documents:\n  eps:\n    anchor_pattern: \"(\"\n",
		"bad port":            "web:\n  port: 70000\n",
		"bad dpi":             "recognition:\n  dpi: -1\n",
		"invalid yaml":        "defaults: [unclosed\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DOCVERIFY_CONFIG_DIR", t.TempDir())
	t.Setenv("DOCVERIFY_CONFIG", "")

	assert.Equal(t, "", FindConfigFile())

	require.NoError(t, os.WriteFile(".docverify.yaml", []byte("{}"), 0o600))
	assert.Equal(t, ".docverify.yaml", FindConfigFile())

	require.NoError(t, os.WriteFile("docverify.yaml", []byte("{}"), 0o600))
	assert.Equal(t, "docverify.yaml", FindConfigFile())

	explicit := writeConfig(t, "{}")
	t.Setenv("DOCVERIFY_CONFIG", explicit)
	assert.Equal(t, explicit, FindConfigFile())
}

func TestEffectiveUploadDir(t *testing.T) {
	cfg := Default()
	t.Setenv("DOCVERIFY_TMPDIR", "/var/tmp/docverify")
	assert.Equal(t, "/var/tmp/docverify", cfg.EffectiveUploadDir())

	cfg.Web.UploadDir = "/srv/uploads"
	assert.Equal(t, "/srv/uploads", cfg.EffectiveUploadDir())
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
