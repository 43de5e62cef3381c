// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ocr turns scanned documents into text. Images go through
// tesseract; PDFs use their embedded text layer when it is long enough and
// are rasterized page by page otherwise.
package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"docverify/internal/detector"
	"docverify/internal/failure"
	"docverify/internal/observability"
)

// Recognition methods reported by the engine.
const (
	MethodImage   = "image-ocr"
	MethodPDFText = "pdf-text"
	MethodPDFOCR  = "pdf-ocr"
)

// Config holds the engine settings.
type Config struct {
	Tesseract   string `yaml:"tesseract"`
	Pdftoppm    string `yaml:"pdftoppm"`
	TessdataDir string `yaml:"tessdata_dir"`

	PSM int `yaml:"psm"`
	OEM int `yaml:"oem"`

	DPI      int `yaml:"dpi"`
	MaxPages int `yaml:"max_pages"`

	// MinPDFTextLength is the shortest text layer used instead of
	// rasterizing the PDF.
	MinPDFTextLength int `yaml:"min_pdf_text_length"`
}

// DefaultConfig returns settings for binaries found on PATH.
func DefaultConfig() Config {
	return Config{
		Tesseract:        "tesseract",
		Pdftoppm:         "pdftoppm",
		DPI:              300,
		MaxPages:         5,
		MinPDFTextLength: 50,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Tesseract) == "" {
		return fmt.Errorf("recognition tesseract binary must be set")
	}
	if strings.TrimSpace(c.Pdftoppm) == "" {
		return fmt.Errorf("recognition pdftoppm binary must be set")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("recognition dpi must be positive, got %d", c.DPI)
	}
	if c.MaxPages < 0 || c.PSM < 0 || c.OEM < 0 || c.MinPDFTextLength < 0 {
		return fmt.Errorf("recognition max_pages, psm, oem and min_pdf_text_length must not be negative")
	}
	return nil
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
	".bmp": true, ".gif": true, ".webp": true,
}

// SupportedExtension reports whether the engine can read files with ext.
func SupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".pdf" || imageExtensions[ext]
}

// Engine recognizes images and PDFs. It implements detector.Recognizer.
type Engine struct {
	cfg      Config
	runner   Runner
	observer *observability.StandardObserver
}

// NewEngine creates an engine running the real binaries.
func NewEngine(cfg Config, observer *observability.StandardObserver) *Engine {
	def := DefaultConfig()
	if cfg.Tesseract == "" {
		cfg.Tesseract = def.Tesseract
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = def.Pdftoppm
	}
	if cfg.DPI <= 0 {
		cfg.DPI = def.DPI
	}
	return &Engine{cfg: cfg, runner: execRunner{observer: observer}, observer: observer}
}

// WithRunner returns a copy of e that executes commands through r.
func (e *Engine) WithRunner(r Runner) *Engine {
	c := *e
	c.runner = r
	return &c
}

// Recognize picks the image or PDF path from the file extension.
func (e *Engine) Recognize(ctx context.Context, path, language string) (detector.Recognition, error) {
	start := time.Now()
	ext := strings.ToLower(filepath.Ext(path))

	var (
		rec detector.Recognition
		err error
	)
	switch {
	case ext == ".pdf":
		rec, err = e.recognizePDF(ctx, path, language)
	case imageExtensions[ext]:
		rec, err = e.recognizeImage(ctx, path, language)
	default:
		return detector.Recognition{}, fmt.Errorf("%w: %q", failure.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return detector.Recognition{}, fmt.Errorf("recognizing %s: %w", filepath.Base(path), ctxErr)
		}
		return detector.Recognition{}, err
	}
	rec.Language = language
	rec.Duration = time.Since(start)
	return rec, nil
}

func (e *Engine) tesseract(ctx context.Context, path, language string) (string, error) {
	args := []string{path, "stdout", "-l", language}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, truncate(msg, 512))
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}
