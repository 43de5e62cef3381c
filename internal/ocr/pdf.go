// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"docverify/internal/detector"
	"docverify/internal/failure"
)

func (e *Engine) recognizePDF(ctx context.Context, path, language string) (detector.Recognition, error) {
	if _, err := os.Stat(path); err != nil {
		return detector.Recognition{}, err
	}
	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
		return detector.Recognition{}, failure.Recognition(err, "invalid PDF %s: %v", filepath.Base(path), err)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return detector.Recognition{}, failure.Recognition(err, "reading PDF %s: %v", filepath.Base(path), err)
	}
	meta := map[string]string{"pageCount": strconv.Itoa(pages)}

	text, err := textLayer(path, e.cfg.MaxPages)
	if err == nil && utf8.RuneCountInString(strings.TrimSpace(text)) >= e.cfg.MinPDFTextLength {
		return detector.Recognition{Text: text, Method: MethodPDFText, Pages: pages, Metadata: meta}, nil
	}
	if err != nil {
		meta["textLayerError"] = err.Error()
	}

	text, rendered, err := e.rasterize(ctx, path, language)
	if err != nil {
		return detector.Recognition{}, err
	}
	meta["renderedPages"] = strconv.Itoa(rendered)
	return detector.Recognition{Text: text, Method: MethodPDFOCR, Pages: pages, Metadata: meta}, nil
}

// textLayer returns the embedded text of the first maxPages pages.
func textLayer(path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	n := r.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}
	var b strings.Builder
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// rasterize renders the PDF to PNG pages with pdftoppm and recognizes each
// one. Pages that fail are skipped; it fails only when none succeeds.
func (e *Engine) rasterize(ctx context.Context, path, language string) (string, int, error) {
	tmpDir, err := os.MkdirTemp("", "docverify-pages-*")
	if err != nil {
		return "", 0, err
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(e.cfg.DPI), "-png"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, path, prefix)
	if _, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, args...); err != nil {
		return "", 0, fmt.Errorf("pdftoppm: %w: %s", err, truncate(strings.TrimSpace(string(errb)), 512))
	}

	images, _ := filepath.Glob(prefix + "-*.png")
	sort.Slice(images, func(i, j int) bool { return pageNumber(images[i]) < pageNumber(images[j]) })
	if e.cfg.MaxPages > 0 && len(images) > e.cfg.MaxPages {
		images = images[:e.cfg.MaxPages]
	}
	if len(images) == 0 {
		return "", 0, failure.Recognition(nil, "pdftoppm produced no pages for %s", filepath.Base(path))
	}

	var b strings.Builder
	var lastErr error
	recognized := 0
	for _, img := range images {
		text, err := e.tesseract(ctx, img, language)
		if err != nil {
			lastErr = err
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.WriteString(text)
		recognized++
	}
	if recognized == 0 {
		return "", 0, lastErr
	}
	return b.String(), recognized, nil
}

// pageNumber extracts N from ".../page-N.png"; pdftoppm pads N only up to
// the width of the page count.
func pageNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".png")
	i := strings.LastIndex(base, "-")
	if i < 0 {
		return 0
	}
	n, _ := strconv.Atoi(base[i+1:])
	return n
}
