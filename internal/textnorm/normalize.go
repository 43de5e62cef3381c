// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textnorm canonicalizes recognized text into a comparable form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options selects the optional normalization steps. Lower-casing, space
// folding and whitespace collapsing always apply.
type Options struct {
	StripAccents bool
	StripSymbols bool
}

var (
	// Full is the projection used for token and name comparison.
	Full = Options{StripAccents: true, StripSymbols: true}

	// PlainText keeps punctuation so dates and separators survive.
	PlainText = Options{StripAccents: true}
)

// Normalize applies the full normalization: lower-case, accents and
// symbols removed, whitespace collapsed.
func Normalize(raw string) string {
	return NormalizeWith(raw, Full)
}

// Plain lower-cases and strips accents but keeps punctuation.
func Plain(raw string) string {
	return NormalizeWith(raw, PlainText)
}

// NormalizeWith normalizes raw according to opts. The result is stable:
// NormalizeWith(NormalizeWith(x, o), o) == NormalizeWith(x, o).
func NormalizeWith(raw string, opts Options) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(raw)
	s = strings.Map(foldSpace, s)

	if opts.StripAccents {
		s = StripAccents(s)
	}

	if opts.StripSymbols {
		s = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
				return r
			}
			return ' '
		}, s)
	}

	return strings.Join(strings.Fields(s), " ")
}

// StripAccents decomposes s and drops the combining marks, so "señor"
// becomes "senor".
func StripAccents(s string) string {
	// transform.Chain keeps internal buffers; build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Tokens splits already normalized text on whitespace.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

func foldSpace(r rune) rune {
	switch r {
	case '\u00a0', '\n', '\r', '\t', '\f', '\v':
		return ' '
	}
	return r
}
