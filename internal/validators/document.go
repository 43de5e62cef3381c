// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"strings"

	"docverify/internal/textnorm"
)

// Document is recognized text with the projections the matchers work on.
type Document struct {
	// Raw is the recognized text with non-breaking spaces folded.
	Raw string
	// Plain is lower-cased and accent-stripped but keeps punctuation.
	Plain string
	// Normalized also drops every symbol.
	Normalized string
	// Tokens are the words of Normalized.
	Tokens []string
}

// NewDocument builds the projections of raw.
func NewDocument(raw string) *Document {
	raw = strings.ReplaceAll(raw, "\u00a0", " ")
	normalized := textnorm.Normalize(raw)
	return &Document{
		Raw:        raw,
		Plain:      textnorm.Plain(raw),
		Normalized: normalized,
		Tokens:     textnorm.Tokens(normalized),
	}
}

// Empty reports whether the document has no usable text.
func (d *Document) Empty() bool {
	return len(d.Tokens) == 0
}

// NameTokens normalizes an expected name into its words.
func NameTokens(name string) []string {
	return textnorm.Tokens(textnorm.Normalize(name))
}

// Normalized returns the fully normalized form of an expected value.
func Normalized(s string) string {
	return textnorm.Normalize(s)
}
