// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract pulls candidate field values out of recognized text.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// thousands-separated groups (1.023.456.789) or a bare run of 7-12 digits
	formattedIDPattern = regexp.MustCompile(`\d{1,3}(?:\.\d{3}){1,3}|\d{7,12}`)
	bareIDPattern      = regexp.MustCompile(`\d{7,12}`)
	looseNumberPattern = regexp.MustCompile(`[\d.,]+`)
	separatedIDPattern = regexp.MustCompile(`\d[\d'.-]{6,15}\d`)
	proximityPattern   = regexp.MustCompile(`.{0,5}\d{5,10}.{0,5}`)
	codeRunPattern     = regexp.MustCompile(`\d{5,10}`)
)

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IDNumbers returns every formatted or bare ID number in raw, reduced to
// digits, in order of appearance.
func IDNumbers(raw string) []string {
	return digitsOf(formattedIDPattern.FindAllString(raw, -1))
}

// BareIDNumbers returns every 7-12 digit run in raw.
func BareIDNumbers(raw string) []string {
	return bareIDPattern.FindAllString(raw, -1)
}

// LooseNumbers returns digit runs that may be broken by dots, commas or
// spaces, keeping those with at least minLen digits.
func LooseNumbers(raw string, minLen int) []string {
	var out []string
	for _, m := range looseNumberPattern.FindAllString(raw, -1) {
		n := strings.Map(func(r rune) rune {
			if r == '.' || r == ',' || unicode.IsSpace(r) {
				return -1
			}
			return r
		}, m)
		if len(n) >= minLen {
			out = append(out, n)
		}
	}
	return out
}

// SeparatedNumbers finds numbers written with apostrophes, dots or dashes
// between the digits (1'023.456-789) and returns their digits.
func SeparatedNumbers(raw string) []string {
	return digitsOf(separatedIDPattern.FindAllString(raw, -1))
}

// ProximityNumbers returns the digits of every 5-10 digit run together
// with up to five characters of context on each side, followed by the bare
// runs themselves.
func ProximityNumbers(raw string) []string {
	out := digitsOf(proximityPattern.FindAllString(raw, -1))
	return append(out, codeRunPattern.FindAllString(raw, -1)...)
}

// Unique drops repeated values, keeping the first occurrence.
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func digitsOf(matches []string) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if d := Digits(m); d != "" {
			out = append(out, d)
		}
	}
	return out
}
