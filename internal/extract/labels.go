// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strings"
)

var (
	affiliationStatusPattern = regexp.MustCompile(`estado\s+de\s+la\s+afiliacion[:\s]+([a-z]+)`)
	riskClassPattern         = regexp.MustCompile(`clase.{0,20}?riesgo.{0,15}?\b([1-5]|iv|v|i{1,3})\b`)
)

var romanRisk = map[string]int{"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5}

// AffiliationStatus returns the upper-cased word after "estado de la
// afiliación" in accent-stripped lower-case text.
func AffiliationStatus(plain string) (string, bool) {
	m := affiliationStatusPattern.FindStringSubmatch(plain)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// RiskClass returns the 1-5 occupational risk class printed after a
// "clase de riesgo" label, in digits or roman numerals.
func RiskClass(plain string) (int, bool) {
	m := riskClassPattern.FindStringSubmatch(plain)
	if m == nil {
		return 0, false
	}
	if n, ok := romanRisk[m[1]]; ok {
		return n, true
	}
	return int(m[1][0] - '0'), true
}

// Keyword is a presence flag. It is set when any of Any appears (or Any is
// empty) and every term of All appears.
type Keyword struct {
	Flag string   `yaml:"flag"`
	Any  []string `yaml:"any,omitempty"`
	All  []string `yaml:"all,omitempty"`
}

// Flags evaluates each keyword against text with plain substring search.
func Flags(text string, keywords []Keyword) map[string]bool {
	flags := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		flags[k.Flag] = k.present(text)
	}
	return flags
}

func (k Keyword) present(text string) bool {
	if len(k.Any) == 0 && len(k.All) == 0 {
		return false
	}
	if len(k.Any) > 0 {
		found := false
		for _, term := range k.Any {
			if strings.Contains(text, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, term := range k.All {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

// Simple builds keywords whose flag is the term itself.
func Simple(terms ...string) []Keyword {
	out := make([]Keyword, len(terms))
	for i, t := range terms {
		out[i] = Keyword{Flag: t, Any: []string{t}}
	}
	return out
}

// FlagNames returns the flag name of every keyword.
func FlagNames(keywords []Keyword) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = k.Flag
	}
	return out
}
