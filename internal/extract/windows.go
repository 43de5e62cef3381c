// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strings"
)

// Windows returns every run of minSize..maxSize consecutive tokens joined by
// a single space. Shorter windows come first; within a size, windows are in
// text order.
func Windows(tokens []string, minSize, maxSize int) []string {
	if minSize < 1 {
		minSize = 1
	}
	var out []string
	for size := minSize; size <= maxSize; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+size], " "))
		}
	}
	return out
}

// Anchor locates a name that follows a marker phrase such as "señor".
type Anchor struct {
	Pattern   *regexp.Regexp
	StopWords []string
	SkipWords []string
	MaxTokens int
}

// Find returns the tokens after the first marker in normalized text. It
// stops at a stop word or after MaxTokens kept tokens, and skips connector
// words and one-letter tokens. The empty string means no candidate.
func (a Anchor) Find(normalized string) string {
	if a.Pattern == nil {
		return ""
	}
	loc := a.Pattern.FindStringIndex(normalized)
	if loc == nil {
		return ""
	}

	stop := toSet(a.StopWords)
	skip := toSet(a.SkipWords)

	var kept []string
	for _, tok := range strings.Fields(normalized[loc[1]:]) {
		if _, ok := stop[tok]; ok {
			break
		}
		if _, ok := skip[tok]; ok || len(tok) <= 1 {
			continue
		}
		kept = append(kept, tok)
		if a.MaxTokens > 0 && len(kept) >= a.MaxTokens {
			break
		}
	}
	return strings.Join(kept, " ")
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
