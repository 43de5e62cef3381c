// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy scores how close two strings are, tolerant of OCR noise.
package fuzzy

import (
	"github.com/agext/levenshtein"
)

// A substitution costs as much as a deletion plus an insertion, which turns
// the edit distance into an indel distance. The resulting score is
// 1 - indel/(len(a)+len(b)), i.e. 2*LCS/(len(a)+len(b)).
var indelParams = levenshtein.NewParams().SubCost(2)

// Match is the best scoring candidate returned by BestMatch.
type Match struct {
	Candidate string
	Score     float64
	Index     int
}

// Ratio returns the normalized similarity of a and b in [0,1].
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return levenshtein.Similarity(a, b, indelParams)
}

// BestMatch returns the highest scoring candidate. Ties keep the earliest
// candidate. It reports false when candidates is empty or target is blank.
func BestMatch(target string, candidates []string) (Match, bool) {
	if target == "" || len(candidates) == 0 {
		return Match{}, false
	}

	best := Match{Index: -1, Score: -1}
	for i, c := range candidates {
		score := Ratio(target, c)
		if score > best.Score {
			best = Match{Candidate: c, Score: score, Index: i}
			if score == 1 {
				break
			}
		}
	}
	return best, true
}
