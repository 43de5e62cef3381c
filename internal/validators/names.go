// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"strings"

	"docverify/internal/detector"
	"docverify/internal/extract"
	"docverify/internal/fuzzy"
)

// WindowMatch compares expected against every window of minSize..maxSize
// tokens and accepts the best one when its ratio exceeds threshold. With
// allowContained the best window is also accepted when it contains every
// expected word.
func WindowMatch(tokens []string, minSize, maxSize int, threshold float64, allowContained bool) Strategy {
	return func(expected string) detector.MatchDecision {
		best, ok := fuzzy.BestMatch(expected, extract.Windows(tokens, minSize, maxSize))
		if !ok {
			return detector.NotFound(0)
		}
		return judgeCandidate(expected, best.Candidate, best.Score, threshold, allowContained)
	}
}

// InclusiveWindowMatch slides windows sized from the expected word count up
// to slack extra words and accepts the best window scoring at least
// threshold.
func InclusiveWindowMatch(tokens []string, slack int, threshold float64) Strategy {
	return func(expected string) detector.MatchDecision {
		n := len(strings.Fields(expected))
		best, ok := fuzzy.BestMatch(expected, extract.Windows(tokens, n, n+slack))
		if !ok {
			return detector.NotFound(0)
		}
		if best.Score >= threshold {
			return detector.Matched(detector.MethodFuzzy, best.Candidate, best.Score)
		}
		return detector.NotFound(best.Score)
	}
}

// AnchoredMatch judges the name found after an anchor phrase.
func AnchoredMatch(candidate string, threshold float64) Strategy {
	return func(expected string) detector.MatchDecision {
		if candidate == "" {
			return detector.NotFound(0)
		}
		return judgeCandidate(expected, candidate, fuzzy.Ratio(expected, candidate), threshold, true)
	}
}

// TokenSubset accepts when every expected word occurs somewhere in text.
// The similarity is the fraction of words present.
func TokenSubset(text string) Strategy {
	return func(expected string) detector.MatchDecision {
		words := strings.Fields(expected)
		if len(words) == 0 {
			return detector.NotFound(0)
		}
		present := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				present++
			}
		}
		coverage := float64(present) / float64(len(words))
		if present == len(words) {
			return detector.Matched(detector.MethodContained, expected, coverage)
		}
		return detector.NotFound(coverage)
	}
}

func judgeCandidate(expected, candidate string, score, threshold float64, allowContained bool) detector.MatchDecision {
	if score > threshold {
		return detector.Matched(detector.MethodFuzzy, candidate, score)
	}
	if allowContained && containsAll(candidate, strings.Fields(expected)) {
		return detector.Matched(detector.MethodContained, candidate, score)
	}
	return detector.NotFound(score)
}

func containsAll(text string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}
