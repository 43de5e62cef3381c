// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"strings"

	"docverify/internal/detector"
	"docverify/internal/fuzzy"
)

// Strategy decides whether expected is present. Strategies never fail;
// a miss is a NotFound decision carrying the best similarity seen.
type Strategy func(expected string) detector.MatchDecision

// FirstMatch runs strategies in order and returns the first positive
// decision. When none succeeds it returns the miss with the highest
// similarity. An empty expected value is a miss without running anything.
func FirstMatch(expected string, strategies ...Strategy) detector.MatchDecision {
	best := detector.NotFound(0)
	if strings.TrimSpace(expected) == "" {
		return best
	}
	for _, s := range strategies {
		d := s(expected)
		if d.Found {
			return d
		}
		if d.Similarity > best.Similarity {
			best = detector.NotFound(d.Similarity)
		}
	}
	return best
}

// ExactIn matches a candidate equal to expected.
func ExactIn(candidates []string) Strategy {
	return func(expected string) detector.MatchDecision {
		for _, c := range candidates {
			if c == expected {
				return detector.Matched(detector.MethodExact, c, 1)
			}
		}
		return detector.NotFound(0)
	}
}

// ContainedIn matches a candidate that contains expected or is contained
// in it.
func ContainedIn(candidates []string) Strategy {
	return func(expected string) detector.MatchDecision {
		for _, c := range candidates {
			if c == "" {
				continue
			}
			if strings.Contains(c, expected) || strings.Contains(expected, c) {
				return detector.Matched(detector.MethodContained, c, fuzzy.Ratio(expected, c))
			}
		}
		return detector.NotFound(0)
	}
}

// FuzzyIn matches the first candidate whose ratio exceeds threshold.
func FuzzyIn(candidates []string, threshold float64) Strategy {
	return func(expected string) detector.MatchDecision {
		best := 0.0
		for _, c := range candidates {
			score := fuzzy.Ratio(expected, c)
			if score > threshold {
				return detector.Matched(detector.MethodFuzzy, c, score)
			}
			if score > best {
				best = score
			}
		}
		return detector.NotFound(best)
	}
}

// PrefixIn matches a candidate whose length is within lengthTolerance of
// expected and that shares its first prefixLen characters.
func PrefixIn(candidates []string, prefixLen, lengthTolerance int) Strategy {
	return func(expected string) detector.MatchDecision {
		if len(expected) < prefixLen {
			return detector.NotFound(0)
		}
		prefix := expected[:prefixLen]
		for _, c := range candidates {
			if abs(len(c)-len(expected)) <= lengthTolerance && strings.HasPrefix(c, prefix) {
				return detector.Matched(detector.MethodPrefix, c, fuzzy.Ratio(expected, c))
			}
		}
		return detector.NotFound(0)
	}
}

// DigitToleranceIn matches a candidate of the same length that differs from
// expected in at most maxDiff positions.
func DigitToleranceIn(candidates []string, maxDiff int) Strategy {
	return func(expected string) detector.MatchDecision {
		for _, c := range candidates {
			if len(c) != len(expected) {
				continue
			}
			diff := 0
			for i := 0; i < len(c); i++ {
				if c[i] != expected[i] {
					diff++
				}
			}
			if diff <= maxDiff {
				method := detector.MethodFuzzy
				if diff == 0 {
					method = detector.MethodExact
				}
				return detector.Matched(method, c, 1-float64(diff)/float64(len(c)))
			}
		}
		return detector.NotFound(0)
	}
}

// ProximityIn matches a numeric chunk found near other text that equals
// expected.
func ProximityIn(candidates []string) Strategy {
	return func(expected string) detector.MatchDecision {
		for _, c := range candidates {
			if c == expected {
				return detector.Matched(detector.MethodProximity, c, 1)
			}
		}
		return detector.NotFound(0)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
