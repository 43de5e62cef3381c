// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cedula validates photos or scans of the Colombian national ID
// card (cédula de ciudadanía).
package cedula

import (
	"context"
	"strings"

	"docverify/internal/detector"
	"docverify/internal/extract"
	"docverify/internal/fuzzy"
	"docverify/internal/validators"
)

// DocumentType is the report type of this validator.
const DocumentType = "cedula"

// Config tunes the cédula checks.
type Config struct {
	validators.Common `yaml:",inline"`

	// ID number candidates shorter than this are ignored.
	MinIDLength       int     `yaml:"min_id_length"`
	IDFuzzyThreshold  float64 `yaml:"id_fuzzy_threshold"`
	IDPrefixLength    int     `yaml:"id_prefix_length"`
	IDLengthTolerance int     `yaml:"id_length_tolerance"`

	// Expected name words shorter than this are not looked up.
	NameMinWordLength int     `yaml:"name_min_word_length"`
	NameWordThreshold float64 `yaml:"name_word_threshold"`
	// The name is accepted when the fraction of words found exceeds
	// NameCoverage or at least NameMinWords words were found.
	NameCoverage float64 `yaml:"name_coverage"`
	NameMinWords int     `yaml:"name_min_words"`

	Keywords []extract.Keyword `yaml:"keywords"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		Common: validators.Common{
			Languages:     []string{"spa", "eng", "spa+eng"},
			MinTextLength: 10,
			CheckDate:     false,
			MaxAgeDays:    30,
		},
		MinIDLength:       6,
		IDFuzzyThreshold:  0.65,
		IDPrefixLength:    4,
		IDLengthTolerance: 2,
		NameMinWordLength: 3,
		NameWordThreshold: 0.6,
		NameCoverage:      0.25,
		NameMinWords:      1,
		Keywords: []extract.Keyword{
			{Flag: "republicaColombia", All: []string{"republica", "colombia"}},
			{Flag: "cedulaCiudadania", All: []string{"cedula", "ciudadania"}},
			{Flag: "registraduria", Any: []string{"registrador", "registraduria"}},
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if err := validators.CheckThreshold("cedula id_fuzzy_threshold", c.IDFuzzyThreshold); err != nil {
		return err
	}
	if err := validators.CheckThreshold("cedula name_word_threshold", c.NameWordThreshold); err != nil {
		return err
	}
	return validators.CheckThreshold("cedula name_coverage", c.NameCoverage)
}

// Validator checks national ID cards.
type Validator struct {
	validators.Base
	cfg Config
}

// NewValidator creates a cédula validator.
func NewValidator(cfg Config, recognizer detector.Recognizer) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		Base: validators.NewBase(DocumentType, cfg.Common, recognizer),
		cfg:  cfg,
	}, nil
}

// Validate recognizes the card at path and checks it.
func (v *Validator) Validate(ctx context.Context, path string, expected detector.Expected) *detector.Report {
	return v.Run(ctx, path, expected, v.ValidateContent)
}

// ValidateContent checks recognized text.
func (v *Validator) ValidateContent(rec detector.Recognition, expected detector.Expected) *detector.Report {
	report, doc := v.Begin(rec)

	candidates := extract.Unique(extract.LooseNumbers(doc.Raw, v.cfg.MinIDLength))
	report.IDCandidates = candidates

	expectedID := extract.Digits(expected.IDNumber)
	if expectedID == "" {
		v.Skip(report, "idNumber")
	}
	report.SetID(validators.FirstMatch(expectedID,
		validators.ExactIn(candidates),
		validators.ContainedIn(candidates),
		validators.FuzzyIn(candidates, v.cfg.IDFuzzyThreshold),
		validators.PrefixIn(candidates, v.cfg.IDPrefixLength, v.cfg.IDLengthTolerance),
	))

	if validators.Blank(expected.Name) {
		v.Skip(report, "name")
	}
	name, words := v.matchName(expected.Name, doc)
	report.SetName(name)
	report.Debug["nameWords"] = words

	report.KeywordFlags = extract.Flags(doc.Normalized, v.cfg.Keywords)
	v.ApplyDate(report, doc)
	return report
}

// WordResult is the lookup outcome of one expected name word.
type WordResult struct {
	Word   string          `json:"word" yaml:"word"`
	Found  bool            `json:"found" yaml:"found"`
	Method detector.Method `json:"method" yaml:"method"`
}

// matchName looks up every expected word on its own: verbatim, by its
// first four letters, or fuzzily against the words of the card.
func (v *Validator) matchName(expectedName string, doc *validators.Document) (detector.MatchDecision, []WordResult) {
	var words []string
	for _, w := range validators.NameTokens(expectedName) {
		if len(w) >= v.cfg.NameMinWordLength {
			words = append(words, w)
		}
	}
	results := make([]WordResult, 0, len(words))
	if len(words) == 0 {
		return detector.NotFound(0), results
	}

	var found []string
	method := detector.MethodExact
	for _, w := range words {
		m := v.lookupWord(w, doc)
		results = append(results, WordResult{Word: w, Found: m != detector.MethodNone, Method: m})
		if m == detector.MethodNone {
			continue
		}
		found = append(found, w)
		method = weaker(method, m)
	}

	coverage := float64(len(found)) / float64(len(words))
	if len(found) == 0 || (coverage <= v.cfg.NameCoverage && len(found) < v.cfg.NameMinWords) {
		return detector.NotFound(coverage), results
	}
	return detector.Matched(method, strings.Join(found, " "), coverage), results
}

func (v *Validator) lookupWord(word string, doc *validators.Document) detector.Method {
	if strings.Contains(doc.Normalized, word) {
		return detector.MethodExact
	}
	if len(word) >= 4 && strings.Contains(doc.Normalized, word[:4]) {
		return detector.MethodPrefix
	}
	for _, tok := range doc.Tokens {
		if len(tok) >= v.cfg.NameMinWordLength && fuzzy.Ratio(word, tok) > v.cfg.NameWordThreshold {
			return detector.MethodFuzzy
		}
	}
	return detector.MethodNone
}

var strength = map[detector.Method]int{
	detector.MethodExact:  3,
	detector.MethodPrefix: 2,
	detector.MethodFuzzy:  1,
}

func weaker(a, b detector.Method) detector.Method {
	if strength[b] < strength[a] {
		return b
	}
	return a
}
