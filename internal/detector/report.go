// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"encoding/json"

	"docverify/internal/failure"
)

// Keys lists the report fields callers rely on. Every one of them is
// serialized for every report.
var Keys = []string{
	"nameFound",
	"nameSimilarity",
	"idFound",
	"detectedDate",
	"dateValid",
	"daysSinceIssue",
	"riskClassFound",
	"affiliationStatus",
	"keywordFlags",
	"documentSubtype",
	"text",
}

// Report is the outcome of validating one document.
type Report struct {
	DocumentType      string `json:"documentType" yaml:"documentType"`
	Text              string `json:"text" yaml:"text"`
	NormalizedText    string `json:"normalizedText" yaml:"normalizedText"`
	Language          string `json:"language" yaml:"language"`
	RecognitionMethod string `json:"recognitionMethod" yaml:"recognitionMethod"`

	NameFound      bool          `json:"nameFound" yaml:"nameFound"`
	NameSimilarity float64       `json:"nameSimilarity" yaml:"nameSimilarity"`
	NameMatch      MatchDecision `json:"nameMatch" yaml:"nameMatch"`

	IDFound      bool          `json:"idFound" yaml:"idFound"`
	IDMatch      MatchDecision `json:"idMatch" yaml:"idMatch"`
	IDCandidates []string      `json:"idCandidates" yaml:"idCandidates"`

	DetectedDate   *string `json:"detectedDate" yaml:"detectedDate"`
	DateValid      bool    `json:"dateValid" yaml:"dateValid"`
	DaysSinceIssue *int    `json:"daysSinceIssue" yaml:"daysSinceIssue"`

	RiskClassFound    *int            `json:"riskClassFound" yaml:"riskClassFound"`
	RiskCompliant     bool            `json:"riskCompliant" yaml:"riskCompliant"`
	RiskConfidence    float64         `json:"riskConfidence" yaml:"riskConfidence"`
	AffiliationStatus *string         `json:"affiliationStatus" yaml:"affiliationStatus"`
	KeywordFlags      map[string]bool `json:"keywordFlags" yaml:"keywordFlags"`
	DocumentSubtype   *string         `json:"documentSubtype" yaml:"documentSubtype"`

	TransporterCodeFound      bool    `json:"transporterCodeFound" yaml:"transporterCodeFound"`
	TransporterNameFound      bool    `json:"transporterNameFound" yaml:"transporterNameFound"`
	TransporterNameSimilarity float64 `json:"transporterNameSimilarity" yaml:"transporterNameSimilarity"`

	Debug     map[string]interface{} `json:"debug" yaml:"debug"`
	Error     *string                `json:"error" yaml:"error"`
	ErrorKind *string                `json:"errorKind" yaml:"errorKind"`
}

// NewReport returns a report with every field at its negative default.
func NewReport(documentType string) *Report {
	return &Report{
		DocumentType: documentType,
		NameMatch:    NotFound(0),
		IDMatch:      NotFound(0),
		IDCandidates: []string{},
		KeywordFlags: map[string]bool{},
		Debug:        map[string]interface{}{},
	}
}

// SetName records the name decision.
func (r *Report) SetName(d MatchDecision) {
	r.NameMatch = d
	r.NameFound = d.Found
	r.NameSimilarity = d.Similarity
}

// SetID records the ID number decision.
func (r *Report) SetID(d MatchDecision) {
	r.IDMatch = d
	r.IDFound = d.Found
}

// SetDate records a detected issue date and its age.
func (r *Report) SetDate(date string, days int, valid bool) {
	r.DetectedDate = &date
	r.DaysSinceIssue = &days
	r.DateValid = valid
}

// SetError marks the report as degraded.
func (r *Report) SetError(err error) {
	if err == nil {
		return
	}
	c := failure.Classify(err)
	msg := c.Error()
	kind := string(c.Kind)
	r.Error = &msg
	r.ErrorKind = &kind
}

// Failed reports whether the document could not be processed.
func (r *Report) Failed() bool {
	return r.Error != nil
}

// Verdict is true when the identity fields that apply to the document were
// all found.
func (r *Report) Verdict() bool {
	if r.Failed() || !r.NameFound || !r.IDFound {
		return false
	}
	if r.DocumentType == "formato" {
		return r.TransporterCodeFound
	}
	return true
}

// ToMap returns the report as its JSON object.
func (r *Report) ToMap() (map[string]interface{}, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
