package models

import (
	"encoding/json"
	"sort"
)

// Severity represents the urgency bucket of a diagnosis result
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityYellow Severity = "yellow"
	SeverityGreen  Severity = "green"
)

// DisplayMode selects how a result is presented
type DisplayMode string

const (
	// ModeHighConfidence shows the single top diagnosis.
	ModeHighConfidence DisplayMode = "high_confidence"
	// ModeTopThree shows the three most likely diagnoses.
	ModeTopThree DisplayMode = "top_three"
)

// Condition is a single ranked diagnosis returned by the oracle.
type Condition struct {
	Name        string `json:"name"`
	Likelihood  int    `json:"likelihood"` // 0-100
	Explanation string `json:"explanation,omitempty"`
}

// UnmarshalJSON accepts fractional likelihood values from the model and
// clamps them into the 0-100 range.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string      `json:"name"`
		Likelihood  json.Number `json:"likelihood"`
		Explanation string      `json:"explanation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	likelihood := 0
	if f, err := raw.Likelihood.Float64(); err == nil {
		likelihood = int(f)
	}
	if likelihood < 0 {
		likelihood = 0
	}
	if likelihood > 100 {
		likelihood = 100
	}

	c.Name = raw.Name
	c.Likelihood = likelihood
	c.Explanation = raw.Explanation
	return nil
}

// DiagnosisResult is the structured outcome of a diagnosis exchange.
type DiagnosisResult struct {
	Summary    string      `json:"diagnosis"`
	Conditions []Condition `json:"conditions"`
	Urgent     bool        `json:"urgent"`
	Consult    string      `json:"consult"`
	Homecare   string      `json:"homecare"`
	Disclaimer string      `json:"disclaimer,omitempty"`
}

// VeterinaryDetail holds supplementary information about a single diagnosis.
type VeterinaryDetail struct {
	Overview      string   `json:"overview"`
	Symptoms      []string `json:"symptoms"`
	WhenToSeeVet  string   `json:"when_to_see_veterinarian"`
	Causes        string   `json:"causes"`
	RiskFactors   []string `json:"risk_factors"`
	Complications string   `json:"complications"`
	Prevention    string   `json:"prevention"`
	Treatment     string   `json:"treatment_options"`
}

// SortConditions orders conditions by descending likelihood, in place.
func SortConditions(conditions []Condition) {
	sort.SliceStable(conditions, func(i, j int) bool {
		return conditions[i].Likelihood > conditions[j].Likelihood
	})
}

// Mode returns the display mode for the result. Three or more conditions
// means the diagnosis is ambiguous and the top three are shown; fewer means
// a single high-confidence diagnosis.
func (r *DiagnosisResult) Mode() DisplayMode {
	if len(r.Conditions) >= 3 {
		return ModeTopThree
	}
	return ModeHighConfidence
}

// TopConditions returns the conditions to display for the current mode,
// ordered by descending likelihood.
func (r *DiagnosisResult) TopConditions() []Condition {
	ranked := make([]Condition, len(r.Conditions))
	copy(ranked, r.Conditions)
	SortConditions(ranked)

	if r.Mode() == ModeTopThree {
		return ranked[:3]
	}
	if len(ranked) > 1 {
		return ranked[:1]
	}
	return ranked
}

// TopCondition returns the highest-likelihood condition, or nil if none.
func (r *DiagnosisResult) TopCondition() *Condition {
	var top *Condition
	for i := range r.Conditions {
		if top == nil || r.Conditions[i].Likelihood > top.Likelihood {
			top = &r.Conditions[i]
		}
	}
	return top
}

// TopConditionName returns the name of the most likely condition. It prefers
// the structured condition list and only falls back to parsing the summary
// string for legacy payloads that carry no conditions.
func (r *DiagnosisResult) TopConditionName() string {
	if top := r.TopCondition(); top != nil {
		return top.Name
	}
	return ParseSummaryTopName(r.Summary)
}

// Severity classifies the result into one of three buckets: urgent results
// are always red; otherwise a top likelihood in [50,75] is yellow and
// everything else is green.
func (r *DiagnosisResult) Severity() Severity {
	if r.Urgent {
		return SeverityRed
	}
	if top := r.TopCondition(); top != nil && top.Likelihood >= 50 && top.Likelihood <= 75 {
		return SeverityYellow
	}
	return SeverityGreen
}
