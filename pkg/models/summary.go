package models

import (
	"fmt"
	"strings"
)

// top3Prefix labels an ambiguous summary string.
const top3Prefix = "Top 3 possible diagnoses:"

// noDiagnosis is the summary for an empty condition list.
const noDiagnosis = "No diagnosis available"

// BuildSummary formats the human-readable diagnosis line. With three or more
// conditions it lists the top three; with fewer it names the single most
// likely condition.
func BuildSummary(conditions []Condition) string {
	if len(conditions) == 0 {
		return noDiagnosis
	}

	ranked := make([]Condition, len(conditions))
	copy(ranked, conditions)
	SortConditions(ranked)

	if len(ranked) >= 3 {
		parts := make([]string, 3)
		for i, c := range ranked[:3] {
			parts[i] = fmt.Sprintf("%s (%d%%)", c.Name, c.Likelihood)
		}
		return fmt.Sprintf("%s %s", top3Prefix, strings.Join(parts, ", "))
	}

	return fmt.Sprintf("%s (%d%%)", ranked[0].Name, ranked[0].Likelihood)
}

// ParseSummaryTopName extracts the top condition name from a summary string.
// It handles both forms produced by BuildSummary: a single "Name (70%)" and
// "Top 3 possible diagnoses: A (70%), B (20%), C (10%)", where the first name
// before the likelihood parenthesis is taken. Returns "" when the summary
// carries no diagnosis.
func ParseSummaryTopName(summary string) string {
	s := strings.TrimSpace(summary)
	if s == "" || strings.EqualFold(s, noDiagnosis) {
		return ""
	}

	if rest, ok := strings.CutPrefix(s, top3Prefix); ok {
		s = rest
	}

	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
