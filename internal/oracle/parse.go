package oracle

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mkotula/petscope/pkg/models"
)

// Models sometimes wrap the requested JSON in prose or code fences despite
// instructions. Grab the outermost object before giving up.
var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// extractJSON returns the raw content if it is a JSON object, otherwise the
// outermost {...} block embedded in it.
func extractJSON(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, nil
	}
	if match := jsonObjectPattern.FindString(content); match != "" {
		return match, nil
	}
	return "", fmt.Errorf("%w: no JSON object found", ErrBadResponse)
}

// decodeDiagnosis parses the model's diagnosis reply into a DiagnosisResult,
// sorting conditions by likelihood and deriving the summary line from the
// structured list rather than any text the model produced.
func decodeDiagnosis(content string) (*models.DiagnosisResult, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Conditions []models.Condition `json:"conditions"`
		Urgent     bool               `json:"urgent"`
		Consult    string             `json:"consult"`
		Homecare   string             `json:"homecare"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(payload.Conditions) == 0 {
		return nil, fmt.Errorf("%w: no conditions in reply", ErrBadResponse)
	}

	models.SortConditions(payload.Conditions)

	return &models.DiagnosisResult{
		Summary:    models.BuildSummary(payload.Conditions),
		Conditions: payload.Conditions,
		Urgent:     payload.Urgent,
		Consult:    payload.Consult,
		Homecare:   payload.Homecare,
	}, nil
}

// decodeDetail parses the veterinary-detail reply. The requested keys contain
// spaces ("Risk factors", "When to see a veterinarian") and models vary the
// casing, so keys are matched with letters only. Symptoms and risk factors
// may come back as either a string or a list.
func decodeDetail(content string) (*models.VeterinaryDetail, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	fields := make(map[string]any, len(payload))
	for k, v := range payload {
		fields[normalizeKey(k)] = v
	}

	return &models.VeterinaryDetail{
		Overview:      stringField(fields, "overview"),
		Symptoms:      listField(fields, "symptoms"),
		WhenToSeeVet:  stringField(fields, "whentoseeaveterinarian"),
		Causes:        stringField(fields, "causes"),
		RiskFactors:   listField(fields, "riskfactors"),
		Complications: stringField(fields, "complications"),
		Prevention:    stringField(fields, "prevention"),
		Treatment:     stringField(fields, "treatmentoptions"),
	}, nil
}

// normalizeKey lowercases and strips everything but letters, so "Risk
// factors", "risk_factors" and "RiskFactors" all match.
func normalizeKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		// Scalar field delivered as a list: join it.
		return strings.Join(stringSlice(v), " ")
	default:
		return ""
	}
}

func listField(fields map[string]any, key string) []string {
	switch v := fields[key].(type) {
	case []any:
		return stringSlice(v)
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	default:
		return nil
	}
}

func stringSlice(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
