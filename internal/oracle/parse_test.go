package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_Plain(t *testing.T) {
	raw, err := extractJSON(`{"a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, raw)
}

func TestExtractJSON_CodeFence(t *testing.T) {
	raw, err := extractJSON("```json\n{\"a\": 1}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, raw)
}

func TestExtractJSON_EmbeddedInProse(t *testing.T) {
	raw, err := extractJSON(`Sure! Here you go: {"a": 1} Hope that helps.`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, raw)
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, err := extractJSON("no json here")
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestDecodeDiagnosis_DerivesSummaryFromConditions(t *testing.T) {
	result, err := decodeDiagnosis(`{
		"diagnosis": "summary text the model made up",
		"conditions": [{"name": "Kennel Cough", "likelihood": 60, "explanation": "Dry cough"}],
		"urgent": false,
		"consult": "Within a few days.",
		"homecare": "Rest and humid air."
	}`)
	require.NoError(t, err)
	assert.Equal(t, "Kennel Cough (60%)", result.Summary)
	assert.False(t, result.Urgent)
}

func TestDecodeDiagnosis_EmptyConditions(t *testing.T) {
	_, err := decodeDiagnosis(`{"conditions": [], "urgent": false}`)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestDecodeDiagnosis_InvalidJSON(t *testing.T) {
	_, err := decodeDiagnosis(`{"conditions": [}`)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestDecodeDetail_KeyVariants(t *testing.T) {
	detail, err := decodeDetail(`{
		"overview": "An itchy skin condition.",
		"symptoms": "Scratching",
		"when_to_see_a_veterinarian": "If it persists for a week.",
		"causes": "Mites.",
		"RiskFactors": ["Young animals"],
		"complications": "Secondary infection.",
		"prevention": "Regular parasite control.",
		"Treatment Options": "Medicated baths."
	}`)
	require.NoError(t, err)

	assert.Equal(t, "An itchy skin condition.", detail.Overview)
	assert.Equal(t, []string{"Scratching"}, detail.Symptoms, "string symptom becomes single-item list")
	assert.Equal(t, "If it persists for a week.", detail.WhenToSeeVet)
	assert.Equal(t, []string{"Young animals"}, detail.RiskFactors)
	assert.Equal(t, "Medicated baths.", detail.Treatment)
}

func TestDecodeDetail_MissingFields(t *testing.T) {
	detail, err := decodeDetail(`{"Overview": "Short."}`)
	require.NoError(t, err)

	assert.Equal(t, "Short.", detail.Overview)
	assert.Empty(t, detail.Symptoms)
	assert.Empty(t, detail.Causes)
	assert.Empty(t, detail.RiskFactors)
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Risk factors", "riskfactors"},
		{"risk_factors", "riskfactors"},
		{"When to see a veterinarian", "whentoseeaveterinarian"},
		{"Treatment options", "treatmentoptions"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeKey(tt.in))
	}
}
