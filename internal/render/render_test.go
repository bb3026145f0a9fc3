package render

import (
	"strings"
	"testing"

	"github.com/mkotula/petscope/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultPanel_TopThree(t *testing.T) {
	result := &models.DiagnosisResult{
		Summary: "Top 3 possible diagnoses: Parvovirus (70%), Gastroenteritis (20%), Worms (10%)",
		Conditions: []models.Condition{
			{Name: "Worms", Likelihood: 10, Explanation: "Less likely"},
			{Name: "Parvovirus", Likelihood: 70, Explanation: "Matches symptoms"},
			{Name: "Gastroenteritis", Likelihood: 20, Explanation: "Possible"},
			{Name: "Allergy", Likelihood: 5, Explanation: "Unlikely"},
		},
		Consult:  "Immediately.",
		Homecare: "Hydration.",
	}

	html, err := ResultPanel(result)
	require.NoError(t, err)

	assert.Contains(t, html, "severity-yellow")
	assert.Contains(t, html, "Parvovirus")
	assert.Contains(t, html, "70%")
	assert.Contains(t, html, "Matches symptoms")
	assert.Contains(t, html, "Gastroenteritis")
	assert.Contains(t, html, "Worms")
	assert.NotContains(t, html, "Allergy", "only the top three render in ambiguous mode")
	assert.NotContains(t, html, "urgent-banner")
}

func TestResultPanel_UrgentIsRed(t *testing.T) {
	result := &models.DiagnosisResult{
		Summary:    "Parvovirus (85%)",
		Conditions: []models.Condition{{Name: "Parvovirus", Likelihood: 85}},
		Urgent:     true,
	}

	html, err := ResultPanel(result)
	require.NoError(t, err)

	assert.Contains(t, html, "severity-red")
	assert.Contains(t, html, "urgent-banner")
}

func TestResultPanel_SingleConditionHighConfidence(t *testing.T) {
	result := &models.DiagnosisResult{
		Summary:    "Kennel Cough (80%)",
		Conditions: []models.Condition{{Name: "Kennel Cough", Likelihood: 80}},
	}

	html, err := ResultPanel(result)
	require.NoError(t, err)

	assert.Contains(t, html, "severity-green")
	assert.Contains(t, html, "Kennel Cough")
}

func TestResultPanel_MissingAdviceSubstituted(t *testing.T) {
	result := &models.DiagnosisResult{
		Summary:    "Kennel Cough (40%)",
		Conditions: []models.Condition{{Name: "Kennel Cough", Likelihood: 40}},
	}

	html, err := ResultPanel(result)
	require.NoError(t, err)
	assert.Contains(t, html, NotAvailable)
}

func TestResultPanel_EscapesModelOutput(t *testing.T) {
	result := &models.DiagnosisResult{
		Summary:    "x",
		Conditions: []models.Condition{{Name: "<script>alert(1)</script>", Likelihood: 40}},
	}

	html, err := ResultPanel(result)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestDetailPanel_RendersListsAndScalars(t *testing.T) {
	detail := &models.VeterinaryDetail{
		Overview:    "A viral disease.",
		Symptoms:    []string{"Vomiting", "Lethargy"},
		RiskFactors: []string{"Unvaccinated puppies"},
		Treatment:   "IV fluids.",
	}

	html, err := DetailPanel("Parvovirus", detail)
	require.NoError(t, err)

	assert.Contains(t, html, "About Parvovirus")
	assert.Contains(t, html, "<li>Vomiting</li>")
	assert.Contains(t, html, "<li>Lethargy</li>")
	assert.Contains(t, html, "<li>Unvaccinated puppies</li>")
	assert.Contains(t, html, "IV fluids.")
}

func TestDetailPanel_MissingFieldsSubstituted(t *testing.T) {
	html, err := DetailPanel("Parvovirus", &models.VeterinaryDetail{})
	require.NoError(t, err)

	// Every empty scalar and list shows the placeholder.
	assert.GreaterOrEqual(t, strings.Count(html, NotAvailable), 8)
}

func TestErrorPanel(t *testing.T) {
	html := ErrorPanel("Could not reach the diagnosis service.")
	assert.Contains(t, html, "severity-red")
	assert.Contains(t, html, "Could not reach the diagnosis service.")
}
