package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotula/petscope/internal/oracle"
	"github.com/mkotula/petscope/internal/questions"
	"github.com/mkotula/petscope/internal/wizard"
	"github.com/mkotula/petscope/pkg/models"
)

func init() {
	color.NoColor = true
}

func TestCollectAnswers(t *testing.T) {
	// Species and breed by option number, sex by text, optionals skipped.
	input := strings.NewReader(strings.Join([]string{
		"1",
		"2",
		"3 years",
		"Male",
		"",
		"Vomiting since yesterday",
		"",
	}, "\n") + "\n")

	session := wizard.NewSession()
	var out bytes.Buffer
	err := collectAnswers(session, input, &out)

	require.NoError(t, err)
	assert.True(t, session.Done())

	responses := session.Responses()
	assert.Equal(t, "Dog", responses[questions.FieldSpecies])
	assert.Equal(t, "Labrador Retriever", responses[questions.FieldBreed])
	assert.Equal(t, "3 years", responses[questions.FieldAge])
	assert.Equal(t, "Male", responses[questions.FieldSex])
	assert.Equal(t, "Vomiting since yesterday", responses[questions.FieldSymptoms])

	// Select questions list numbered options.
	assert.Contains(t, out.String(), "1) Dog")
	assert.Contains(t, out.String(), "1) Mixed/Unknown")
}

func TestCollectAnswersReprompts(t *testing.T) {
	// Empty answer to the first required question, then a valid run.
	input := strings.NewReader(strings.Join([]string{
		"",
		"Cat",
		"1",
		"5 years",
		"Female (spayed)",
		"",
		"Sneezing",
		"",
	}, "\n") + "\n")

	session := wizard.NewSession()
	var out bytes.Buffer
	err := collectAnswers(session, input, &out)

	require.NoError(t, err)
	assert.True(t, session.Done())
	assert.Contains(t, out.String(), "species is required")
	assert.Equal(t, "Cat", session.Responses()[questions.FieldSpecies])
	assert.Equal(t, questions.MixedUnknown, session.Responses()[questions.FieldBreed])
}

func TestCollectAnswersInputClosed(t *testing.T) {
	session := wizard.NewSession()
	var out bytes.Buffer

	err := collectAnswers(session, strings.NewReader("Dog\n"), &out)

	assert.Error(t, err)
	assert.False(t, session.Done())
}

func TestPrintResult(t *testing.T) {
	result := &models.DiagnosisResult{
		Summary: "Top 3 possible diagnoses: Parvovirus (70%), Gastroenteritis (20%), Dietary indiscretion (10%)",
		Conditions: []models.Condition{
			{Name: "Parvovirus", Likelihood: 70, Explanation: "Acute vomiting in an unvaccinated puppy."},
			{Name: "Gastroenteritis", Likelihood: 20},
			{Name: "Dietary indiscretion", Likelihood: 10},
		},
		Urgent:     true,
		Consult:    "Immediately.",
		Homecare:   "None, this needs a clinic.",
		Disclaimer: oracle.Disclaimer,
	}
	detail := &models.VeterinaryDetail{
		Overview: "A highly contagious viral disease.",
		Symptoms: []string{"Vomiting", "Bloody diarrhea"},
	}

	var out bytes.Buffer
	printResult(&out, result, detail)

	text := out.String()
	assert.Contains(t, text, "Urgent: seek veterinary care")
	assert.Contains(t, text, "Parvovirus (70%)")
	assert.Contains(t, text, "WHEN TO CONSULT A VET")
	assert.Contains(t, text, "OVERVIEW")
	assert.Contains(t, text, "- Bloody diarrhea")
	assert.Contains(t, text, oracle.Disclaimer)
}

func TestPrintResultSkipsEmptyDetailSections(t *testing.T) {
	result := &models.DiagnosisResult{
		Summary:    "Mild dietary upset",
		Conditions: []models.Condition{{Name: "Mild dietary upset", Likelihood: 85}},
	}

	var out bytes.Buffer
	printResult(&out, result, &models.VeterinaryDetail{Overview: "Short-lived stomach upset."})

	text := out.String()
	assert.Contains(t, text, "OVERVIEW")
	assert.NotContains(t, text, "RISK FACTORS")
	assert.NotContains(t, text, "TREATMENT OPTIONS")
}

func TestDiagnoseError(t *testing.T) {
	err := diagnoseError(oracle.ErrModelUnavailable)
	assert.Contains(t, err.Error(), "currently unavailable")

	err = diagnoseError(oracle.ErrBadResponse)
	assert.Contains(t, err.Error(), "failed to parse")
}
