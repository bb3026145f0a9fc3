package oracle

import (
	"fmt"
	"strings"

	"github.com/mkotula/petscope/internal/questions"
)

// diagnosisPrompt builds the single-turn prompt for the differential
// diagnosis exchange. Fields are listed in intake order so prompts are
// deterministic for identical responses.
func diagnosisPrompt(responses map[string]string) string {
	var b strings.Builder

	b.WriteString("You are an expert veterinary diagnostic AI. Provide a JSON response with ranked possible diagnoses for this pet, their likelihood (%), explanation, urgency (true/false), veterinary consultation advice, and home care suggestions based on this data:\n")

	for _, q := range questions.Sequence() {
		value, ok := responses[q.Field]
		if !ok || value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", fieldLabel(q.Field), value)
	}

	b.WriteString(`
Return a valid JSON object with fields: conditions (list of {name, likelihood, explanation}), urgent (bool), consult (str), homecare (str). Focus on common conditions for the specified species and breed. Ensure the response is strictly JSON, with no additional text or code blocks.
`)

	return b.String()
}

// detailsPrompt builds the prompt for the veterinary-detail exchange.
func detailsPrompt(diagnosis, species, breed string) string {
	return fmt.Sprintf(`Provide a JSON object with detailed veterinary information about %q in %s (breed: %s) using general veterinary knowledge. Include these fields:
- Overview (str)
- Symptoms (list or str)
- When to see a veterinarian (str)
- Causes (str)
- Risk factors (list or str)
- Complications (str)
- Prevention (str)
- Treatment options (str)
Focus on species-specific and breed-specific considerations where relevant.
Return a valid JSON object, with no additional text or code blocks.`, diagnosis, species, breed)
}

// fieldLabel capitalizes a field name for the prompt, e.g. "medical_history"
// becomes "Medical history".
func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
