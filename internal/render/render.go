// Package render turns diagnosis results and veterinary detail into HTML
// panel fragments for the web UI.
package render

import (
	"html/template"
	"strings"

	"github.com/mkotula/petscope/pkg/models"
)

// NotAvailable substitutes for any field the oracle left empty.
const NotAvailable = "Not available"

var resultTmpl = template.Must(template.New("result").Funcs(funcs).Parse(`<div class="result-panel severity-{{.Severity}}">
  <h2 class="result-summary">{{.Summary | orNA}}</h2>
  {{if .Urgent}}<p class="urgent-banner">Urgent: seek veterinary care as soon as possible.</p>{{end}}
  <ul class="conditions">
  {{range .Conditions}}  <li><span class="condition-name">{{.Name | orNA}}</span> <span class="condition-likelihood">{{.Likelihood}}%</span><p class="condition-explanation">{{.Explanation | orNA}}</p></li>
  {{end}}</ul>
  <div class="advice">
    <h3>Veterinary consultation</h3>
    <p>{{.Consult | orNA}}</p>
    <h3>Home care</h3>
    <p>{{.Homecare | orNA}}</p>
  </div>
  <p class="disclaimer">{{.Disclaimer | orNA}}</p>
</div>`))

var detailTmpl = template.Must(template.New("detail").Funcs(funcs).Parse(`<div class="detail-panel">
  <h2>About {{.Diagnosis | orNA}}</h2>
  <h3>Overview</h3>
  <p>{{.Detail.Overview | orNA}}</p>
  <h3>Symptoms</h3>
  {{list .Detail.Symptoms}}
  <h3>When to see a veterinarian</h3>
  <p>{{.Detail.WhenToSeeVet | orNA}}</p>
  <h3>Causes</h3>
  <p>{{.Detail.Causes | orNA}}</p>
  <h3>Risk factors</h3>
  {{list .Detail.RiskFactors}}
  <h3>Complications</h3>
  <p>{{.Detail.Complications | orNA}}</p>
  <h3>Prevention</h3>
  <p>{{.Detail.Prevention | orNA}}</p>
  <h3>Treatment options</h3>
  <p>{{.Detail.Treatment | orNA}}</p>
</div>`))

var errorTmpl = template.Must(template.New("error").Parse(`<div class="result-panel severity-red">
  <p class="error-message">{{.}}</p>
</div>`))

var funcs = template.FuncMap{
	"orNA": orNA,
	"list": renderList,
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// renderList renders array-typed detail fields as a <ul>, substituting
// NotAvailable for empty lists.
func renderList(items []string) template.HTML {
	if len(items) == 0 {
		return template.HTML("<p>" + NotAvailable + "</p>")
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(template.HTMLEscapeString(item))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return template.HTML(b.String())
}

type resultData struct {
	Summary    string
	Severity   models.Severity
	Urgent     bool
	Conditions []models.Condition
	Consult    string
	Homecare   string
	Disclaimer string
}

// ResultPanel renders the diagnosis panel: severity-classed container with
// either the single high-confidence condition or the top three.
func ResultPanel(result *models.DiagnosisResult) (string, error) {
	var b strings.Builder
	err := resultTmpl.Execute(&b, resultData{
		Summary:    result.Summary,
		Severity:   result.Severity(),
		Urgent:     result.Urgent,
		Conditions: result.TopConditions(),
		Consult:    result.Consult,
		Homecare:   result.Homecare,
		Disclaimer: result.Disclaimer,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// DetailPanel renders the veterinary-detail panel for the top diagnosis.
func DetailPanel(diagnosis string, detail *models.VeterinaryDetail) (string, error) {
	var b strings.Builder
	err := detailTmpl.Execute(&b, struct {
		Diagnosis string
		Detail    *models.VeterinaryDetail
	}{diagnosis, detail})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// ErrorPanel renders a user-visible error as a red panel.
func ErrorPanel(message string) string {
	var b strings.Builder
	if err := errorTmpl.Execute(&b, message); err != nil {
		return "<div class=\"result-panel severity-red\"><p class=\"error-message\">" + template.HTMLEscapeString(message) + "</p></div>"
	}
	return b.String()
}
