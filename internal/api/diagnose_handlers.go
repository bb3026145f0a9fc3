package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/mkotula/petscope/internal/oracle"
	"github.com/mkotula/petscope/internal/questions"
	"github.com/mkotula/petscope/internal/render"
	"github.com/mkotula/petscope/pkg/models"
)

// User-visible error messages for oracle failures.
const (
	msgModelUnavailable = "The AI model is currently unavailable due to high demand. Please try again later."
	msgBadResponse      = "Failed to parse AI response. Please try again."
	msgConnectionError  = "Could not reach the diagnosis service. Please try again."
)

type panels struct {
	Result string `json:"result"`
	Detail string `json:"detail,omitempty"`
}

// diagnoseResponse is the combined outcome of the two oracle exchanges.
type diagnoseResponse struct {
	Diagnosis  string                   `json:"diagnosis"`
	Conditions []models.Condition       `json:"conditions"`
	Urgent     bool                     `json:"urgent"`
	Consult    string                   `json:"consult"`
	Homecare   string                   `json:"homecare"`
	Disclaimer string                   `json:"disclaimer"`
	Severity   models.Severity          `json:"severity"`
	Mode       models.DisplayMode       `json:"mode"`
	Detail     *models.VeterinaryDetail `json:"veterinary_details,omitempty"`
	Panels     panels                   `json:"panels"`
}

// runDiagnosis performs the two sequential exchanges: full responses to the
// diagnosis endpoint, then the top diagnosis name to the detail endpoint.
// Both must succeed before anything is rendered.
func (s *Server) runDiagnosis(ctx context.Context, responses map[string]string) (*diagnoseResponse, error) {
	result, err := s.oracle.Diagnose(ctx, responses)
	if err != nil {
		return nil, err
	}

	var detail *models.VeterinaryDetail
	top := result.TopConditionName()
	if top != "" {
		detail, err = s.oracle.VeterinaryDetails(ctx, top,
			responses[questions.FieldSpecies], responses[questions.FieldBreed])
		if err != nil {
			return nil, err
		}
	}

	resultPanel, err := render.ResultPanel(result)
	if err != nil {
		return nil, err
	}

	resp := &diagnoseResponse{
		Diagnosis:  result.Summary,
		Conditions: result.Conditions,
		Urgent:     result.Urgent,
		Consult:    result.Consult,
		Homecare:   result.Homecare,
		Disclaimer: result.Disclaimer,
		Severity:   result.Severity(),
		Mode:       result.Mode(),
		Detail:     detail,
		Panels:     panels{Result: resultPanel},
	}
	if detail != nil {
		detailPanel, err := render.DetailPanel(top, detail)
		if err != nil {
			return nil, err
		}
		resp.Panels.Detail = detailPanel
	}
	return resp, nil
}

// writeOracleError maps oracle failures to user-visible messages. Error
// responses always carry the most severe category and a red panel so the
// client clears any previous result.
func (s *Server) writeOracleError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := msgConnectionError

	switch {
	case errors.Is(err, oracle.ErrModelUnavailable):
		status = http.StatusServiceUnavailable
		message = msgModelUnavailable
	case errors.Is(err, oracle.ErrBadResponse):
		message = msgBadResponse
	}

	writeJSON(w, status, map[string]any{
		"error":    message,
		"severity": models.SeverityRed,
		"panel":    render.ErrorPanel(message),
	})
}

// handleDiagnose accepts a full response set directly, bypassing the wizard.
// Required fields are enforced here too: nothing incomplete reaches the
// oracle.
func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var responses map[string]string
	if err := readJSON(r, &responses); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for _, q := range questions.Sequence() {
		if q.Required && responses[q.Field] == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error": q.Field + " is required",
				"field": q.Field,
				"valid": false,
			})
			return
		}
	}

	resp, err := s.runDiagnosis(r.Context(), responses)
	if err != nil {
		s.writeOracleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVeterinaryDetails fetches detail for a single diagnosis, mirroring
// the upstream contract.
func (s *Server) handleVeterinaryDetails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Diagnosis string `json:"diagnosis"`
		Species   string `json:"species"`
		Breed     string `json:"breed"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Diagnosis == "" {
		writeError(w, http.StatusBadRequest, "diagnosis is required")
		return
	}

	detail, err := s.oracle.VeterinaryDetails(r.Context(), req.Diagnosis, req.Species, req.Breed)
	if err != nil {
		s.writeOracleError(w, err)
		return
	}

	detailPanel, err := render.DetailPanel(req.Diagnosis, detail)
	if err != nil {
		s.writeOracleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"diagnosis":          req.Diagnosis,
		"species":            req.Species,
		"breed":              req.Breed,
		"veterinary_details": detail,
		"panel":              detailPanel,
	})
}

// handleListQuestions returns the intake sequence.
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions.Sequence()})
}

// handleListBreeds returns the breed options for a species.
func (s *Server) handleListBreeds(w http.ResponseWriter, r *http.Request) {
	species := r.URL.Query().Get("species")
	if species == "" {
		writeError(w, http.StatusBadRequest, "species parameter required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"species": species,
		"breeds":  questions.BreedOptions(species),
	})
}
