package api

import (
	"errors"
	"net/http"

	"github.com/mkotula/petscope/internal/questions"
	"github.com/mkotula/petscope/internal/wizard"
)

// sessionState is the wire form of a session's progress. Question is omitted
// once the sequence is complete.
type sessionState struct {
	SessionID string              `json:"session_id"`
	Index     int                 `json:"index"`
	Total     int                 `json:"total"`
	Done      bool                `json:"done"`
	Question  *questions.Question `json:"question,omitempty"`
	Responses map[string]string   `json:"responses"`
}

func newSessionState(id string, session *wizard.Session) sessionState {
	state := sessionState{
		SessionID: id,
		Index:     session.Index(),
		Total:     session.Total(),
		Done:      session.Done(),
		Responses: session.Responses(),
	}
	if q, ok := session.Current(); ok {
		state.Question = &q
	}
	return state
}

// requireSession resolves the sessionID path parameter.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (string, *wizard.Session, bool) {
	id := r.PathValue("sessionID")
	session, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return "", nil, false
	}
	return id, session, true
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, session := s.store.Create()
	writeJSON(w, http.StatusCreated, newSessionState(id, session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, session, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionState(id, session))
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := session.Answer(req.Value); err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error": verr.Error(),
				"field": verr.Field,
				"valid": false,
			})
			return
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newSessionState(id, session))
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	id, session, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	session.Reset()
	writeJSON(w, http.StatusOK, newSessionState(id, session))
}

func (s *Server) handleSessionDiagnose(w http.ResponseWriter, r *http.Request) {
	_, session, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	if !session.Done() {
		writeError(w, http.StatusConflict, "questionnaire is not complete")
		return
	}

	resp, err := s.runDiagnosis(r.Context(), session.Responses())
	if err != nil {
		s.writeOracleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
