// Package wizard drives the linear intake flow: one question at a time,
// validation before advancement, answers accumulated per session.
package wizard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mkotula/petscope/internal/questions"
)

// ValidationError reports a rejected answer. The session does not advance.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Session is the state of one walk through the question sequence. There is no
// backtracking: editing an earlier answer means Reset and a fresh pass.
type Session struct {
	mu        sync.Mutex
	questions []questions.Question
	index     int
	responses map[string]string
}

// NewSession starts a session at the first question with no answers recorded.
func NewSession() *Session {
	return &Session{
		questions: questions.Sequence(),
		responses: make(map[string]string),
	}
}

// Current returns the question awaiting an answer, with dependent option sets
// resolved against earlier answers. ok is false once the sequence is done.
func (s *Session) Current() (q questions.Question, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *Session) currentLocked() (questions.Question, bool) {
	if s.index >= len(s.questions) {
		return questions.Question{}, false
	}
	q := s.questions[s.index]
	if q.DependsOn != "" {
		q.Input.Options = questions.BreedOptions(s.responses[q.DependsOn])
	}
	return q, true
}

// Answer validates value against the current question and, if valid, records
// it under the question's field name and advances to the next question.
// Required questions reject empty values with a ValidationError.
func (s *Session) Answer(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.currentLocked()
	if !ok {
		return fmt.Errorf("questionnaire already complete")
	}

	trimmed := strings.TrimSpace(value)
	if q.Required && trimmed == "" {
		return &ValidationError{Field: q.Field}
	}

	s.responses[q.Field] = trimmed
	s.index++
	return nil
}

// Index reports the zero-based position in the sequence.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Total reports the number of questions in the sequence.
func (s *Session) Total() int {
	return len(s.questions)
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index >= len(s.questions)
}

// Responses returns a snapshot of the recorded answers.
func (s *Session) Responses() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.responses))
	for k, v := range s.responses {
		out[k] = v
	}
	return out
}

// Reset clears all stored responses and returns to the first question.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = 0
	s.responses = make(map[string]string)
}
