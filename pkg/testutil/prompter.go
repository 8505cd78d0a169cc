package testutil

import (
	"io"
	"sync"

	"github.com/arthur-debert/medialink/pkg/resolver"
)

// ScriptedPrompter answers prompts from a fixed script. Once the script is
// exhausted Ask returns io.EOF, like a closed stdin.
type ScriptedPrompter struct {
	mu       sync.Mutex
	answers  []string
	confirms []bool

	Asked     []resolver.Prompt
	Confirmed []string
	Notified  []string
}

// NewScriptedPrompter returns a prompter that replays answers in order
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// WithConfirms queues answers for Confirm
func (s *ScriptedPrompter) WithConfirms(confirms ...bool) *ScriptedPrompter {
	s.confirms = append(s.confirms, confirms...)
	return s
}

// Ask implements resolver.Prompter
func (s *ScriptedPrompter) Ask(p resolver.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Asked = append(s.Asked, p)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Confirm implements resolver.Prompter
func (s *ScriptedPrompter) Confirm(question string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Confirmed = append(s.Confirmed, question)
	if len(s.confirms) == 0 {
		return false, io.EOF
	}
	answer := s.confirms[0]
	s.confirms = s.confirms[1:]
	return answer, nil
}

// Notify implements resolver.Prompter
func (s *ScriptedPrompter) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notified = append(s.Notified, message)
}

// Remaining reports how many scripted answers were not consumed
func (s *ScriptedPrompter) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}
