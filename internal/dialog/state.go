package dialog

import (
	"time"

	"github.com/abhisek/korepetytor/internal/problembank"
)

// State is the mutable record of one tutoring conversation. The caller
// owns it; Machine.Step mutates it in place.
type State struct {
	Stage Stage

	// UserName is captured once during the greeting. Empty until then.
	UserName string

	// Level is empty until a level keyword is recognized.
	Level Level

	// Topic is empty until a topic keyword is recognized and may be
	// overwritten by later topic selections.
	Topic problembank.Topic

	// CurrentProblem is the prompt of the problem in play. It is set
	// before the conversation enters the quiz and replaced on every issue.
	CurrentProblem string

	// CurrentProblemID is the bank ID of CurrentProblem.
	CurrentProblemID string

	// Solved reports whether CurrentProblem has been answered correctly.
	Solved bool

	// UsedProblems holds, per topic, the IDs issued since the last reset.
	UsedProblems map[problembank.Topic]map[string]struct{}

	// CorrectCount counts correct answers this session.
	CorrectCount int

	// Results tallies graded answers per topic this session.
	Results map[problembank.Topic]TopicResult

	// ExhaustionOffered is set once the learner has been told every
	// problem of Topic was used, so the next request starts over.
	ExhaustionOffered bool

	StartedAt time.Time
	IssuedAt  time.Time
}

// TopicResult tallies answers for one topic.
type TopicResult struct {
	Attempted int
	Correct   int
}

// NewState returns a conversation at the greeting stage.
func NewState() *State {
	return &State{
		Stage:        StageGreeting,
		UsedProblems: make(map[problembank.Topic]map[string]struct{}),
		Results:      make(map[problembank.Topic]TopicResult),
	}
}

// reset clears everything learned about the learner and parks the
// conversation at stage.
func (s *State) reset(stage Stage) {
	*s = *NewState()
	s.Stage = stage
}

// clearProblem drops the problem in play so the next practice turn issues
// a fresh one for Topic.
func (s *State) clearProblem() {
	s.CurrentProblem = ""
	s.CurrentProblemID = ""
	s.Solved = false
}

func (s *State) ensureMaps() {
	if s.UsedProblems == nil {
		s.UsedProblems = make(map[problembank.Topic]map[string]struct{})
	}
	if s.Results == nil {
		s.Results = make(map[problembank.Topic]TopicResult)
	}
}

// used returns the used-set for t, creating it if needed.
func (s *State) used(t problembank.Topic) map[string]struct{} {
	u, ok := s.UsedProblems[t]
	if !ok {
		u = make(map[string]struct{})
		s.UsedProblems[t] = u
	}
	return u
}

// Attempted returns the number of graded answers this session.
func (s *State) Attempted() int {
	n := 0
	for _, r := range s.Results {
		n += r.Attempted
	}
	return n
}
