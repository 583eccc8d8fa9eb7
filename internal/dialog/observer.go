package dialog

import (
	"time"

	"github.com/abhisek/korepetytor/internal/problembank"
)

// Observer receives conversation events. Calls happen synchronously inside
// Step, in the order the events occur.
type Observer interface {
	SessionStarted(SessionStart)
	ProblemIssued(Issue)
	AnswerGraded(Outcome)
	SessionEnded(Summary)
}

// SessionStart is emitted when the learner's name is captured.
type SessionStart struct {
	UserName string
	At       time.Time
}

// Issue is emitted whenever a problem is handed out.
type Issue struct {
	Topic     problembank.Topic
	ProblemID string
	Prompt    string

	// Reset is true when the topic's used-set was exhausted and cleared
	// to make this issue possible.
	Reset bool
}

// Outcome is emitted for every graded answer.
type Outcome struct {
	Topic      problembank.Topic
	ProblemID  string
	Prompt     string
	Answer     string
	MathInput  string
	Correct    bool
	Identified bool
	Elapsed    time.Duration
	At         time.Time
}

// Summary is emitted once per session, at farewell.
type Summary struct {
	UserName     string
	Level        Level
	CorrectCount int
	Attempted    int
	Topics       map[problembank.Topic]TopicResult
	StartedAt    time.Time
	EndedAt      time.Time

	// Difficulty is the adaptive difficulty at the end of the session, or
	// 0 when adaptive mode is off.
	Difficulty float64
}

// Duration returns the wall time of the session.
func (s Summary) Duration() time.Duration {
	if s.StartedAt.IsZero() || s.EndedAt.Before(s.StartedAt) {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Accuracy returns the fraction of graded answers that were correct.
func (s Summary) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.Attempted)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) SessionStarted(SessionStart) {}
func (NopObserver) ProblemIssued(Issue)         {}
func (NopObserver) AnswerGraded(Outcome)        {}
func (NopObserver) SessionEnded(Summary)        {}

// Observers fans events out to several observers in order.
type Observers []Observer

func (o Observers) SessionStarted(e SessionStart) {
	for _, ob := range o {
		ob.SessionStarted(e)
	}
}

func (o Observers) ProblemIssued(e Issue) {
	for _, ob := range o {
		ob.ProblemIssued(e)
	}
}

func (o Observers) AnswerGraded(e Outcome) {
	for _, ob := range o {
		ob.AnswerGraded(e)
	}
}

func (o Observers) SessionEnded(e Summary) {
	for _, ob := range o {
		ob.SessionEnded(e)
	}
}
