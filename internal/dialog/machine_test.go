package dialog

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/korepetytor/internal/adaptive"
	"github.com/abhisek/korepetytor/internal/problembank"
)

// recordingObserver captures events for assertions.
type recordingObserver struct {
	started  []SessionStart
	issued   []Issue
	outcomes []Outcome
	ended    []Summary
}

func (r *recordingObserver) SessionStarted(e SessionStart) { r.started = append(r.started, e) }
func (r *recordingObserver) ProblemIssued(e Issue)         { r.issued = append(r.issued, e) }
func (r *recordingObserver) AnswerGraded(e Outcome)        { r.outcomes = append(r.outcomes, e) }
func (r *recordingObserver) SessionEnded(e Summary)        { r.ended = append(r.ended, e) }

// fakeClock advances one second per call.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestMachine(t *testing.T, obs Observer) *Machine {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	return NewMachine(Options{
		Observer: obs,
		Rand:     rand.New(rand.NewPCG(7, 11)),
		Clock:    clock.Now,
	})
}

// quizState returns a state in the quiz with a problem of topic in play.
func quizState(m *Machine, topic problembank.Topic) *State {
	st := NewState()
	st.UserName = "Ala"
	st.Level = LevelGrade7
	st.Topic = topic
	m.issue(st)
	st.Stage = StageQuiz
	return st
}

func correctAnswer(t *testing.T, st *State) string {
	t.Helper()
	p, ok := problembank.Default().ByID(st.CurrentProblemID)
	if !ok {
		t.Fatalf("current problem %q not in bank", st.CurrentProblemID)
	}
	return p.Answers[0]
}

func TestStep_Totality(t *testing.T) {
	inputs := []string{"", "   ", "tak", "nie", "dalej", "xyz", "4", "ułamki", "teoria", "wytłumacz równania", "Ala", "koniec"}
	for _, stage := range AllStages {
		for _, in := range inputs {
			m := newTestMachine(t, nil)
			st := quizState(m, problembank.TopicEquations)
			st.Stage = stage

			reply := m.Step(st, in)
			if strings.TrimSpace(reply) == "" {
				t.Errorf("Step(%s, %q) returned empty reply", stage, in)
			}
			if st.Stage.String() == "unknown" {
				t.Errorf("Step(%s, %q) left undefined stage %d", stage, in, st.Stage)
			}
		}
	}
}

func TestStep_Totality_EmptyState(t *testing.T) {
	for _, stage := range AllStages {
		for _, in := range []string{"", "tak", "teoria", "5", "funkcje"} {
			m := newTestMachine(t, nil)
			st := &State{Stage: stage}
			if reply := m.Step(st, in); reply == "" {
				t.Errorf("Step(%s, %q) on zero state returned empty reply", stage, in)
			}
		}
	}
}

func TestStep_FarewellPrecedence(t *testing.T) {
	for _, stage := range AllStages {
		for _, in := range []string{"koniec", "no to koniec na dziś", "Do widzenia", "papa"} {
			m := newTestMachine(t, nil)
			st := quizState(m, problembank.TopicFractions)
			st.Stage = stage
			m.Step(st, in)
			if st.Stage != StageFarewell {
				t.Errorf("Step(%s, %q) stage = %s, want farewell", stage, in, st.Stage)
			}
		}
	}
}

func TestStep_Greeting(t *testing.T) {
	m := newTestMachine(t, nil)
	st := NewState()

	if reply := m.Step(st, "  "); reply != msgAskName || st.Stage != StageGreeting {
		t.Errorf("empty greeting: reply %q stage %s", reply, st.Stage)
	}

	reply := m.Step(st, "mam na imię łucja.")
	if st.UserName != "Łucja" {
		t.Errorf("UserName = %q, want %q", st.UserName, "Łucja")
	}
	if st.Stage != StageLevelSelection {
		t.Errorf("Stage = %s, want level_selection", st.Stage)
	}
	if !strings.Contains(reply, "W której klasie") {
		t.Errorf("reply = %q", reply)
	}
}

func TestStep_Reprompts(t *testing.T) {
	m := newTestMachine(t, nil)

	st := NewState()
	st.Stage = StageLevelSelection
	if reply := m.Step(st, "nie wiem"); reply != msgLevelUnknown || st.Stage != StageLevelSelection {
		t.Errorf("level reprompt: reply %q stage %s", reply, st.Stage)
	}

	st.Stage = StageTopicSelection
	if reply := m.Step(st, "historia"); reply != msgTopicUnknown || st.Stage != StageTopicSelection {
		t.Errorf("topic reprompt: reply %q stage %s", reply, st.Stage)
	}
}

func TestStep_QuizGrading(t *testing.T) {
	m := newTestMachine(t, nil)
	st := NewState()
	st.Stage = StageQuiz
	st.Topic = problembank.TopicEquations
	st.CurrentProblem = "Rozwiąż równanie: 2x + 5 = 13. Ile wynosi x?"

	reply := m.Step(st, "5")
	if !strings.HasPrefix(reply, "Hmm, spróbuj jeszcze raz.") || !strings.Contains(reply, "2x = 13 - 5") {
		t.Errorf("wrong answer reply = %q", reply)
	}
	if st.CorrectCount != 0 {
		t.Errorf("CorrectCount = %d, want 0", st.CorrectCount)
	}

	reply = m.Step(st, "x = 4")
	if !strings.Contains(reply, "Dobra odpowiedź") || !strings.Contains(reply, "(tak/nie)") {
		t.Errorf("correct answer reply = %q", reply)
	}
	if st.CorrectCount != 1 || st.Stage != StageQuiz {
		t.Errorf("CorrectCount = %d stage %s, want 1 quiz", st.CorrectCount, st.Stage)
	}
	if r := st.Results[problembank.TopicEquations]; r.Attempted != 2 || r.Correct != 1 {
		t.Errorf("Results = %+v, want 2 attempted 1 correct", r)
	}
}

func TestStep_QuizControlWords(t *testing.T) {
	m := newTestMachine(t, nil)
	st := quizState(m, problembank.TopicGeometry)
	first := st.CurrentProblem

	reply := m.Step(st, "Dalej")
	if !strings.HasPrefix(reply, "Oto kolejne zadanie:") {
		t.Errorf("reply = %q", reply)
	}
	if st.CurrentProblem == first {
		t.Error("expected a different problem after 'dalej'")
	}

	m.Step(st, "nie")
	if st.Stage != StageTopicSelection {
		t.Errorf("Stage after 'nie' = %s, want topic_selection", st.Stage)
	}
}

func TestIssue_UniqueUntilReset(t *testing.T) {
	for _, topic := range problembank.AllTopics {
		obs := &recordingObserver{}
		m := newTestMachine(t, obs)
		st := NewState()
		st.Topic = topic

		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			m.issue(st)
			last := obs.issued[len(obs.issued)-1]
			if last.Reset {
				if len(seen) != problembank.Default().Count(topic) {
					t.Errorf("%s: reset after %d issues, want %d", topic, len(seen), problembank.Default().Count(topic))
				}
				break
			}
			if seen[last.Prompt] {
				t.Fatalf("%s: prompt %q issued twice before reset", topic, last.Prompt)
			}
			seen[last.Prompt] = true
			if len(st.UsedProblems[topic]) > problembank.Default().Count(topic) {
				t.Fatalf("%s: used-set larger than bank", topic)
			}
		}
	}
}

func TestQuiz_ExhaustionOffer(t *testing.T) {
	obs := &recordingObserver{}
	m := newTestMachine(t, obs)
	st := quizState(m, problembank.TopicPercentages)
	for i := 1; i < problembank.Default().Count(problembank.TopicPercentages); i++ {
		m.Step(st, "tak")
	}

	reply := m.Step(st, "tak")
	if !strings.Contains(reply, "Gratulacje") {
		t.Fatalf("reply after exhausting topic = %q", reply)
	}
	if st.Stage != StageQuiz {
		t.Errorf("Stage = %s, want quiz", st.Stage)
	}

	reply = m.Step(st, "tak")
	if !strings.HasPrefix(reply, "Oto kolejne zadanie:") {
		t.Errorf("reply after restarting = %q", reply)
	}
	if !obs.issued[len(obs.issued)-1].Reset {
		t.Error("expected the restart issue to carry the reset flag")
	}
	if len(st.UsedProblems[problembank.TopicPercentages]) != 1 {
		t.Errorf("used-set size = %d, want 1", len(st.UsedProblems[problembank.TopicPercentages]))
	}
}

func TestTheoryFlow(t *testing.T) {
	m := newTestMachine(t, nil)
	st := NewState()
	st.Stage = StageTopicSelection

	reply := m.Step(st, "wytłumacz mi ułamki")
	if st.Stage != StageExplanation || st.Topic != problembank.TopicFractions {
		t.Fatalf("stage %s topic %q, want explanation ułamki", st.Stage, st.Topic)
	}
	if !strings.Contains(reply, "licznika") {
		t.Errorf("theory reply = %q", reply)
	}

	m.Step(st, "teoria jeszcze raz")
	if st.Stage != StageExplanation {
		t.Errorf("Stage after repeated theory = %s, want explanation", st.Stage)
	}

	reply = m.Step(st, "dalej")
	if st.Stage != StageQuiz || st.CurrentProblem == "" {
		t.Fatalf("stage %s problem %q, want quiz with problem", st.Stage, st.CurrentProblem)
	}
	if !strings.Contains(reply, st.CurrentProblem) {
		t.Errorf("reply %q does not contain problem", reply)
	}
	problem := st.CurrentProblem

	m.Step(st, "teoria")
	if st.Stage != StageProblemSolving {
		t.Errorf("Stage after mid-quiz theory = %s, want problem_solving", st.Stage)
	}

	reply = m.Step(st, "dalej")
	if st.Stage != StageQuiz || st.CurrentProblem != problem {
		t.Errorf("stage %s problem %q, want quiz with %q", st.Stage, st.CurrentProblem, problem)
	}
	if !strings.HasPrefix(reply, "Wróćmy do zadania") {
		t.Errorf("resume reply = %q", reply)
	}
}

func TestTheoryFlow_TopicSwitchDropsOldProblem(t *testing.T) {
	obs := &recordingObserver{}
	m := newTestMachine(t, obs)
	st := NewState()
	for _, in := range []string{"Ala", "siódma klasa", "równania", "nie", "wytłumacz procenty"} {
		m.Step(st, in)
	}
	if st.Stage != StageExplanation || st.Topic != problembank.TopicPercentages {
		t.Fatalf("stage %s topic %q, want explanation procenty", st.Stage, st.Topic)
	}
	if st.CurrentProblem != "" || st.CurrentProblemID != "" {
		t.Errorf("problem %q still in play after topic switch", st.CurrentProblemID)
	}

	reply := m.Step(st, "dalej")
	if st.Stage != StageQuiz {
		t.Fatalf("Stage = %s, want quiz", st.Stage)
	}
	if strings.HasPrefix(reply, "Wróćmy do zadania") {
		t.Errorf("reply re-posed the old problem: %q", reply)
	}
	if !inTopic(problembank.Default().Problems(problembank.TopicPercentages), st.CurrentProblemID) {
		t.Fatalf("problem %q is not a procenty problem", st.CurrentProblemID)
	}

	m.Step(st, correctAnswer(t, st))
	last := obs.outcomes[len(obs.outcomes)-1]
	if last.Topic != problembank.TopicPercentages || !last.Correct {
		t.Errorf("outcome = %+v, want correct procenty answer", last)
	}
	if st.Results[problembank.TopicEquations].Attempted != 0 {
		t.Errorf("equations tally = %+v, want untouched", st.Results[problembank.TopicEquations])
	}
}

func inTopic(problems []problembank.Problem, id string) bool {
	for _, p := range problems {
		if p.ID == id {
			return true
		}
	}
	return false
}

func TestStep_UnknownStageRestarts(t *testing.T) {
	m := newTestMachine(t, nil)
	st := quizState(m, problembank.TopicEquations)
	st.Stage = Stage(99)

	reply := m.Step(st, "cokolwiek")
	if st.Stage != StageGreeting || reply != msgOpening {
		t.Errorf("stage %s reply %q, want greeting opening", st.Stage, reply)
	}
	if st.UserName != "" || st.CurrentProblem != "" {
		t.Errorf("state not reset: %+v", st)
	}
}

func TestFarewell_SummaryAndRestart(t *testing.T) {
	obs := &recordingObserver{}
	m := newTestMachine(t, obs)
	st := quizState(m, problembank.TopicFractions)
	m.Step(st, correctAnswer(t, st))
	m.Step(st, "zła odpowiedź")

	reply := m.Step(st, "koniec")
	if !strings.Contains(reply, "Ala") || !strings.Contains(reply, "1 zadanie") {
		t.Errorf("farewell = %q, want name and count", reply)
	}
	if len(obs.ended) != 1 {
		t.Fatalf("SessionEnded calls = %d, want 1", len(obs.ended))
	}
	sum := obs.ended[0]
	if sum.UserName != "Ala" || sum.CorrectCount != 1 || sum.Attempted != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if st.UserName != "" || st.CorrectCount != 0 || len(st.UsedProblems) != 0 {
		t.Errorf("state not reset: %+v", st)
	}

	m.Step(st, "papa")
	if len(obs.ended) != 1 {
		t.Errorf("second goodbye emitted another summary")
	}

	reply = m.Step(st, "hej")
	if st.Stage != StageGreeting || reply != msgOpening {
		t.Errorf("after farewell: stage %s reply %q, want greeting", st.Stage, reply)
	}
}

func TestAdaptive_PrefersBand(t *testing.T) {
	tracker := adaptive.NewTracker()
	for i := 0; i < 6; i++ {
		tracker.Record(false, 0)
	}
	if tracker.Band() != problembank.DifficultyEasy {
		t.Fatalf("Band = %s, want easy", tracker.Band())
	}

	m := NewMachine(Options{
		Rand:     rand.New(rand.NewPCG(3, 5)),
		Adaptive: tracker,
	})
	st := NewState()
	st.Topic = problembank.TopicFractions
	for i := 0; i < 3; i++ {
		p := m.issue(st)
		if p.Difficulty != problembank.DifficultyEasy {
			t.Errorf("issue #%d difficulty = %s, want easy", i+1, p.Difficulty)
		}
	}
	// Easy problems are used up; selection falls back to any unused one.
	p := m.issue(st)
	if p.Difficulty == problembank.DifficultyEasy {
		t.Errorf("issue #4 difficulty = %s, want non-easy", p.Difficulty)
	}
}

func TestAdaptive_EncouragementInReply(t *testing.T) {
	m := NewMachine(Options{
		Rand:     rand.New(rand.NewPCG(3, 5)),
		Adaptive: adaptive.NewTracker(),
	})
	st := quizState(m, problembank.TopicEquations)
	reply := m.Step(st, "nie wiem")
	if !strings.Contains(reply, "Nie martw się") {
		t.Errorf("reply = %q, want encouragement line", reply)
	}
}
