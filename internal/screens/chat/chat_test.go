package chat

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/korepetytor/internal/dialog"
	"github.com/abhisek/korepetytor/internal/problembank"
	"github.com/abhisek/korepetytor/internal/router"
	"github.com/abhisek/korepetytor/internal/screens/summary"
	"github.com/abhisek/korepetytor/internal/transcript"
)

type countingObserver struct {
	dialog.NopObserver
	graded int
}

func (c *countingObserver) AnswerGraded(dialog.Outcome) { c.graded++ }

func newTestScreen(t *testing.T, deps Deps) *ChatScreen {
	t.Helper()
	deps.Options.Rand = rand.New(rand.NewPCG(1, 2))
	s := New(deps)
	s.Init()
	return s
}

// say types text and presses Enter.
func say(t *testing.T, s *ChatScreen, text string) tea.Cmd {
	t.Helper()
	s.input.Model.SetValue(text)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func lastTutor(s *ChatScreen) string {
	msgs := s.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].From == Tutor {
			return msgs[i].Text
		}
	}
	return ""
}

func TestChat_OpensWithGreeting(t *testing.T) {
	s := newTestScreen(t, Deps{})
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].From != Tutor {
		t.Fatalf("Messages() = %+v, want one tutor greeting", msgs)
	}
	if !strings.Contains(msgs[0].Text, "Jak masz na imię?") {
		t.Errorf("greeting = %q", msgs[0].Text)
	}
	if s.Stage() != dialog.StageGreeting {
		t.Errorf("Stage = %v, want greeting", s.Stage())
	}
}

func TestChat_EmptyInputIgnored(t *testing.T) {
	s := newTestScreen(t, Deps{})
	if cmd := say(t, s, "   "); cmd != nil {
		t.Error("expected no command for blank input")
	}
	if len(s.Messages()) != 1 {
		t.Errorf("blank input should not add messages, got %d", len(s.Messages()))
	}
}

func TestChat_FullConversation(t *testing.T) {
	obs := &countingObserver{}
	s := newTestScreen(t, Deps{Options: dialog.Options{Observer: obs}})

	say(t, s, "Mam na imię Ala")
	if got := s.Status(); got.Learner != "Ala" {
		t.Errorf("Status().Learner = %q, want Ala", got.Learner)
	}
	say(t, s, "siódma klasa")
	say(t, s, "ułamki")
	if s.Stage() != dialog.StageQuiz {
		t.Fatalf("Stage = %v, want quiz", s.Stage())
	}
	if !strings.Contains(s.Title(), "Zadania") {
		t.Errorf("Title = %q, want quiz label", s.Title())
	}

	p, ok := problembank.Default().ByID(s.manager.State().CurrentProblemID)
	if !ok {
		t.Fatal("current problem not found in bank")
	}
	if cmd := say(t, s, p.Answers[0]); cmd != nil {
		t.Error("grading should not navigate")
	}
	if shown, valid := s.input.Submitted(); !shown || !valid {
		t.Error("expected a check mark after a correct answer")
	}
	if obs.graded != 1 {
		t.Errorf("outer observer saw %d graded answers, want 1", obs.graded)
	}
	if got := s.Status().Correct; got != 1 {
		t.Errorf("Status().Correct = %d, want 1", got)
	}

	cmd := say(t, s, "do widzenia")
	if !strings.Contains(lastTutor(s), "Do zobaczenia, Ala!") {
		t.Errorf("farewell = %q", lastTutor(s))
	}
	if cmd == nil {
		t.Fatal("expected navigation to the summary after farewell")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want PushScreenMsg", cmd())
	}
	sum, ok := push.Screen.(*summary.SummaryScreen)
	if !ok {
		t.Fatalf("pushed %T, want *summary.SummaryScreen", push.Screen)
	}
	if st := sum.Status(); st.Learner != "Ala" || st.Correct != 1 {
		t.Errorf("summary status = %+v, want Ala/1", st)
	}
}

func TestChat_WritesTranscript(t *testing.T) {
	log, err := transcript.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open transcript: %v", err)
	}
	s := newTestScreen(t, Deps{Transcript: log})
	say(t, s, "Ola")
	if err := log.Close(); err != nil {
		t.Fatalf("close transcript: %v", err)
	}
	// greeting, learner line, reply
	if len(s.Messages()) != 3 {
		t.Errorf("Messages() = %d, want 3", len(s.Messages()))
	}
}

func TestChat_View(t *testing.T) {
	s := newTestScreen(t, Deps{})
	say(t, s, "Ala")
	view := s.View(80, 20)
	if !strings.Contains(view, "Korepetytor") || !strings.Contains(view, "Ty") {
		t.Error("expected both speakers in view")
	}
	if strings.Count(view, "\n") > 20 {
		t.Errorf("view taller than the available height")
	}
}

func TestChat_KeyHints(t *testing.T) {
	s := newTestScreen(t, Deps{})
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
