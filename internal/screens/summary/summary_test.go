package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/korepetytor/internal/dialog"
	"github.com/abhisek/korepetytor/internal/problembank"
	"github.com/abhisek/korepetytor/internal/router"
)

func testSummary() dialog.Summary {
	start := time.Date(2026, 2, 10, 17, 0, 0, 0, time.UTC)
	return dialog.Summary{
		UserName:     "Ala",
		Level:        dialog.LevelGrade7,
		CorrectCount: 4,
		Attempted:    6,
		Topics: map[problembank.Topic]dialog.TopicResult{
			problembank.TopicFractions:   {Attempted: 4, Correct: 3},
			problembank.TopicPercentages: {Attempted: 2, Correct: 1},
		},
		StartedAt: start,
		EndedAt:   start.Add(12*time.Minute + 5*time.Second),
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Podsumowanie" {
		t.Errorf("Title = %q, want %q", s.Title(), "Podsumowanie")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"Ala", "12:05", "Skuteczność: 66.67%", "ułamki", "procenty"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
	if strings.Contains(view, "geometria") {
		t.Error("topics without attempts should be hidden")
	}
}

func TestSummaryScreen_EmptySession(t *testing.T) {
	s := New(dialog.Summary{})
	view := s.View(80, 24)
	if !strings.Contains(view, "bez zadań") {
		t.Error("expected empty-session hint")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Enter")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestSummaryScreen_Status(t *testing.T) {
	st := New(testSummary()).Status()
	if st.Learner != "Ala" || st.Correct != 4 {
		t.Errorf("Status = %+v, want Ala/4", st)
	}
}
