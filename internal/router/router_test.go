package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/korepetytor/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "rozmowa"}
	r := New(s1)

	s2 := &stubScreen{title: "podsumowanie"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "podsumowanie" {
		t.Errorf("expected active 'podsumowanie', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "rozmowa"}
	r := New(s1)

	s2 := &stubScreen{title: "podsumowanie"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "rozmowa" {
		t.Errorf("expected active 'rozmowa', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "rozmowa"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "rozmowa"}
	r := New(s1)

	s2 := &stubScreen{title: "podsumowanie"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "podsumowanie" {
		t.Errorf("expected active 'podsumowanie', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "rozmowa"}
	r := New(s1)

	s2 := &stubScreen{title: "podsumowanie"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "podsumowanie" {
		t.Errorf("expected active 'podsumowanie', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "rozmowa"}
	r := New(s1)

	s2 := &stubScreen{title: "podsumowanie"}
	r.Push(s2)

	s3 := &stubScreen{title: "raport"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "raport" {
		t.Errorf("expected active 'raport', got %q", r.Active().Title())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "rozmowa"}
	r := New(s1)

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "podsumowanie"}})
	if got := r.View(80, 24); got != "podsumowanie" {
		t.Errorf("View = %q, want %q", got, "podsumowanie")
	}

	r.Update(PopScreenMsg{})
	if got := r.View(80, 24); got != "rozmowa" {
		t.Errorf("View after pop = %q, want %q", got, "rozmowa")
	}
}
