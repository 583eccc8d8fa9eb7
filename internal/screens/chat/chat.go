// Package chat is the conversation screen: the learner types, the tutor
// answers.
package chat

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/korepetytor/internal/dialog"
	"github.com/abhisek/korepetytor/internal/router"
	"github.com/abhisek/korepetytor/internal/screen"
	"github.com/abhisek/korepetytor/internal/screens/summary"
	"github.com/abhisek/korepetytor/internal/transcript"
	"github.com/abhisek/korepetytor/internal/ui/components"
	"github.com/abhisek/korepetytor/internal/ui/layout"
	"github.com/abhisek/korepetytor/internal/ui/theme"
)

const (
	maxBubbleWidth = 72
	inputHeight    = 2
)

// Sender identifies who wrote a chat message.
type Sender int

const (
	Tutor Sender = iota
	Learner
)

// Message is one line of the conversation as shown on screen.
type Message struct {
	From Sender
	Text string
}

// Deps are the collaborators of the chat screen.
type Deps struct {
	// Options configure the dialog machine. The screen adds its own
	// observer next to Options.Observer.
	Options dialog.Options

	// Transcript is optional.
	Transcript *transcript.Log

	Logger *zap.Logger
}

// turnEvents captures what happened during the current turn.
type turnEvents struct {
	dialog.NopObserver
	graded *dialog.Outcome
	ended  *dialog.Summary
}

func (e *turnEvents) AnswerGraded(o dialog.Outcome) { e.graded = &o }
func (e *turnEvents) SessionEnded(s dialog.Summary) { e.ended = &s }

func (e *turnEvents) clear() {
	e.graded = nil
	e.ended = nil
}

// ChatScreen implements screen.Screen for the tutoring conversation.
type ChatScreen struct {
	manager    *dialog.Manager
	transcript *transcript.Log
	log        *zap.Logger
	events     *turnEvents
	input      components.TextInput
	messages   []Message
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.StatusProvider = (*ChatScreen)(nil)

// New creates a ChatScreen. The conversation starts on Init.
func New(deps Deps) *ChatScreen {
	s := &ChatScreen{
		transcript: deps.Transcript,
		log:        deps.Logger,
		events:     &turnEvents{},
		input:      components.NewTextInput("Napisz odpowiedź...", 200),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	opts := deps.Options
	if opts.Logger == nil {
		opts.Logger = s.log
	}
	if opts.Observer != nil {
		opts.Observer = dialog.Observers{opts.Observer, s.events}
	} else {
		opts.Observer = s.events
	}
	s.manager = dialog.NewManager(opts, s.tutorSays)
	return s
}

func (s *ChatScreen) Init() tea.Cmd {
	s.messages = nil
	s.manager.Start()
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Rozmowa · " + s.manager.Stage().Label()
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Wyślij"},
		{Key: "Ctrl+C", Description: "Wyjście"},
	}
}

// Status reports the learner name and correct answers for the header.
func (s *ChatScreen) Status() layout.Status {
	st := s.manager.State()
	return layout.Status{Learner: st.UserName, Correct: st.CorrectCount}
}

// Messages returns the conversation so far, oldest first.
func (s *ChatScreen) Messages() []Message {
	return s.messages
}

// Stage returns the dialog stage.
func (s *ChatScreen) Stage() dialog.Stage {
	return s.manager.Stage()
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit sends the typed text as one learner turn.
func (s *ChatScreen) submit() tea.Cmd {
	text := s.input.Value()
	if text == "" {
		return nil
	}

	s.messages = append(s.messages, Message{From: Learner, Text: text})
	if s.transcript != nil {
		if err := s.transcript.Learner(text); err != nil {
			s.log.Warn("transcript write failed", zap.Error(err))
		}
	}

	s.events.clear()
	s.manager.HandleTurn(text)
	s.input.Clear()

	if g := s.events.graded; g != nil {
		s.input.Submit(g.Correct)
	}
	if sum := s.events.ended; sum != nil {
		result := *sum
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(result)}
		}
	}
	return nil
}

// tutorSays is the outbound callback of the dialog manager.
func (s *ChatScreen) tutorSays(text string) {
	s.messages = append(s.messages, Message{From: Tutor, Text: text})
	if s.transcript != nil {
		if err := s.transcript.Tutor(text); err != nil {
			s.log.Warn("transcript write failed", zap.Error(err))
		}
	}
}

func (s *ChatScreen) View(width, height int) string {
	bubbleWidth := min(maxBubbleWidth, width-4)
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var rendered []string
	for _, m := range s.messages {
		rendered = append(rendered, renderMessage(m, bubbleWidth, width))
	}
	history := strings.Join(rendered, "\n")

	historyHeight := max(0, height-inputHeight-1)
	lines := strings.Split(history, "\n")
	if len(lines) > historyHeight {
		lines = lines[len(lines)-historyHeight:]
	}
	history = lipgloss.NewStyle().
		Height(historyHeight).
		Render(strings.Join(lines, "\n"))

	return history + "\n\n" + "  " + s.input.View()
}

func renderMessage(m Message, bubbleWidth, width int) string {
	if m.From == Learner {
		label := theme.LearnerLabel.Render("Ty")
		bubble := theme.LearnerBubble.Width(min(bubbleWidth, lipgloss.Width(m.Text)+4)).Render(m.Text)
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right,
			lipgloss.JoinVertical(lipgloss.Right, label, bubble))
	}
	label := theme.TutorLabel.Render("Korepetytor")
	bubble := theme.TutorBubble.Width(bubbleWidth).Render(m.Text)
	return lipgloss.NewStyle().PaddingLeft(2).
		Render(lipgloss.JoinVertical(lipgloss.Left, label, bubble))
}
