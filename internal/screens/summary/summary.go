package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/korepetytor/internal/dialog"
	"github.com/abhisek/korepetytor/internal/problembank"
	"github.com/abhisek/korepetytor/internal/router"
	"github.com/abhisek/korepetytor/internal/screen"
	"github.com/abhisek/korepetytor/internal/stats"
	"github.com/abhisek/korepetytor/internal/ui/components"
	"github.com/abhisek/korepetytor/internal/ui/layout"
	"github.com/abhisek/korepetytor/internal/ui/theme"
)

// SummaryScreen displays the result of a finished conversation.
type SummaryScreen struct {
	summary dialog.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary dialog.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Podsumowanie"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Wróć do rozmowy"},
		{Key: "Esc", Description: "Wróć"},
	}
}

func (s *SummaryScreen) Status() layout.Status {
	return layout.Status{Learner: s.summary.UserName, Correct: s.summary.CorrectCount}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	name := sum.UserName
	if name == "" {
		name = "uczniu"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		fmt.Sprintf("Koniec lekcji, %s!", name)))
	b.WriteString("\n\n")

	d := sum.Duration()
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	info := fmt.Sprintf("Czas: %d:%02d", mins, secs)
	if sum.Level != "" {
		info += "    Poziom: " + sum.Level.DisplayName()
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), info))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Zadania: %d        Poprawne: %d        Skuteczność: %s%%",
		sum.Attempted, sum.CorrectCount, stats.Percent(sum.Accuracy()))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(barWidth, 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Tematy")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	shown := 0
	for _, t := range problembank.AllTopics {
		r, ok := sum.Topics[t]
		if !ok || r.Attempted == 0 {
			continue
		}
		bar := components.NewProgressBar(
			fmt.Sprintf("%-9s %d/%d", t, r.Correct, r.Attempted),
			float64(r.Correct)/float64(r.Attempted), true, barWidth)
		bar.WeakBelow = stats.WeakAccuracy
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		b.WriteString(center(theme.Hint, "Tym razem bez zadań. Następnym razem spróbuj rozwiązać choć jedno!"))
		b.WriteString("\n")
	}

	return b.String()
}
