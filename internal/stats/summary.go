package stats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/korepetytor/internal/store"
)

// Recommendation thresholds.
const (
	WeakMinAttempts    = 3
	WeakAccuracy       = 0.7
	MinAnswersForTrend = 20
	StrongAccuracy     = 0.8
	MaxWeakTopics      = 2
)

// Overview is everything known about one student.
type Overview struct {
	Student string
	Totals  store.StudentTotals
	Topics  []store.TopicStat
}

// Load aggregates the recorded history of student.
func Load(ctx context.Context, repo store.EventRepo, student string) (Overview, error) {
	key := StudentKey(student)
	totals, err := repo.Totals(ctx, key)
	if err != nil {
		return Overview{}, fmt.Errorf("load totals: %w", err)
	}
	topics, err := repo.TopicStats(ctx, key)
	if err != nil {
		return Overview{}, fmt.Errorf("load topic stats: %w", err)
	}
	return Overview{Student: student, Totals: totals, Topics: topics}, nil
}

// Summary renders the performance summary shown by the stats command.
func (o Overview) Summary() string {
	if o.Totals.Attempted == 0 {
		return "Brak danych do analizy. Rozwiąż kilka zadań!"
	}

	title := cases.Title(language.Polish)
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Twoje statystyki, %s:\n\n", title.String(o.Student))
	fmt.Fprintf(&b, "📚 Sesji nauki: %d\n", o.Totals.Sessions)
	fmt.Fprintf(&b, "✅ Poprawnych odpowiedzi: %d/%d\n", o.Totals.Correct, o.Totals.Attempted)
	fmt.Fprintf(&b, "📈 Skuteczność: %s%%\n", Percent(o.Totals.Accuracy()))

	var rows []string
	for _, t := range o.Topics {
		if t.Attempted == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("- %s: %s%% (%d/%d)",
			title.String(t.Topic), Percent(t.Accuracy()), t.Correct, t.Attempted))
	}
	if len(rows) > 0 {
		b.WriteString("\nWyniki według tematów:\n")
		b.WriteString(strings.Join(rows, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// WeakTopics returns up to MaxWeakTopics topics with enough attempts and
// low accuracy, weakest first.
func (o Overview) WeakTopics() []string {
	var weak []store.TopicStat
	for _, t := range o.Topics {
		if t.Attempted >= WeakMinAttempts && t.Accuracy() < WeakAccuracy {
			weak = append(weak, t)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Accuracy() < weak[j].Accuracy()
	})
	if len(weak) > MaxWeakTopics {
		weak = weak[:MaxWeakTopics]
	}
	out := make([]string, len(weak))
	for i, t := range weak {
		out[i] = t.Topic
	}
	return out
}

// Recommendations returns study advice, one line per recommendation.
func (o Overview) Recommendations() string {
	var recs []string
	if weak := o.WeakTopics(); len(weak) > 0 {
		recs = append(recs, "🎯 Skup się na: "+strings.Join(weak, ", "))
	}

	switch {
	case o.Totals.Attempted < MinAnswersForTrend:
		recs = append(recs, "💪 Rozwiąż więcej zadań, żeby lepiej ocenić postępy!")
	case o.Totals.Accuracy() > StrongAccuracy:
		recs = append(recs, "🌟 Świetnie ci idzie! Może czas na trudniejszy poziom?")
	}

	if len(recs) == 0 {
		return "Kontynuuj naukę! 📚"
	}
	return strings.Join(recs, "\n")
}

// Percent formats a 0..1 ratio as a percentage rounded to two decimals.
func Percent(ratio float64) string {
	v := math.Round(ratio*10000) / 100
	return strconv.FormatFloat(v, 'f', -1, 64)
}
