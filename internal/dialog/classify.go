package dialog

import (
	"strings"

	"github.com/abhisek/korepetytor/internal/problembank"
)

type levelKeywords struct {
	level    Level
	keywords []string
}

// levelTable is scanned in order; the first level with a matching keyword
// wins.
var levelTable = []levelKeywords{
	{LevelGrade4, []string{"4", "czwart"}},
	{LevelGrade5, []string{"5", "piąt"}},
	{LevelGrade6, []string{"6", "szóst"}},
	{LevelGrade7, []string{"7", "siódm"}},
	{LevelGrade8, []string{"8", "ósm"}},
	{LevelLiceum, []string{"liceum", "średni", "lo"}},
	{LevelMatura, []string{"matur", "egzamin"}},
}

type topicKeywords struct {
	topic    problembank.Topic
	keywords []string
}

// topicTable follows problembank.AllTopics order.
var topicTable = []topicKeywords{
	{problembank.TopicEquations, []string{"równan", "niewiadom"}},
	{problembank.TopicFunctions, []string{"funkcj", "wykres"}},
	{problembank.TopicGeometry, []string{"geometr", "figur", "kąt", "trójkąt"}},
	{problembank.TopicFractions, []string{"ułam", "dzielen", "mnożen"}},
	{problembank.TopicPercentages, []string{"procent", "%"}},
}

var farewellKeywords = []string{"do widzenia", "papa", "koniec", "exit", "quit", "żegnaj"}

var theoryKeywords = []string{"teori", "tłumacz", "wyjaśn"}

// Quiz control words are matched against the whole trimmed input.
var (
	continueWords = []string{"tak", "dalej"}
	stopWords     = []string{"nie", "stop", "koniec"}
	theoryWords   = []string{"teoria", "wyjaśnij", "wytłumacz"}
)

// ClassifyLevel maps an utterance to a school level by keyword.
func ClassifyLevel(raw string) (Level, bool) {
	lower := strings.ToLower(raw)
	for _, row := range levelTable {
		if containsAny(lower, row.keywords) {
			return row.level, true
		}
	}
	return "", false
}

// ClassifyTopic maps an utterance to a topic by keyword.
func ClassifyTopic(raw string) (problembank.Topic, bool) {
	lower := strings.ToLower(raw)
	for _, row := range topicTable {
		if containsAny(lower, row.keywords) {
			return row.topic, true
		}
	}
	return "", false
}

// IsFarewell reports whether the utterance asks to end the conversation.
func IsFarewell(raw string) bool {
	return containsAny(strings.ToLower(raw), farewellKeywords)
}

// WantsTheory reports whether the utterance asks for an explanation.
func WantsTheory(raw string) bool {
	return containsAny(strings.ToLower(raw), theoryKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func isOneOf(s string, words []string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}
