package problembank

// Topic identifies a subject area the tutor can drill.
type Topic string

const (
	TopicEquations   Topic = "równania"
	TopicFunctions   Topic = "funkcje"
	TopicGeometry    Topic = "geometria"
	TopicFractions   Topic = "ułamki"
	TopicPercentages Topic = "procenty"
)

// AllTopics lists topics in their fixed enumeration order. Keyword
// classification and bank iteration both follow this order.
var AllTopics = []Topic{
	TopicEquations,
	TopicFunctions,
	TopicGeometry,
	TopicFractions,
	TopicPercentages,
}

// String returns the Polish topic name used in replies.
func (t Topic) String() string {
	return string(t)
}

// Valid reports whether t is one of AllTopics.
func (t Topic) Valid() bool {
	for _, known := range AllTopics {
		if t == known {
			return true
		}
	}
	return false
}

// Difficulty tags a problem for adaptive selection.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Problem is a single hand-authored exercise.
type Problem struct {
	// ID is stable across releases and is what used-sets record.
	ID string `yaml:"id"`

	// Prompt is the text read to the learner.
	Prompt string `yaml:"prompt"`

	// Key is a fragment of Prompt that identifies the problem when only
	// the prompt text is known.
	Key string `yaml:"key"`

	// Answers are accepted answer strings. Both decimal comma and decimal
	// point forms are listed explicitly where they apply.
	Answers []string `yaml:"answers"`

	// Hint is shown after a wrong answer.
	Hint string `yaml:"hint"`

	Difficulty Difficulty `yaml:"difficulty"`
}

// topicEntry is the YAML shape of one topic section.
type topicEntry struct {
	ID       Topic     `yaml:"id"`
	Theory   string    `yaml:"theory"`
	Hint     string    `yaml:"hint"`
	Problems []Problem `yaml:"problems"`
}

type bankFile struct {
	Topics []topicEntry `yaml:"topics"`
}
