package dialog

// Stage is the position of a conversation in the tutoring flow.
type Stage int

const (
	StageGreeting Stage = iota
	StageLevelSelection
	StageTopicSelection
	StageProblemSolving
	StageExplanation
	StageQuiz
	StageFarewell
)

// AllStages lists every stage in flow order.
var AllStages = []Stage{
	StageGreeting,
	StageLevelSelection,
	StageTopicSelection,
	StageProblemSolving,
	StageExplanation,
	StageQuiz,
	StageFarewell,
}

func (s Stage) String() string {
	switch s {
	case StageGreeting:
		return "greeting"
	case StageLevelSelection:
		return "level_selection"
	case StageTopicSelection:
		return "topic_selection"
	case StageProblemSolving:
		return "problem_solving"
	case StageExplanation:
		return "explanation"
	case StageQuiz:
		return "quiz"
	case StageFarewell:
		return "farewell"
	default:
		return "unknown"
	}
}

// Label returns the Polish name of the stage shown in the UI.
func (s Stage) Label() string {
	switch s {
	case StageGreeting:
		return "Powitanie"
	case StageLevelSelection:
		return "Wybór poziomu"
	case StageTopicSelection:
		return "Wybór tematu"
	case StageProblemSolving, StageExplanation:
		return "Teoria"
	case StageQuiz:
		return "Zadania"
	case StageFarewell:
		return "Pożegnanie"
	default:
		return "?"
	}
}

// Level is the learner's school level.
type Level string

const (
	LevelGrade4 Level = "klasa_4"
	LevelGrade5 Level = "klasa_5"
	LevelGrade6 Level = "klasa_6"
	LevelGrade7 Level = "klasa_7"
	LevelGrade8 Level = "klasa_8"
	LevelLiceum Level = "liceum"
	LevelMatura Level = "matura"
)

// DisplayName returns a human-readable Polish label.
func (l Level) DisplayName() string {
	switch l {
	case LevelGrade4:
		return "klasa 4"
	case LevelGrade5:
		return "klasa 5"
	case LevelGrade6:
		return "klasa 6"
	case LevelGrade7:
		return "klasa 7"
	case LevelGrade8:
		return "klasa 8"
	case LevelLiceum:
		return "liceum"
	case LevelMatura:
		return "matura"
	default:
		return "nieznany"
	}
}
