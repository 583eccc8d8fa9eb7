// Package adaptive adjusts exercise difficulty to the learner's recent
// performance.
package adaptive

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/korepetytor/internal/problembank"
)

const (
	MinDifficulty     = 0.5
	MaxDifficulty     = 1.5
	InitialDifficulty = 1.0
	DifficultyStep    = 0.1

	// StreakToLevelUp correct answers in a row raise the difficulty.
	StreakToLevelUp = 3

	// RecentWindow is how many latest answers are inspected for a drop.
	RecentWindow = 3

	// WrongToLevelDown wrong answers within RecentWindow lower the difficulty.
	WrongToLevelDown = 2
)

// Change describes how a recorded answer moved the difficulty.
type Change int

const (
	NoChange Change = iota
	LevelUp
	LevelDown
)

func (c Change) String() string {
	switch c {
	case LevelUp:
		return "level_up"
	case LevelDown:
		return "level_down"
	default:
		return "no_change"
	}
}

// Attempt is one graded answer as seen by the tracker.
type Attempt struct {
	Correct    bool
	Took       time.Duration
	Difficulty float64
}

// Tracker holds the adaptive difficulty for one learner session.
type Tracker struct {
	history    []Attempt
	difficulty float64
	streak     int
}

// NewTracker returns a tracker at the initial difficulty.
func NewTracker() *Tracker {
	return &Tracker{difficulty: InitialDifficulty}
}

// Record adds a graded answer and adjusts the difficulty.
func (t *Tracker) Record(correct bool, took time.Duration) Change {
	t.history = append(t.history, Attempt{
		Correct:    correct,
		Took:       took,
		Difficulty: t.difficulty,
	})

	if correct {
		t.streak++
		if t.streak >= StreakToLevelUp {
			t.streak = 0
			return t.shift(DifficultyStep, LevelUp)
		}
		return NoChange
	}

	t.streak = 0
	if len(t.history) < RecentWindow {
		return NoChange
	}
	wrong := 0
	for _, a := range t.history[len(t.history)-RecentWindow:] {
		if !a.Correct {
			wrong++
		}
	}
	if wrong >= WrongToLevelDown {
		return t.shift(-DifficultyStep, LevelDown)
	}
	return NoChange
}

// shift moves the difficulty by delta, clamped to the allowed range.
func (t *Tracker) shift(delta float64, c Change) Change {
	d := math.Round((t.difficulty+delta)*10) / 10
	t.difficulty = math.Max(MinDifficulty, math.Min(MaxDifficulty, d))
	return c
}

// SetDifficulty restores a previously saved difficulty. Values outside
// the allowed range are clamped.
func (t *Tracker) SetDifficulty(d float64) {
	d = math.Round(d*10) / 10
	t.difficulty = math.Max(MinDifficulty, math.Min(MaxDifficulty, d))
}

// Difficulty returns the current difficulty in [MinDifficulty, MaxDifficulty].
func (t *Tracker) Difficulty() float64 {
	return t.difficulty
}

// Streak returns the current run of correct answers.
func (t *Tracker) Streak() int {
	return t.streak
}

// History returns the recorded attempts, oldest first.
func (t *Tracker) History() []Attempt {
	return t.history
}

// Band maps the current difficulty onto a problem difficulty tag.
func (t *Tracker) Band() problembank.Difficulty {
	switch {
	case t.difficulty < 0.7:
		return problembank.DifficultyEasy
	case t.difficulty < 1.2:
		return problembank.DifficultyMedium
	default:
		return problembank.DifficultyHard
	}
}

// Reset returns the tracker to its initial state.
func (t *Tracker) Reset() {
	t.history = nil
	t.difficulty = InitialDifficulty
	t.streak = 0
}

var praise = []string{
	"💪 Świetnie! Tak trzymaj!",
	"🌟 Doskonale! Widzę postępy!",
	"👏 Brawo! To była dobra odpowiedź!",
}

// Encouragement returns a short line to append after a graded answer.
// Call it after Record so the streak reflects the answer.
func (t *Tracker) Encouragement(correct bool, rng *rand.Rand) string {
	if correct {
		if t.streak >= StreakToLevelUp-1 {
			return "🔥 Jesteś w świetnej formie! Jeszcze jedno i przejdziemy na wyższy poziom!"
		}
		return praise[rng.IntN(len(praise))]
	}
	if t.difficulty > 1.2 {
		return "🤔 To było trudne zadanie. Spróbujmy jeszcze raz!"
	}
	return "💭 Nie martw się, następnym razem pójdzie lepiej!"
}

// ChangeMessage returns the announcement for a difficulty change, or "".
func ChangeMessage(c Change) string {
	switch c {
	case LevelUp:
		return "Przechodzimy na wyższy poziom trudności!"
	case LevelDown:
		return "Spróbujmy trochę łatwiejszych zadań."
	default:
		return ""
	}
}
