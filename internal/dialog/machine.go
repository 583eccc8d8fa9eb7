package dialog

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/korepetytor/internal/adaptive"
	"github.com/abhisek/korepetytor/internal/problembank"
)

// Options configures a Machine. Zero values select sensible defaults.
type Options struct {
	// Bank defaults to problembank.Default().
	Bank *problembank.Bank

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Observer defaults to NopObserver.
	Observer Observer

	// Rand drives problem selection. Defaults to a time-seeded source.
	Rand *rand.Rand

	// Clock defaults to time.Now.
	Clock func() time.Time

	// Adaptive enables difficulty-aware selection and encouragement
	// lines when non-nil.
	Adaptive *adaptive.Tracker
}

// Machine is the tutoring state machine. It holds only collaborators;
// all conversation data lives in the State passed to Step.
type Machine struct {
	bank     *problembank.Bank
	log      *zap.Logger
	obs      Observer
	rng      *rand.Rand
	now      func() time.Time
	adaptive *adaptive.Tracker
	title    cases.Caser
}

// NewMachine creates a Machine from opts.
func NewMachine(opts Options) *Machine {
	m := &Machine{
		bank:     opts.Bank,
		log:      opts.Logger,
		obs:      opts.Observer,
		rng:      opts.Rand,
		now:      opts.Clock,
		adaptive: opts.Adaptive,
		title:    cases.Title(language.Polish),
	}
	if m.bank == nil {
		m.bank = problembank.Default()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.obs == nil {
		m.obs = NopObserver{}
	}
	if m.rng == nil {
		seed := uint64(time.Now().UnixNano())
		m.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Opening returns the first message of a conversation.
func (m *Machine) Opening() string {
	return msgOpening
}

// Step advances st by one learner utterance and returns the reply. Every
// stage and input yields a non-empty reply and a defined next stage.
func (m *Machine) Step(st *State, raw string) string {
	st.ensureMaps()
	if st.StartedAt.IsZero() {
		st.StartedAt = m.now()
	}
	from := st.Stage

	var reply string
	if IsFarewell(raw) {
		reply = m.handleFarewell(st)
	} else {
		switch st.Stage {
		case StageGreeting:
			reply = m.handleGreeting(st, raw)
		case StageLevelSelection:
			reply = m.handleLevelSelection(st, raw)
		case StageTopicSelection:
			reply = m.handleTopicSelection(st, raw)
		case StageProblemSolving:
			reply = m.handleProblemSolving(st, raw)
		case StageExplanation:
			reply = m.handleExplanation(st, raw)
		case StageQuiz:
			reply = m.handleQuiz(st, raw)
		case StageFarewell:
			// Any other input after a farewell starts a new session.
			reply = m.restart(st)
		default:
			m.log.Warn("unknown stage, restarting", zap.Int("stage", int(st.Stage)))
			reply = m.restart(st)
		}
	}

	if from != st.Stage {
		m.log.Debug("stage transition",
			zap.Stringer("from", from),
			zap.Stringer("to", st.Stage),
		)
	}
	return reply
}

func (m *Machine) restart(st *State) string {
	st.reset(StageGreeting)
	st.StartedAt = m.now()
	return msgOpening
}

func (m *Machine) handleGreeting(st *State, raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return msgAskName
	}

	name := strings.Trim(fields[len(fields)-1], ".,!?;:")
	if name == "" {
		name = fields[len(fields)-1]
	}
	st.UserName = m.title.String(name)
	st.Stage = StageLevelSelection

	m.obs.SessionStarted(SessionStart{UserName: st.UserName, At: m.now()})
	return fmt.Sprintf(msgAskLevelFormat, st.UserName)
}

func (m *Machine) handleLevelSelection(st *State, raw string) string {
	level, ok := ClassifyLevel(raw)
	if !ok {
		return msgLevelUnknown
	}
	st.Level = level
	st.Stage = StageTopicSelection
	return msgAskTopic
}

func (m *Machine) handleTopicSelection(st *State, raw string) string {
	topic, ok := ClassifyTopic(raw)
	if !ok {
		return msgTopicUnknown
	}
	st.Topic = topic

	if WantsTheory(raw) {
		st.clearProblem()
		st.Stage = StageExplanation
		return fmt.Sprintf(msgTheoryChosen, topic, m.bank.Theory(topic))
	}

	p := m.issue(st)
	st.Stage = StageQuiz
	return fmt.Sprintf(msgTopicChosen, topic, p.Prompt)
}

// handleProblemSolving is reached after theory was requested mid-quiz.
func (m *Machine) handleProblemSolving(st *State, raw string) string {
	if WantsTheory(raw) {
		if st.Topic == "" {
			st.Stage = StageTopicSelection
			return msgTopicUnknown
		}
		st.Stage = StageExplanation
		return fmt.Sprintf(msgTheoryAgain, m.bank.Theory(st.Topic))
	}
	return m.practice(st)
}

func (m *Machine) handleExplanation(st *State, raw string) string {
	if WantsTheory(raw) {
		if st.Topic == "" {
			st.Stage = StageTopicSelection
			return msgTopicUnknown
		}
		return fmt.Sprintf(msgTheoryAgain, m.bank.Theory(st.Topic))
	}
	return m.practice(st)
}

// practice moves to the quiz, re-posing an unsolved problem or issuing a
// new one.
func (m *Machine) practice(st *State) string {
	if st.Topic == "" {
		st.Stage = StageTopicSelection
		return msgTopicUnknown
	}
	st.Stage = StageQuiz
	if st.CurrentProblem != "" && !st.Solved {
		return fmt.Sprintf(msgResume, st.CurrentProblem)
	}
	p := m.issue(st)
	return fmt.Sprintf(msgPractice, p.Prompt)
}

func (m *Machine) handleQuiz(st *State, raw string) string {
	input := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case isOneOf(input, continueWords):
		if st.Topic == "" {
			st.Stage = StageTopicSelection
			return msgTopicUnknown
		}
		if m.exhausted(st) && !st.ExhaustionOffered {
			st.ExhaustionOffered = true
			return fmt.Sprintf(msgExhausted, st.Topic)
		}
		p := m.issue(st)
		return fmt.Sprintf(msgNextProblem, p.Prompt)

	case isOneOf(input, stopWords):
		st.Stage = StageTopicSelection
		return msgBackToTopics

	case isOneOf(input, theoryWords):
		st.Stage = StageProblemSolving
		return fmt.Sprintf(msgTheoryMidQuiz, m.bank.Theory(st.Topic))
	}

	return m.grade(st, raw)
}

func (m *Machine) grade(st *State, raw string) string {
	now := m.now()
	g := GradeAnswer(m.bank, st.CurrentProblem, st.Topic, raw)

	var elapsed time.Duration
	if !st.IssuedAt.IsZero() {
		elapsed = now.Sub(st.IssuedAt)
	}

	r := st.Results[st.Topic]
	r.Attempted++
	if g.Correct {
		r.Correct++
		st.CorrectCount++
		st.Solved = true
	}
	st.Results[st.Topic] = r

	m.obs.AnswerGraded(Outcome{
		Topic:      st.Topic,
		ProblemID:  g.Problem.ID,
		Prompt:     st.CurrentProblem,
		Answer:     raw,
		MathInput:  g.MathInput,
		Correct:    g.Correct,
		Identified: g.Identified,
		Elapsed:    elapsed,
		At:         now,
	})

	var extra []string
	if m.adaptive != nil {
		change := m.adaptive.Record(g.Correct, elapsed)
		extra = append(extra, m.adaptive.Encouragement(g.Correct, m.rng))
		if msg := adaptive.ChangeMessage(change); msg != "" {
			extra = append(extra, msg)
			m.log.Info("difficulty changed",
				zap.Stringer("change", change),
				zap.Float64("difficulty", m.adaptive.Difficulty()),
			)
		}
	}

	var b strings.Builder
	if g.Correct {
		b.WriteString(msgCorrect)
	} else {
		fmt.Fprintf(&b, msgWrongFormat, g.Hint)
	}
	for _, line := range extra {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if g.Correct {
		b.WriteString("\n\n")
		b.WriteString(msgAskAnother)
	}
	return b.String()
}

func (m *Machine) handleFarewell(st *State) string {
	reply := farewellMessage(st.UserName, st.CorrectCount)

	if st.Stage != StageFarewell {
		var difficulty float64
		if m.adaptive != nil {
			difficulty = m.adaptive.Difficulty()
		}
		m.obs.SessionEnded(Summary{
			Difficulty:   difficulty,
			UserName:     st.UserName,
			Level:        st.Level,
			CorrectCount: st.CorrectCount,
			Attempted:    st.Attempted(),
			Topics:       st.Results,
			StartedAt:    st.StartedAt,
			EndedAt:      m.now(),
		})
	}
	if m.adaptive != nil {
		m.adaptive.Reset()
	}

	st.reset(StageFarewell)
	return reply
}
