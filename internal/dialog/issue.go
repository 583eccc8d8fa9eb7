package dialog

import (
	"go.uber.org/zap"

	"github.com/abhisek/korepetytor/internal/problembank"
)

// issue hands out a problem of st.Topic that has not been used since the
// last reset. When every problem was used the used-set is cleared first.
// With adaptive mode on, problems of the current difficulty band are
// preferred among the unused ones.
func (m *Machine) issue(st *State) problembank.Problem {
	all := m.bank.Problems(st.Topic)
	used := st.used(st.Topic)

	unused := unusedProblems(all, used)
	reset := false
	if len(unused) == 0 {
		clear(used)
		unused = all
		reset = true
		m.log.Info("problem pool exhausted, starting over",
			zap.String("topic", st.Topic.String()),
			zap.Int("problems", len(all)),
		)
	}

	candidates := unused
	if m.adaptive != nil {
		if banded := inBand(unused, m.adaptive.Band()); len(banded) > 0 {
			candidates = banded
		}
	}

	p := candidates[m.rng.IntN(len(candidates))]
	used[p.ID] = struct{}{}

	st.CurrentProblem = p.Prompt
	st.CurrentProblemID = p.ID
	st.Solved = false
	st.ExhaustionOffered = false
	st.IssuedAt = m.now()

	m.obs.ProblemIssued(Issue{
		Topic:     st.Topic,
		ProblemID: p.ID,
		Prompt:    p.Prompt,
		Reset:     reset,
	})
	return p
}

// exhausted reports whether every problem of st.Topic has been used.
func (m *Machine) exhausted(st *State) bool {
	return len(unusedProblems(m.bank.Problems(st.Topic), st.used(st.Topic))) == 0
}

func unusedProblems(all []problembank.Problem, used map[string]struct{}) []problembank.Problem {
	var out []problembank.Problem
	for _, p := range all {
		if _, ok := used[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func inBand(problems []problembank.Problem, band problembank.Difficulty) []problembank.Problem {
	var out []problembank.Problem
	for _, p := range problems {
		if p.Difficulty == band {
			out = append(out, p)
		}
	}
	return out
}
