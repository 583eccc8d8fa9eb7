package dialog

import (
	"strings"

	"github.com/abhisek/korepetytor/internal/normalize"
	"github.com/abhisek/korepetytor/internal/problembank"
)

// Grade is the result of checking one answer.
type Grade struct {
	Correct bool

	// Problem is the bank entry the prompt was identified as. Zero when
	// Identified is false.
	Problem    problembank.Problem
	Identified bool

	// Hint is the problem hint, or the topic hint when the prompt could
	// not be identified.
	Hint string

	// MathInput is the normalized form of the answer.
	MathInput string
}

// GradeAnswer checks raw against the accepted answers of the problem whose
// key occurs in prompt. An accepted answer counts when it is a substring of
// the normalized input or of the lowercased raw input, so "4" also accepts
// "14". An unidentified prompt is always graded wrong with the topic hint.
func GradeAnswer(bank *problembank.Bank, prompt string, topic problembank.Topic, raw string) Grade {
	p, ok := bank.Identify(prompt)
	if !ok {
		return Grade{Hint: bank.TopicHint(topic), MathInput: normalize.Normalize(raw)}
	}

	mathInput := normalize.Normalize(raw)
	lower := strings.ToLower(strings.TrimSpace(raw))
	dotted := strings.ReplaceAll(lower, ",", ".")

	correct := false
	for _, ans := range p.Answers {
		if strings.Contains(mathInput, ans) || strings.Contains(lower, ans) || strings.Contains(dotted, ans) {
			correct = true
			break
		}
	}

	return Grade{
		Correct:    correct,
		Problem:    p,
		Identified: true,
		Hint:       p.Hint,
		MathInput:  mathInput,
	}
}
