// Package problembank holds the fixed catalogue of exercises, theory notes
// and hints the tutor draws from.
package problembank

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackHint is used when neither the problem nor its topic has a hint.
const FallbackHint = "Sprawdź obliczenia jeszcze raz."

// FallbackTheory is used when a topic has no theory note.
const FallbackTheory = "Przejdźmy do przykładów."

//go:embed bank.yaml
var bankYAML []byte

// Bank is an immutable, indexed problem catalogue.
type Bank struct {
	topics  map[Topic]topicEntry
	ordered []Problem // all problems in topic enumeration order
	byID    map[string]Problem
}

var defaultBank *Bank

func init() {
	b, err := Load(bankYAML)
	if err != nil {
		panic(fmt.Sprintf("problembank: embedded bank invalid: %v", err))
	}
	defaultBank = b
}

// Default returns the embedded bank.
func Default() *Bank {
	return defaultBank
}

// Load parses and validates a bank from YAML.
func Load(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	if err := validateBank(f.Topics); err != nil {
		return nil, err
	}
	return buildBank(f.Topics), nil
}

func buildBank(entries []topicEntry) *Bank {
	b := &Bank{
		topics: make(map[Topic]topicEntry, len(entries)),
		byID:   make(map[string]Problem),
	}
	for _, e := range entries {
		b.topics[e.ID] = e
	}
	for _, t := range AllTopics {
		for _, p := range b.topics[t].Problems {
			b.ordered = append(b.ordered, p)
			b.byID[p.ID] = p
		}
	}
	return b
}

// Problems returns the problems registered for t, in authored order.
// The returned slice must not be modified.
func (b *Bank) Problems(t Topic) []Problem {
	return b.topics[t].Problems
}

// Count returns the number of problems for t.
func (b *Bank) Count(t Topic) int {
	return len(b.topics[t].Problems)
}

// ByID looks up a problem by its ID.
func (b *Bank) ByID(id string) (Problem, bool) {
	p, ok := b.byID[id]
	return p, ok
}

// Identify finds the problem whose key occurs in prompt. The first match
// in bank order wins.
func (b *Bank) Identify(prompt string) (Problem, bool) {
	if prompt == "" {
		return Problem{}, false
	}
	for _, p := range b.ordered {
		if strings.Contains(prompt, p.Key) {
			return p, true
		}
	}
	return Problem{}, false
}

// Theory returns the short theory note for t.
func (b *Bank) Theory(t Topic) string {
	if s := b.topics[t].Theory; s != "" {
		return s
	}
	return FallbackTheory
}

// TopicHint returns the generic hint for t.
func (b *Bank) TopicHint(t Topic) string {
	if s := b.topics[t].Hint; s != "" {
		return s
	}
	return FallbackHint
}
