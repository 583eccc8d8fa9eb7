package problembank

import (
	"fmt"
	"strings"
)

// validateBank performs all structural checks on the parsed topics.
// Returns a combined error describing all problems found, or nil if valid.
func validateBank(entries []topicEntry) error {
	var errs []string

	seenTopic := make(map[Topic]bool)
	seenID := make(map[string]bool)
	var all []Problem

	for _, e := range entries {
		if !e.ID.Valid() {
			errs = append(errs, fmt.Sprintf("unknown topic %q", e.ID))
			continue
		}
		if seenTopic[e.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic %q", e.ID))
		}
		seenTopic[e.ID] = true

		if len(e.Problems) == 0 {
			errs = append(errs, fmt.Sprintf("topic %q has no problems", e.ID))
		}

		for _, p := range e.Problems {
			if p.ID == "" {
				errs = append(errs, fmt.Sprintf("topic %q: problem with empty ID", e.ID))
				continue
			}
			if seenID[p.ID] {
				errs = append(errs, fmt.Sprintf("duplicate problem ID: %q", p.ID))
			}
			seenID[p.ID] = true

			if p.Key == "" || !strings.Contains(p.Prompt, p.Key) {
				errs = append(errs, fmt.Sprintf("problem %q: key %q not found in prompt", p.ID, p.Key))
			}
			if len(p.Answers) == 0 {
				errs = append(errs, fmt.Sprintf("problem %q has no accepted answers", p.ID))
			}
			for _, a := range p.Answers {
				if strings.TrimSpace(a) == "" {
					errs = append(errs, fmt.Sprintf("problem %q has an empty accepted answer", p.ID))
				}
			}
			if p.Hint == "" {
				errs = append(errs, fmt.Sprintf("problem %q has no hint", p.ID))
			}
			if !p.Difficulty.Valid() {
				errs = append(errs, fmt.Sprintf("problem %q: invalid difficulty %q", p.ID, p.Difficulty))
			}
			all = append(all, p)
		}
	}

	for _, t := range AllTopics {
		if !seenTopic[t] {
			errs = append(errs, fmt.Sprintf("missing topic %q", t))
		}
	}

	// A key that occurs in another prompt would make identification ambiguous.
	for _, p := range all {
		for _, q := range all {
			if p.ID != q.ID && p.Key != "" && strings.Contains(q.Prompt, p.Key) {
				errs = append(errs, fmt.Sprintf("key %q of %q also occurs in prompt of %q", p.Key, p.ID, q.ID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
