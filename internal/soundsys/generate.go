package soundsys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wmannis/lexifer/internal/filter"
	"github.com/wmannis/lexifer/internal/selector"
)

// ExpandRule produces one candidate word from a rule. Class names draw
// from their class, other characters are literal. A symbol followed by ?
// is included at the random rate; a class followed by ! is redrawn until
// it differs from the previous phoneme.
func (s *System) ExpandRule(rule string) (string, error) {
	symbols := []rune(rule)
	n := len(symbols)
	var out []string

	for i, c := range symbols {
		if c == optionalMark || c == repeatMark {
			continue
		}
		var next rune
		if i < n-1 {
			next = symbols[i+1]
		}
		sel, isClass := s.classes[c]

		switch {
		case next == optionalMark:
			if s.rng.Intn(101) >= s.randRate {
				continue
			}
			if isClass {
				out = append(out, sel.Select())
			} else {
				out = append(out, string(c))
			}

		case next == repeatMark:
			// Look past an optional marker to the symbol it modifies.
			prev := rune(0)
			if i > 0 {
				prev = symbols[i-1]
				if prev == optionalMark && i >= 2 {
					prev = symbols[i-2]
				}
			}
			if c != prev {
				return "", fmt.Errorf("%w: %s", ErrMisplacedRepeat, rule)
			}
			if !isClass {
				return "", fmt.Errorf("%w: %s", ErrRepeatLiteral, rule)
			}
			ph, err := s.drawDistinct(sel, out)
			if err != nil {
				return "", fmt.Errorf("%w: %s", err, rule)
			}
			out = append(out, ph)

		case isClass:
			out = append(out, sel.Select())

		default:
			out = append(out, string(c))
		}
	}
	return strings.Join(out, ""), nil
}

// checkRepeats reports a ! that does not follow the symbol it repeats,
// looking past an optional marker
func checkRepeats(rule string) error {
	symbols := []rune(rule)
	for i, c := range symbols {
		if c != repeatMark {
			continue
		}
		if i < 2 || symbols[i-1] == repeatMark {
			return fmt.Errorf("%w: %s", ErrMisplacedRepeat, rule)
		}
		sym, prev := symbols[i-1], symbols[i-2]
		if prev == optionalMark {
			if i < 3 {
				return fmt.Errorf("%w: %s", ErrMisplacedRepeat, rule)
			}
			prev = symbols[i-3]
		}
		if sym != prev {
			return fmt.Errorf("%w: %s", ErrMisplacedRepeat, rule)
		}
	}
	return nil
}

// drawDistinct draws from sel until the result differs from the last
// emitted phoneme
func (s *System) drawDistinct(sel *selector.Selector, emitted []string) (string, error) {
	ph := sel.Select()
	if len(emitted) == 0 {
		return ph, nil
	}
	last := emitted[len(emitted)-1]
	for i := 0; ph == last; i++ {
		if i >= maxRedraws {
			return "", ErrRepeatUnsatisfied
		}
		ph = sel.Select()
	}
	return ph, nil
}

// ApplyFilters runs assimilations (when an alphabet is declared) and then
// the filter chain over a candidate word
func (s *System) ApplyFilters(word string) (filter.Result, error) {
	if s.sorter != nil && s.AssimilationRequested() {
		if s.features == nil {
			return filter.Rejected, ErrNoFeatureTable
		}
		phonemes := s.sorter.Split(word)
		if s.assimilate {
			phonemes = s.features.ApplyAssimilations(phonemes)
		}
		if s.metathesis {
			phonemes = s.features.ApplyCoronalMetathesis(phonemes)
		}
		word = strings.Join(phonemes, "")
	}
	return s.filters.Apply(word)
}

func (s *System) ruleSelector() (*selector.Selector, error) {
	if s.ruleSel != nil {
		return s.ruleSel, nil
	}
	if len(s.rules) == 0 {
		return nil, ErrNoRules
	}
	sel, err := selector.New(s.rules, s.rng)
	if err != nil {
		return nil, fmt.Errorf("word rules: %w", err)
	}
	s.ruleSel = sel
	return sel, nil
}

// Generate returns count distinct words. Unless unsorted is set, the
// words are ordered by the declared alphabet, or by code point when
// there is none.
func (s *System) Generate(count int, unsorted bool) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCount, count)
	}
	rules, err := s.ruleSelector()
	if err != nil {
		return nil, err
	}
	if s.sorter != nil && s.AssimilationRequested() && s.features == nil {
		return nil, ErrNoFeatureTable
	}

	seen := make(map[string]struct{}, count)
	words := make([]string, 0, count)
	attempts, stalled, rejected := 0, 0, 0

	for len(words) < count {
		if stalled >= s.maxAttempts {
			s.record(attempts, rejected, 0)
			return nil, &ExhaustedError{Requested: count, Produced: len(words), Attempts: attempts}
		}
		attempts++
		stalled++

		candidate, err := s.ExpandRule(rules.Select())
		if err != nil {
			return nil, err
		}
		result, err := s.ApplyFilters(candidate)
		if err != nil {
			return nil, err
		}
		if result.IsRejected() {
			rejected++
			continue
		}
		w := result.Word()
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
		stalled = 0
	}
	s.record(attempts, rejected, len(words))

	if !unsorted {
		if s.sorter != nil {
			if words, err = s.sorter.Sort(words); err != nil {
				return nil, err
			}
		} else {
			sort.Strings(words)
		}
	}

	s.log.V(1).Info("generated words", "requested", count, "attempts", attempts, "rejected", rejected)
	return words, nil
}

func (s *System) record(attempts, rejected, words int) {
	s.stats.Attempts += attempts
	s.stats.Rejected += rejected
	s.stats.Words += words
}
