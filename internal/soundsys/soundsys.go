package soundsys

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"github.com/wmannis/lexifer/internal/collation"
	"github.com/wmannis/lexifer/internal/features"
	"github.com/wmannis/lexifer/internal/filter"
	"github.com/wmannis/lexifer/internal/selector"
)

const (
	DefaultRandomRate = 10
	// DefaultMaxAttempts bounds consecutive draws that add no new word
	DefaultMaxAttempts = 10000

	optionalMark = '?'
	repeatMark   = '!'
	// anti-repeat redraws before giving up on a class
	maxRedraws = 1000
)

// Stats counts generation work since the System was created
type Stats struct {
	Attempts int
	Rejected int
	Words    int
}

// System holds a phonology: phoneme classes, weighted word rules, an
// ordered filter chain, an optional alphabet order and optional
// assimilation behaviour. It is not safe for concurrent use.
type System struct {
	rng *rand.Rand
	log logr.Logger

	classes    map[rune]*selector.Selector
	classOrder []rune
	rules      []selector.Weighted
	ruleSel    *selector.Selector
	filters    filter.Chain
	sorter     *collation.Sorter
	features   *features.Table

	assimilate  bool
	metathesis  bool
	randRate    int
	maxAttempts int

	stats Stats
}

// Option configures a System
type Option func(*System)

// WithRand sets the random source used for every draw
func WithRand(rng *rand.Rand) Option {
	return func(s *System) {
		s.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(log logr.Logger) Option {
	return func(s *System) {
		s.log = log
	}
}

// WithMaxAttempts sets how many consecutive unproductive draws Generate
// tolerates before giving up
func WithMaxAttempts(n int) Option {
	return func(s *System) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// New creates an empty System
func New(opts ...Option) *System {
	s := &System{
		log:         logr.Discard(),
		classes:     make(map[rune]*selector.Selector),
		randRate:    DefaultRandomRate,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Rand returns the random source shared by the System
func (s *System) Rand() *rand.Rand {
	return s.rng
}

// AddPhonemeClass defines a class from either bare phonemes ("a i u"),
// which get natural weights, or weighted pairs ("a:5 i:3 u:1").
func (s *System) AddPhonemeClass(name, spec string) error {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || size != len(name) || r == optionalMark || r == repeatMark {
		return fmt.Errorf("%w: %q", ErrBadClassName, name)
	}

	var weighted []selector.Weighted
	if selector.IsWeighted(spec) {
		var err error
		if weighted, err = selector.ParseWeighted(spec); err != nil {
			return fmt.Errorf("phoneme class %s: %w", name, err)
		}
	} else {
		weighted = selector.NaturalWeights(strings.Fields(spec), s.rng)
	}

	sel, err := selector.New(weighted, s.rng)
	if err != nil {
		return fmt.Errorf("phoneme class %s: %w", name, err)
	}
	if _, exists := s.classes[r]; !exists {
		s.classOrder = append(s.classOrder, r)
	}
	s.classes[r] = sel
	return nil
}

// Classes returns the class names in declaration order
func (s *System) Classes() []string {
	out := make([]string, len(s.classOrder))
	for i, r := range s.classOrder {
		out[i] = string(r)
	}
	return out
}

// Phonemes returns the members of a class in declaration order
func (s *System) Phonemes(name string) ([]string, bool) {
	r, _ := utf8.DecodeRuneInString(name)
	sel, ok := s.classes[r]
	if !ok {
		return nil, false
	}
	return sel.Items(), true
}

// AddRule registers a word shape. Adding the same rule again replaces its weight.
func (s *System) AddRule(rule string, weight float64) error {
	if rule == "" || weight < 0 {
		return fmt.Errorf("%w: %q:%v", ErrBadRule, rule, weight)
	}
	if err := checkRepeats(rule); err != nil {
		return err
	}
	s.ruleSel = nil
	for i := range s.rules {
		if s.rules[i].Item == rule {
			s.rules[i].Weight = weight
			return nil
		}
	}
	s.rules = append(s.rules, selector.Weighted{Item: rule, Weight: weight})
	return nil
}

// Rules returns the registered word shapes with their weights
func (s *System) Rules() []selector.Weighted {
	out := make([]selector.Weighted, len(s.rules))
	copy(out, s.rules)
	return out
}

// AddFilter appends a substitution. The replacement may be
// filter.DeleteMarker or filter.RejectMarker.
func (s *System) AddFilter(pattern, replacement string) error {
	return s.filters.Add(pattern, replacement)
}

// AddReject appends a filter rejecting any word that matches pattern
func (s *System) AddReject(pattern string) error {
	return s.filters.AddReject(pattern)
}

// FilterCount returns how many filters are configured
func (s *System) FilterCount() int {
	return s.filters.Len()
}

// SetCollationOrder declares the alphabet used for sorting and for
// splitting words into phonemes
func (s *System) SetCollationOrder(order string) error {
	sorter, err := collation.New(order)
	if err != nil {
		return err
	}
	s.sorter = sorter
	return nil
}

// HasCollation reports whether an alphabet order is configured
func (s *System) HasCollation() bool {
	return s.sorter != nil
}

// SetRandomRate sets the percent chance of including an optional symbol
func (s *System) SetRandomRate(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: %d", ErrBadRandomRate, percent)
	}
	s.randRate = percent
	return nil
}

// EnableFeatureTable loads the standard phoneme features in a notation
func (s *System) EnableFeatureTable(notation features.Notation) error {
	table, err := features.New(notation)
	if err != nil {
		return err
	}
	s.features = table
	return nil
}

// EnableVoiceAssimilation turns on voice and nasal place assimilation
func (s *System) EnableVoiceAssimilation() {
	s.assimilate = true
}

// EnableCoronalMetathesis turns on coronal metathesis
func (s *System) EnableCoronalMetathesis() {
	s.metathesis = true
}

// AssimilationRequested reports whether either assimilation pass is on
func (s *System) AssimilationRequested() bool {
	return s.assimilate || s.metathesis
}

// Stats returns cumulative generation counters
func (s *System) Stats() Stats {
	return s.stats
}
