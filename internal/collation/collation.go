package collation

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyOrder        = errors.New("collation order is empty")
	ErrDuplicateGrapheme = errors.New("grapheme declared twice")
)

// UnknownLetterError reports a word containing material outside the
// declared alphabet. A filter or assimilation might have caused it.
type UnknownLetterError struct {
	Word string
}

func (e *UnknownLetterError) Error() string {
	return fmt.Sprintf("word with unknown letter: '%s'", e.Word)
}

// Sorter orders words by an arbitrary alphabet of one- or
// multi-character graphemes ("ch" after all "c"s, for example).
type Sorter struct {
	graphs []string       // declaration order, index is rank
	ranks  map[string]int // grapheme -> rank
	split  []string       // longest first, for tokenizing
}

// New builds a Sorter from a whitespace-separated alphabet
func New(order string) (*Sorter, error) {
	graphs := strings.Fields(order)
	if len(graphs) == 0 {
		return nil, ErrEmptyOrder
	}

	s := &Sorter{
		graphs: graphs,
		ranks:  make(map[string]int, len(graphs)),
	}
	for i, g := range graphs {
		if _, dup := s.ranks[g]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGrapheme, g)
		}
		s.ranks[g] = i
	}

	s.split = slices.Clone(graphs)
	sort.SliceStable(s.split, func(i, j int) bool {
		return utf8.RuneCountInString(s.split[i]) > utf8.RuneCountInString(s.split[j])
	})
	return s, nil
}

// Graphemes returns the alphabet in rank order
func (s *Sorter) Graphemes() []string {
	return slices.Clone(s.graphs)
}

// match returns the longest declared grapheme at the start of word
func (s *Sorter) match(word string) (string, bool) {
	for _, g := range s.split {
		if strings.HasPrefix(word, g) {
			return g, true
		}
	}
	return "", false
}

// Split breaks a word into graphemes, longest match first. Runes that are
// not declared become single tokens of their own.
func (s *Sorter) Split(word string) []string {
	var out []string
	for len(word) > 0 {
		g, ok := s.match(word)
		if !ok {
			_, size := utf8.DecodeRuneInString(word)
			g = word[:size]
		}
		out = append(out, g)
		word = word[len(g):]
	}
	return out
}

// WordAsValues turns a word into its sequence of alphabet ranks
func (s *Sorter) WordAsValues(word string) ([]int, error) {
	var values []int
	for rest := word; len(rest) > 0; {
		g, ok := s.match(rest)
		if !ok {
			return nil, &UnknownLetterError{Word: word}
		}
		values = append(values, s.ranks[g])
		rest = rest[len(g):]
	}
	return values, nil
}

// ValuesAsWord puts a word back together from its ranks
func (s *Sorter) ValuesAsWord(values []int) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(s.graphs[v])
	}
	return sb.String()
}

// Sort returns words ordered by the alphabet. Any word that cannot be
// tokenized aborts the sort.
func (s *Sorter) Sort(words []string) ([]string, error) {
	keyed := make([][]int, 0, len(words))
	for _, w := range words {
		v, err := s.WordAsValues(w)
		if err != nil {
			return nil, err
		}
		keyed = append(keyed, v)
	}

	slices.SortStableFunc(keyed, slices.Compare[[]int])

	out := make([]string, len(keyed))
	for i, v := range keyed {
		out[i] = s.ValuesAsWord(v)
	}
	return out, nil
}
