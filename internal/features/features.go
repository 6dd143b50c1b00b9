package features

import (
	"errors"
	"fmt"
)

// Voicing of a consonant
type Voicing string

const (
	Voiced    Voicing = "voiced"
	Voiceless Voicing = "voiceless"
)

// Notation selects which surface symbols the table is keyed by
type Notation string

const (
	IPA     Notation = "ipa"
	Digraph Notation = "digraph"
)

var ErrUnknownNotation = errors.New("unknown notation")

// Phoneme holds the articulatory facts of one table row
type Phoneme struct {
	Symbol string
	Voice  Voicing
	Place  string
	Manner string
}

// Table is an immutable phoneme feature table in one notation. Lookups
// by symbol use the first row declared for it, as a symbol may appear
// more than once (m is both bilabial and labiodental).
type Table struct {
	notation Notation
	rows     []Phoneme
	bySymbol map[string][]int
}

// New builds the standard feature table for a notation
func New(notation Notation) (*Table, error) {
	if notation != IPA && notation != Digraph {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNotation, notation)
	}

	t := &Table{
		notation: notation,
		rows:     make([]Phoneme, 0, len(catalogue)),
		bySymbol: make(map[string][]int),
	}
	for _, e := range catalogue {
		sym := e.ipa
		if notation == Digraph {
			sym = e.digraph
		}
		t.bySymbol[sym] = append(t.bySymbol[sym], len(t.rows))
		t.rows = append(t.rows, Phoneme{Symbol: sym, Voice: e.voice, Place: e.place, Manner: e.manner})
	}
	return t, nil
}

// Notation returns the notation the table was built for
func (t *Table) Notation() Notation {
	return t.notation
}

// Lookup returns the first row for a symbol
func (t *Table) Lookup(symbol string) (Phoneme, bool) {
	idx, ok := t.bySymbol[symbol]
	if !ok {
		return Phoneme{}, false
	}
	return t.rows[idx[0]], true
}

// first returns the first row satisfying match, in declaration order
func (t *Table) first(match func(Phoneme) bool) (Phoneme, bool) {
	for _, r := range t.rows {
		if match(r) {
			return r, true
		}
	}
	return Phoneme{}, false
}

// anyRow reports whether any row for symbol satisfies match
func (t *Table) anyRow(symbol string, match func(Phoneme) bool) bool {
	for _, i := range t.bySymbol[symbol] {
		if match(t.rows[i]) {
			return true
		}
	}
	return false
}

// NasalAssimilate returns the nasal at ph2's place of articulation when
// ph1 is a nasal; otherwise ph1.
func (t *Table) NasalAssimilate(ph1, ph2 string) string {
	p1, ok1 := t.Lookup(ph1)
	p2, ok2 := t.Lookup(ph2)
	if !ok1 || !ok2 || p1.Manner != Nasal {
		return ph1
	}
	m, ok := t.first(func(r Phoneme) bool {
		return r.Manner == Nasal && r.Place == p2.Place
	})
	if !ok {
		return ph1
	}
	return m.Symbol
}

// VoiceAssimilate returns the phoneme with ph1's place and manner and
// ph2's voicing. Nasals do not trigger voicing assimilation.
func (t *Table) VoiceAssimilate(ph1, ph2 string) string {
	p1, ok1 := t.Lookup(ph1)
	p2, ok2 := t.Lookup(ph2)
	if !ok1 || !ok2 || p2.Manner == Nasal {
		return ph1
	}
	m, ok := t.first(func(r Phoneme) bool {
		return r.Place == p1.Place && r.Manner == p1.Manner && r.Voice == p2.Voice
	})
	if !ok {
		return ph1
	}
	return m.Symbol
}

// CoronalMetathesis swaps an alveolar followed by a velar or bilabial
// stop or nasal of the same manner.
func (t *Table) CoronalMetathesis(ph1, ph2 string) (string, string) {
	if !t.anyRow(ph1, func(r Phoneme) bool { return r.Place == Alveolar }) {
		return ph1, ph2
	}
	p1, _ := t.Lookup(ph1)
	p2, ok := t.Lookup(ph2)
	if !ok || p1.Manner != p2.Manner {
		return ph1, ph2
	}
	swap := t.anyRow(ph2, func(r Phoneme) bool {
		return (r.Place == Velar || r.Place == Bilabial) && (r.Manner == Stop || r.Manner == Nasal)
	})
	if !swap {
		return ph1, ph2
	}
	return ph2, ph1
}

// ApplyAssimilations runs voice then nasal assimilation over a word split
// into phonemes. Each position looks ahead at the unmodified word.
func (t *Table) ApplyAssimilations(word []string) []string {
	out := make([]string, len(word))
	copy(out, word)
	for i := 0; i < len(word)-1; i++ {
		out[i] = t.VoiceAssimilate(word[i], word[i+1])
		out[i] = t.NasalAssimilate(out[i], word[i+1])
	}
	return out
}

// ApplyCoronalMetathesis scans pairs left to right over a working copy,
// so a swapped phoneme may be swapped again with its next neighbour.
func (t *Table) ApplyCoronalMetathesis(word []string) []string {
	out := make([]string, len(word))
	copy(out, word)
	for i := 0; i < len(out)-1; i++ {
		out[i], out[i+1] = t.CoronalMetathesis(out[i], out[i+1])
	}
	return out
}
