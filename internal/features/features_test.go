package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ipaTable(t *testing.T) *Table {
	t.Helper()
	table, err := New(IPA)
	require.NoError(t, err)
	return table
}

func TestNew(t *testing.T) {
	_, err := New("klingon")
	assert.ErrorIs(t, err, ErrUnknownNotation)

	dg, err := New(Digraph)
	require.NoError(t, err)
	assert.Equal(t, Digraph, dg.Notation())

	p, ok := dg.Lookup("ch")
	assert.True(t, ok)
	assert.Equal(t, Phoneme{Symbol: "ch", Voice: Voiceless, Place: Postalveolar, Manner: Affricate}, p)

	_, ok = dg.Lookup("tʃ")
	assert.False(t, ok, "IPA symbol must not be present in the digraph table")
}

func TestLookupUsesFirstRow(t *testing.T) {
	table := ipaTable(t)
	p, ok := table.Lookup("m")
	require.True(t, ok)
	assert.Equal(t, Bilabial, p.Place)
}

func TestVoiceAssimilate(t *testing.T) {
	assert := assert.New(t)
	table := ipaTable(t)

	assert.Equal("z", table.VoiceAssimilate("s", "d"))
	assert.Equal("s", table.VoiceAssimilate("s", "n"), "nasals do not trigger voicing")
	assert.Equal("s", table.VoiceAssimilate("s", "t"))
	assert.Equal("k", table.VoiceAssimilate("g", "t"))
	assert.Equal("s", table.VoiceAssimilate("s", "a"), "unknown following phoneme")
	assert.Equal("a", table.VoiceAssimilate("a", "d"), "unknown phoneme is unchanged")
	assert.Equal("m", table.VoiceAssimilate("m", "p"), "no voiceless nasal exists")
}

func TestNasalAssimilate(t *testing.T) {
	assert := assert.New(t)
	table := ipaTable(t)

	assert.Equal("m", table.NasalAssimilate("n", "p"))
	assert.Equal("ŋ", table.NasalAssimilate("n", "k"))
	assert.Equal("n", table.NasalAssimilate("m", "t"))
	assert.Equal("m", table.NasalAssimilate("n", "f"), "labiodental nasal is m")
	assert.Equal("ɴ", table.NasalAssimilate("n", "q"))
	assert.Equal("t", table.NasalAssimilate("t", "k"), "not a nasal")
	assert.Equal("n", table.NasalAssimilate("n", "ʃ"), "no postalveolar nasal")
	assert.Equal("n", table.NasalAssimilate("n", "o"))
}

func TestCoronalMetathesis(t *testing.T) {
	assert := assert.New(t)
	table := ipaTable(t)

	a, b := table.CoronalMetathesis("t", "k")
	assert.Equal([]string{"k", "t"}, []string{a, b})

	a, b = table.CoronalMetathesis("t", "m")
	assert.Equal([]string{"t", "m"}, []string{a, b}, "differing manner")

	a, b = table.CoronalMetathesis("n", "m")
	assert.Equal([]string{"m", "n"}, []string{a, b})

	a, b = table.CoronalMetathesis("d", "b")
	assert.Equal([]string{"b", "d"}, []string{a, b})

	a, b = table.CoronalMetathesis("s", "k")
	assert.Equal([]string{"s", "k"}, []string{a, b}, "sibilant is not a stop")

	a, b = table.CoronalMetathesis("k", "t")
	assert.Equal([]string{"k", "t"}, []string{a, b}, "first must be alveolar")

	a, b = table.CoronalMetathesis("t", "q")
	assert.Equal([]string{"t", "q"}, []string{a, b}, "uvular does not swap")
}

func TestApplyAssimilations(t *testing.T) {
	table := ipaTable(t)

	t.Run("Nasal place", func(t *testing.T) {
		assert.Equal(t, []string{"a", "m", "p", "a"}, table.ApplyAssimilations([]string{"a", "n", "p", "a"}))
	})

	t.Run("Voicing", func(t *testing.T) {
		assert.Equal(t, []string{"a", "z", "d", "a"}, table.ApplyAssimilations([]string{"a", "s", "d", "a"}))
	})

	t.Run("Multigraph phonemes", func(t *testing.T) {
		word := []string{"a", "tʃ", "b", "a", "h", "u", "n", "b", "i"}
		assert.Equal(t,
			[]string{"a", "dʒ", "b", "a", "h", "u", "m", "b", "i"},
			table.ApplyAssimilations(word))
	})

	t.Run("Input untouched", func(t *testing.T) {
		word := []string{"n", "k"}
		table.ApplyAssimilations(word)
		assert.Equal(t, []string{"n", "k"}, word)
	})

	t.Run("Short words", func(t *testing.T) {
		assert.Equal(t, []string{"n"}, table.ApplyAssimilations([]string{"n"}))
		assert.Empty(t, table.ApplyAssimilations(nil))
	})
}

func TestApplyCoronalMetathesisCascades(t *testing.T) {
	table := ipaTable(t)

	// n swaps with m, then again with ŋ.
	assert.Equal(t, []string{"m", "ŋ", "n"}, table.ApplyCoronalMetathesis([]string{"n", "m", "ŋ"}))
	assert.Equal(t, []string{"a", "k", "t", "a"}, table.ApplyCoronalMetathesis([]string{"a", "t", "k", "a"}))
	assert.Equal(t, []string{"t"}, table.ApplyCoronalMetathesis([]string{"t"}))
}

func TestDigraphAssimilation(t *testing.T) {
	table, err := New(Digraph)
	require.NoError(t, err)

	assert.Equal(t, "j", table.VoiceAssimilate("ch", "d"))
	assert.Equal(t, "ng", table.NasalAssimilate("n", "kh"))
	assert.Equal(t, []string{"a", "ng", "g", "a"}, table.ApplyAssimilations([]string{"a", "n", "g", "a"}))
}
