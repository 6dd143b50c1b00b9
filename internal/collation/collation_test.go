package collation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const order = "a á ch h i k l ɬ m n o p s š t u y"

func TestNew(t *testing.T) {
	_, err := New("   ")
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = New("a b a")
	assert.ErrorIs(t, err, ErrDuplicateGrapheme)

	s, err := New(order)
	require.NoError(t, err)
	assert.Equal(t, "ch", s.Graphemes()[2])
}

func TestSplitLongestMatch(t *testing.T) {
	s, err := New("c ch h a")
	require.NoError(t, err)

	assert.Equal(t, []string{"ch", "a", "ch"}, s.Split("chach"))
	assert.Equal(t, []string{"h", "c"}, s.Split("hc"))
	assert.Equal(t, []string{"c", "a", "ch"}, s.Split("cach"))
	assert.Empty(t, s.Split(""))
}

func TestSplitKeepsUnknownRunes(t *testing.T) {
	s, err := New("t ʃ tʃ a")
	require.NoError(t, err)
	assert.Equal(t, []string{"tʃ", "a", "ŋ", "a"}, s.Split("tʃaŋa"))
}

func TestRoundTrip(t *testing.T) {
	s, err := New(order)
	require.NoError(t, err)

	for _, w := range []string{"chaɬi", "šuy", "a", "hchh", "ɬɬɬ"} {
		values, err := s.WordAsValues(w)
		require.NoError(t, err)
		assert.Equal(t, w, s.ValuesAsWord(values))
	}
}

func TestWordAsValues(t *testing.T) {
	s, err := New(order)
	require.NoError(t, err)

	values, err := s.WordAsValues("cha")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, values)

	_, err = s.WordAsValues("bad")
	var unknown *UnknownLetterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bad", unknown.Word)
	assert.Contains(t, err.Error(), "'bad'")
}

func TestSort(t *testing.T) {
	s, err := New(order)
	require.NoError(t, err)

	sorted, err := s.Sort([]string{"ha", "cha", "ka", "ák", "ak", "a"})
	require.NoError(t, err)
	// ch sorts after á and before h
	assert.Equal(t, []string{"a", "ak", "ák", "cha", "ha", "ka"}, sorted)

	_, err = s.Sort([]string{"ka", "zebra"})
	assert.Error(t, err)
}
