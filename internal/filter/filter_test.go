package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterApply(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		pattern, replacement, in, out string
	}{
		{"hy", "š", "ahya", "aša"},
		{"(lł|lł)", "l", "alła", "ala"},
		{`s(t|k)`, `\1s`, "isti", "itsi"},
		{`(k)w`, `\g<1>`, "akwa", "aka"},
		{"aa", "a", "aaaaa", "aaa"},
		{"h", "!", "aha", "aa"},
		{"x", "$", "axa", "a$a"},
		{`a(?=t)`, "e", "atak", "etak"},
	}
	for _, c := range cases {
		f, err := New(c.pattern, c.replacement)
		require.NoError(t, err)
		got, err := f.Apply(c.in)
		assert.NoError(err)
		assert.Equalf(c.out, got, "%s > %s on %s", c.pattern, c.replacement, c.in)
	}
}

func TestFilterBadPattern(t *testing.T) {
	_, err := New("(ab", "c")
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestChainApply(t *testing.T) {
	var c Chain
	require.NoError(t, c.Add("hy", "š"))
	require.NoError(t, c.Add(`s(t|k)`, `\1s`))
	require.NoError(t, c.AddReject("nn|ll|ss|sš"))
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Filters()[2].Rejects())

	t.Run("Accepted", func(t *testing.T) {
		r, err := c.Apply("ahyasta")
		require.NoError(t, err)
		assert.False(t, r.IsRejected())
		assert.Equal(t, "ašatsa", r.Word())
	})

	t.Run("Rejected by earlier substitution", func(t *testing.T) {
		// hy -> š produces sš, which the reject filter catches
		r, err := c.Apply("ashya")
		require.NoError(t, err)
		assert.True(t, r.IsRejected())
		assert.Empty(t, r.Word())
	})

	t.Run("Rejected", func(t *testing.T) {
		r, err := c.Apply("anna")
		require.NoError(t, err)
		assert.Equal(t, Rejected, r)
	})
}

func TestChainStopsAtReject(t *testing.T) {
	var c Chain
	require.NoError(t, c.Add("q", RejectMarker))
	// Would remove the marker if it ever ran.
	require.NoError(t, c.Add("REJECT", "!"))

	r, err := c.Apply("aqa")
	require.NoError(t, err)
	assert.True(t, r.IsRejected())
}

func TestEmptyChain(t *testing.T) {
	var c Chain
	r, err := c.Apply("word")
	require.NoError(t, err)
	assert.Equal(t, Accepted("word"), r)
}

func TestClusterField(t *testing.T) {
	assert := assert.New(t)

	_, err := NewClusterField(nil)
	assert.ErrorIs(err, ErrNoColumns)

	cf, err := NewClusterField([]string{"p", "t", "k"})
	require.NoError(t, err)
	assert.Equal([]string{"p", "t", "k"}, cf.Columns())

	rules, err := cf.Row("n", []string{"mp", "+", "-"})
	require.NoError(t, err)
	assert.Equal([]Rule{
		{Pattern: "np", Replacement: "mp"},
		{Pattern: "nk", Replacement: RejectMarker},
	}, rules)

	rules, err = cf.Row("s", []string{"+", "+", "+"})
	require.NoError(t, err)
	assert.Empty(rules)

	_, err = cf.Row("t", []string{"+", "+"})
	assert.ErrorIs(err, ErrRowTooShort)

	_, err = cf.Row("t", []string{"+", "+", "-", "-"})
	assert.ErrorIs(err, ErrRowTooLong)
}
