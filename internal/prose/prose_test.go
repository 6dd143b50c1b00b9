package prose

import (
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmannis/lexifer/internal/soundsys"
)

type fixedSource struct {
	words []string
	next  int
	err   error
}

func (f *fixedSource) Generate(count int, unsorted bool) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, f.words[f.next%len(f.words)])
		f.next++
	}
	return out, nil
}

func TestCapitalize(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Ka", Capitalize("ka"))
	assert.Equal("Ŋaʃi", Capitalize("ŋaʃi"))
	assert.Equal("Éta", Capitalize("éTA"))
	assert.Equal("A-ba", Capitalize("a-ba"))
	assert.Equal("", Capitalize(""))
}

var sentenceShape = regexp.MustCompile(`^[A-Z][a-z]*( [a-z]+,?){3,11}[.?]$`)

func TestText(t *testing.T) {
	src := &fixedSource{words: []string{"ka", "lu", "mi", "tesa"}}
	rng := rand.New(rand.NewSource(17))

	text, err := Text(src, 40, rng)
	require.NoError(t, err)

	sentences := regexp.MustCompile(`[^.?]+[.?]`).FindAllString(text, -1)
	require.Len(t, sentences, 40)

	for _, s := range sentences {
		s = strings.TrimSpace(s)
		assert.Regexp(t, sentenceShape, s)
		words := strings.Fields(s)
		commas := strings.Count(s, ",")
		if len(words)-1 >= commaLength {
			assert.Equal(t, 1, commas, "long sentence without comma: %s", s)
		} else {
			assert.Zero(t, commas, "short sentence with comma: %s", s)
		}
	}
}

func TestTextPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Text(&fixedSource{err: boom}, 3, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, boom)
}

func TestParagraphWithSoundSystem(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	sys := soundsys.New(soundsys.WithRand(rng))
	require.NoError(t, sys.AddPhonemeClass("V", "a i u"))
	require.NoError(t, sys.AddPhonemeClass("C", "p t k m n s"))
	require.NoError(t, sys.AddRule("CVCV", 5))
	require.NoError(t, sys.AddRule("CVC", 3))

	para, err := Paragraph(sys, 10, 70, rng)
	require.NoError(t, err)
	assert.NotEmpty(t, para)
	for _, line := range strings.Split(para, "\n") {
		assert.LessOrEqual(t, len(line), 70)
	}
	assert.Regexp(t, `^[A-Z]`, para)
	assert.Regexp(t, `[.?]$`, para)
}
