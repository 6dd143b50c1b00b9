// Package prose composes pseudo-text paragraphs from generated words.
package prose

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wmannis/lexifer/internal/textwrap"
)

const (
	DefaultSentences = 25

	minSentence = 3
	maxSentence = 11
	// sentences at least this long get a comma
	commaLength = 7
	// one in questionOdds sentences ends with a question mark
	questionOdds = 71
)

// WordSource produces words; *soundsys.System satisfies it
type WordSource interface {
	Generate(count int, unsorted bool) ([]string, error)
}

var (
	title = cases.Title(language.Und)
	lower = cases.Lower(language.Und)
)

// Capitalize upper-cases the first letter of word and lower-cases the rest
func Capitalize(word string) string {
	_, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return title.String(word[:size]) + lower.String(word[size:])
}

func nextWord(src WordSource) (string, error) {
	words, err := src.Generate(1, true)
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", fmt.Errorf("word source returned nothing")
	}
	return words[0], nil
}

// Text builds unwrapped pseudo-text of the given number of sentences
func Text(src WordSource, sentences int, rng *rand.Rand) (string, error) {
	var sb strings.Builder
	for i := 0; i < sentences; i++ {
		length := minSentence + rng.Intn(maxSentence-minSentence+1)
		comma := -1
		if length >= commaLength {
			comma = rng.Intn(length - 1)
		}

		w, err := nextWord(src)
		if err != nil {
			return "", err
		}
		sb.WriteString(Capitalize(w))
		for j := 0; j < length; j++ {
			if w, err = nextWord(src); err != nil {
				return "", err
			}
			sb.WriteByte(' ')
			sb.WriteString(w)
			if j == comma {
				sb.WriteByte(',')
			}
		}

		if rng.Intn(questionOdds) < questionOdds-1 {
			sb.WriteString(". ")
		} else {
			sb.WriteString("? ")
		}
	}
	return sb.String(), nil
}

// Paragraph builds pseudo-text and wraps it to width columns
func Paragraph(src WordSource, sentences, width int, rng *rand.Rand) (string, error) {
	text, err := Text(src, sentences, rng)
	if err != nil {
		return "", err
	}
	return textwrap.Fill(text, width), nil
}
