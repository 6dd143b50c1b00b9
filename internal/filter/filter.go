package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

const (
	// RejectMarker as a replacement disqualifies any word the pattern matches
	RejectMarker = "REJECT"
	// DeleteMarker as a replacement removes the matched text
	DeleteMarker = "!"
)

var ErrBadPattern = errors.New("invalid filter pattern")

// Filter is a single pattern substitution
type Filter struct {
	Pattern     string
	Replacement string
	re          *regexp2.Regexp
	repl        string
}

// New compiles a filter. Patterns use .NET/Perl regular expression
// syntax; backreferences in the replacement may be written \1 or \g<name>.
func New(pattern, replacement string) (*Filter, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadPattern, pattern, err)
	}
	repl := replacement
	if repl == DeleteMarker {
		repl = ""
	}
	return &Filter{
		Pattern:     pattern,
		Replacement: replacement,
		re:          re,
		repl:        translateReplacement(repl),
	}, nil
}

// Rejects reports whether this filter's replacement is the reject marker
func (f *Filter) Rejects() bool {
	return strings.Contains(f.Replacement, RejectMarker)
}

// Apply replaces all non-overlapping matches in word
func (f *Filter) Apply(word string) (string, error) {
	out, err := f.re.Replace(word, f.repl, -1, -1)
	if err != nil {
		return "", fmt.Errorf("filter %q: %w", f.Pattern, err)
	}
	return out, nil
}

// translateReplacement rewrites \1 and \g<name> references into the
// $-form understood by regexp2.
func translateReplacement(repl string) string {
	var sb strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '$':
			sb.WriteString("$$")
		case c == '\\' && i+1 < len(repl):
			next := repl[i+1]
			switch {
			case next >= '0' && next <= '9':
				j := i + 1
				for j < len(repl) && j < i+3 && repl[j] >= '0' && repl[j] <= '9' {
					j++
				}
				sb.WriteString("${" + repl[i+1:j] + "}")
				i = j - 1
			case next == 'g' && i+2 < len(repl) && repl[i+2] == '<':
				end := strings.IndexByte(repl[i+3:], '>')
				if end < 0 {
					sb.WriteByte(c)
					continue
				}
				sb.WriteString("${" + repl[i+3:i+3+end] + "}")
				i = i + 3 + end
			case next == '\\':
				sb.WriteByte('\\')
				i++
			default:
				sb.WriteByte(c)
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
