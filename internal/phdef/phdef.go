// Package phdef reads phonology definition files and configures a sound
// system from them.
//
// A definition is line oriented. Comments start with #. Recognised lines:
//
//	with: std-ipa-features std-assimilations   options
//	random-rate: 15                            percent for ? symbols
//	letters: a ch e i k ...                    alphabet order
//	$S = CV                                    macro, used in words:
//	C = p t k ch                               phoneme class
//	V = a:5 i:3 u:1                            weighted phoneme class
//	words: $S$S V$S CVC                        word shapes, most common first
//	filter: kk > k; s(t|k) > \1s; h > !        substitutions (! deletes)
//	reject: aa ii                              patterns that disqualify a word
//	% p t k                                    cluster field header, then rows
//	n mp + -                                   until a blank line
package phdef

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/thoas/go-funk"

	"github.com/wmannis/lexifer/internal/features"
	"github.com/wmannis/lexifer/internal/filter"
	"github.com/wmannis/lexifer/internal/selector"
)

var (
	ErrMacroRedefined = errors.New("macro already defined")
	ErrBadFilter      = errors.New("filter must have the form 'pattern > replacement'")
	ErrBadRandomRate  = errors.New("random-rate must be an integer")
	ErrUnrecognized   = errors.New("unrecognized line")
)

// ParseError locates a problem in a definition
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownOptionError is returned for an unsupported with: option
type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option: %s", e.Option)
}

// Target is the sound system being configured
type Target interface {
	AddPhonemeClass(name, spec string) error
	AddRule(rule string, weight float64) error
	AddFilter(pattern, replacement string) error
	AddReject(pattern string) error
	SetCollationOrder(order string) error
	SetRandomRate(percent int) error
	EnableFeatureTable(notation features.Notation) error
	EnableVoiceAssimilation()
	EnableCoronalMetathesis()
}

// Definition records what was read, for sanity checking
type Definition struct {
	Letters  []string
	Phonemes []string
	Macros   []Macro
	Warnings []string

	assimilation bool
}

// Macro is a $name substitution used inside words: lines
type Macro struct {
	Name  string
	Value string
}

// Option configures Parse
type Option func(*parser)

// WithLogger logs warnings as they are found
func WithLogger(log logr.Logger) Option {
	return func(p *parser) {
		p.log = log
	}
}

type parser struct {
	target  Target
	def     *Definition
	scanner *bufio.Scanner
	lineNo  int
	log     logr.Logger
}

var comment = regexp.MustCompile(`#.*`)

// Parse reads a definition from r and applies it to target. Any error
// aborts the whole definition.
func Parse(r io.Reader, target Target, opts ...Option) (*Definition, error) {
	p := &parser{
		target:  target,
		def:     &Definition{},
		scanner: bufio.NewScanner(r),
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for {
		raw, ok := p.next()
		if !ok {
			break
		}
		if err := p.parseLine(raw); err != nil {
			return nil, err
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	p.sanityCheck()
	return p.def, nil
}

func (p *parser) next() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	p.lineNo++
	return strings.TrimRight(p.scanner.Text(), "\r"), true
}

func (p *parser) fail(text string, err error) error {
	return &ParseError{Line: p.lineNo, Text: text, Err: err}
}

func clean(raw string) string {
	return strings.TrimSpace(comment.ReplaceAllString(raw, ""))
}

func (p *parser) parseLine(raw string) error {
	line := clean(raw)
	if line == "" {
		return nil
	}

	var err error
	switch {
	case strings.HasPrefix(line, "with:"):
		err = p.parseOptions(line[len("with:"):])
	case strings.HasPrefix(line, "random-rate:"):
		err = p.parseRandomRate(line[len("random-rate:"):])
	case strings.HasPrefix(line, "filter:"):
		err = p.parseFilter(line[len("filter:"):])
	case strings.HasPrefix(line, "reject:"):
		err = p.parseReject(line[len("reject:"):])
	case strings.HasPrefix(line, "words:"):
		err = p.parseWords(line[len("words:"):])
	case strings.HasPrefix(line, "letters:"):
		err = p.parseLetters(line[len("letters:"):])
	case line[0] == '%':
		return p.parseClusterField(line)
	case strings.Contains(line, "="):
		err = p.parseClass(line)
	default:
		err = ErrUnrecognized
	}
	if err != nil {
		return p.fail(line, err)
	}
	return nil
}

func (p *parser) parseOptions(line string) error {
	for _, option := range strings.Fields(line) {
		var err error
		switch option {
		case "std-ipa-features":
			err = p.target.EnableFeatureTable(features.IPA)
		case "std-digraph-features":
			err = p.target.EnableFeatureTable(features.Digraph)
		case "std-assimilations":
			p.target.EnableVoiceAssimilation()
			p.def.assimilation = true
		case "coronal-metathesis":
			p.target.EnableCoronalMetathesis()
			p.def.assimilation = true
		default:
			err = &UnknownOptionError{Option: option}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseRandomRate(line string) error {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return ErrBadRandomRate
	}
	return p.target.SetRandomRate(n)
}

func (p *parser) parseFilter(line string) error {
	for _, filt := range strings.Split(line, ";") {
		filt = strings.TrimSpace(filt)
		if filt == "" {
			continue
		}
		pre, post, ok := strings.Cut(filt, ">")
		if !ok {
			return ErrBadFilter
		}
		if err := p.target.AddFilter(strings.TrimSpace(pre), strings.TrimSpace(post)); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseReject(line string) error {
	for _, pattern := range strings.Fields(line) {
		if err := p.target.AddReject(pattern); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseWords(line string) error {
	for n, rule := range strings.Fields(p.expandMacros(line)) {
		if err := p.target.AddRule(rule, selector.RuleWeight(n)); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) expandMacros(line string) string {
	for _, m := range p.def.Macros {
		line = strings.ReplaceAll(line, m.Name, m.Value)
	}
	return line
}

func (p *parser) parseLetters(line string) error {
	p.def.Letters = strings.Fields(line)
	return p.target.SetCollationOrder(line)
}

func (p *parser) parseClass(line string) error {
	name, values, _ := strings.Cut(line, "=")
	name = strings.TrimSpace(name)
	values = strings.TrimSpace(values)
	if name == "" || strings.Contains(values, "=") {
		return ErrUnrecognized
	}

	if strings.HasPrefix(name, "$") {
		for _, m := range p.def.Macros {
			if m.Name == name {
				return fmt.Errorf("%w: %s", ErrMacroRedefined, name)
			}
		}
		p.def.Macros = append(p.def.Macros, Macro{Name: name, Value: values})
		return nil
	}

	for _, ph := range strings.Fields(values) {
		ph, _, _ = strings.Cut(ph, ":")
		p.def.Phonemes = append(p.def.Phonemes, ph)
	}
	return p.target.AddPhonemeClass(name, values)
}

// parseClusterField reads a header line and the rows below it, up to the
// first empty line
func (p *parser) parseClusterField(header string) error {
	cf, err := filter.NewClusterField(strings.Fields(header)[1:])
	if err != nil {
		return p.fail(header, err)
	}

	for {
		raw, ok := p.next()
		if !ok || raw == "" {
			return nil
		}
		line := clean(raw)
		if line == "" {
			continue
		}
		row := strings.Fields(line)
		rules, err := cf.Row(row[0], row[1:])
		if err != nil {
			return p.fail(line, err)
		}
		for _, r := range rules {
			if r.Replacement == filter.RejectMarker {
				err = p.target.AddReject(r.Pattern)
			} else {
				err = p.target.AddFilter(r.Pattern, r.Replacement)
			}
			if err != nil {
				return p.fail(line, err)
			}
		}
	}
}

func (p *parser) warn(msg string) {
	p.def.Warnings = append(p.def.Warnings, msg)
	p.log.V(1).Info("definition warning", "warning", msg)
}

// sanityCheck records non-fatal problems with the definition
func (p *parser) sanityCheck() {
	if p.def.assimilation && len(p.def.Letters) == 0 {
		p.warn("Without 'letters:' cannot apply assimilations or coronal metathesis.")
	}
	if len(p.def.Letters) == 0 {
		return
	}

	var missing []string
	for _, ph := range funk.UniqString(p.def.Phonemes) {
		if !funk.ContainsString(p.def.Letters, ph) {
			missing = append(missing, ph)
		}
	}
	if len(missing) > 0 {
		p.warn(fmt.Sprintf("A phoneme class contains '%s' missing from 'letters'. Strange word shapes are likely to result.",
			strings.Join(missing, " ")))
	}
}
