package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Result is the outcome of running a word through a Chain: either an
// accepted word or a rejection.
type Result struct {
	word     string
	rejected bool
}

// Accepted wraps a word that passed every filter
func Accepted(word string) Result {
	return Result{word: word}
}

// Rejected is the outcome for a disqualified word
var Rejected = Result{rejected: true}

// IsRejected reports whether the word was disqualified
func (r Result) IsRejected() bool {
	return r.rejected
}

// Word returns the filtered word; it is empty for a rejection
func (r Result) Word() string {
	return r.word
}

// Chain is an ordered list of filters
type Chain struct {
	filters []*Filter
}

// Add appends a substitution filter
func (c *Chain) Add(pattern, replacement string) error {
	f, err := New(pattern, replacement)
	if err != nil {
		return err
	}
	c.filters = append(c.filters, f)
	return nil
}

// AddReject appends a filter that disqualifies any word matching pattern
func (c *Chain) AddReject(pattern string) error {
	return c.Add(pattern, RejectMarker)
}

// Len returns the number of filters
func (c *Chain) Len() int {
	return len(c.filters)
}

// Filters returns the filters in application order
func (c *Chain) Filters() []*Filter {
	out := make([]*Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Apply runs word through every filter in order. Processing stops as soon
// as the word contains the reject marker.
func (c *Chain) Apply(word string) (Result, error) {
	for _, f := range c.filters {
		var err error
		word, err = f.Apply(word)
		if err != nil {
			return Rejected, err
		}
		if strings.Contains(word, RejectMarker) {
			return Rejected, nil
		}
	}
	return Accepted(word), nil
}

const (
	cellAllow  = "+"
	cellReject = "-"
)

var (
	ErrRowTooLong  = errors.New("cluster field row too long")
	ErrRowTooShort = errors.New("cluster field row too short")
	ErrNoColumns   = errors.New("cluster field has no columns")
)

// Rule is a pattern and replacement pair expanded from a cluster field
type Rule struct {
	Pattern     string
	Replacement string
}

// ClusterField is a grid of first-sound rows against second-sound
// columns. Each cell allows the cluster (+), rejects it (-), or gives a
// replacement for it.
type ClusterField struct {
	columns []string
}

// NewClusterField creates a cluster field with the given column headers
func NewClusterField(columns []string) (*ClusterField, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	return &ClusterField{columns: columns}, nil
}

// Columns returns the column headers
func (cf *ClusterField) Columns() []string {
	return cf.columns
}

// Row expands one row of the grid into filter rules
func (cf *ClusterField) Row(label string, cells []string) ([]Rule, error) {
	switch {
	case len(cells) > len(cf.columns):
		return nil, fmt.Errorf("%w: %s %s", ErrRowTooLong, label, strings.Join(cells, " "))
	case len(cells) < len(cf.columns):
		return nil, fmt.Errorf("%w: %s %s", ErrRowTooShort, label, strings.Join(cells, " "))
	}

	var rules []Rule
	for i, cell := range cells {
		switch cell {
		case cellAllow:
			continue
		case cellReject:
			rules = append(rules, Rule{Pattern: label + cf.columns[i], Replacement: RejectMarker})
		default:
			rules = append(rules, Rule{Pattern: label + cf.columns[i], Replacement: cell})
		}
	}
	return rules, nil
}
