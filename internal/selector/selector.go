package selector

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

var (
	ErrEmpty           = errors.New("selector has no items")
	ErrNoWeight        = errors.New("selector weights sum to zero")
	ErrNegativeWeight  = errors.New("negative weight")
	ErrMalformedWeight = errors.New("not a valid phoneme and weight")
)

// Weighted is a single labeled item with its selection weight
type Weighted struct {
	Item   string
	Weight float64
}

// Selector draws items with probability proportional to their weight.
// Items are walked in the order they were given at construction.
type Selector struct {
	items   []string
	weights []float64
	sum     float64 // total weight minus one
	rng     *rand.Rand
}

// New creates a Selector over the given items
func New(weighted []Weighted, rng *rand.Rand) (*Selector, error) {
	if len(weighted) == 0 {
		return nil, ErrEmpty
	}

	s := &Selector{
		items:   make([]string, 0, len(weighted)),
		weights: make([]float64, 0, len(weighted)),
		rng:     rng,
	}

	total := 0.0
	for _, w := range weighted {
		if w.Weight < 0 || math.IsNaN(w.Weight) {
			return nil, fmt.Errorf("%w: %s:%v", ErrNegativeWeight, w.Item, w.Weight)
		}
		s.items = append(s.items, w.Item)
		s.weights = append(s.weights, w.Weight)
		total += w.Weight
	}
	if total == 0 {
		return nil, ErrNoWeight
	}

	// Draws fall in [0, total-1), which slightly favours items early in
	// the order. Existing definitions are tuned against this.
	s.sum = total - 1
	return s, nil
}

// Select returns one item
func (s *Selector) Select() string {
	pick := 0.0
	if s.sum > 0 {
		pick = s.rng.Float64() * s.sum
	}

	acc := 0.0
	for i, w := range s.weights {
		acc += w
		if pick < acc {
			return s.items[i]
		}
	}
	return s.items[len(s.items)-1]
}

// Items returns the labels in construction order
func (s *Selector) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items
func (s *Selector) Len() int {
	return len(s.items)
}

// Jitter moves v randomly by up to half of percent in either direction
func Jitter(rng *rand.Rand, v, percent float64) float64 {
	move := v * (percent / 100.0)
	return v + rng.Float64()*move - move/2
}

// NaturalWeights gives approximately natural frequencies to phonemes in
// declaration order (Gusein-Zade law), each jittered by 10%.
func NaturalWeights(phonemes []string, rng *rand.Rand) []Weighted {
	n := len(phonemes)
	out := make([]Weighted, 0, n)
	for i, p := range phonemes {
		v := (math.Log(float64(n+1)) - math.Log(float64(i+1))) / float64(n) * 100
		out = append(out, Weighted{Item: p, Weight: Jitter(rng, v, 10)})
	}
	return out
}

// ParseWeighted parses a whitespace-separated list of item:weight pairs
func ParseWeighted(spec string) ([]Weighted, error) {
	var out []Weighted
	for _, field := range strings.Fields(spec) {
		item, weight, ok := strings.Cut(field, ":")
		if !ok || item == "" || strings.Contains(weight, ":") {
			return nil, fmt.Errorf("%w: %s", ErrMalformedWeight, field)
		}
		w, err := strconv.ParseFloat(weight, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedWeight, field)
		}
		out = append(out, Weighted{Item: item, Weight: w})
	}
	return out, nil
}

// IsWeighted reports whether a class specification carries explicit weights
func IsWeighted(spec string) bool {
	return strings.Contains(spec, ":")
}

// RuleWeight is the crude Zipf weight for the n-th (0-based) word shape
func RuleWeight(n int) float64 {
	return 10.0 / math.Pow(float64(n+1), 0.9)
}
