package domain

import "time"

// Lexicon is a named, saved vocabulary generated from one definition
type Lexicon struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Source    string    `json:"source" yaml:"source"`
	WordCount int       `json:"word_count" yaml:"word_count"`
	Words     []Word    `json:"words,omitempty" yaml:"words,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Word is one generated word stored in a lexicon
type Word struct {
	ID        string    `json:"id" yaml:"id"`
	LexiconID string    `json:"lexicon_id" yaml:"lexicon_id"`
	Lexicon   string    `json:"lexicon,omitempty" yaml:"lexicon,omitempty"`
	Text      string    `json:"text" yaml:"text"`
	Position  int       `json:"position" yaml:"position"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// WordList is a generation result as written by the CLI and the API
type WordList struct {
	Source string   `json:"source,omitempty" yaml:"source,omitempty"`
	Seed   int64    `json:"seed" yaml:"seed"`
	Sorted bool     `json:"sorted" yaml:"sorted"`
	Words  []string `json:"words" yaml:"words"`
}
