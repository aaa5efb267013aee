package query

import (
	"fmt"

	"github.com/arcsearch/fts/pkg/tokenizer"
)

// ErrInvalidStopWords is returned when a stop-word contains a control
// character.
var ErrInvalidStopWords = fmt.Errorf("invalid stop words")

// StopWordSet is an immutable set of stop-word terms, validated once at
// construction and never mutated afterward.
type StopWordSet struct {
	words map[string]struct{}
}

// NewStopWordSet validates and builds a StopWordSet from an already-tokenized
// list of candidate stop words (empty strings are dropped).
func NewStopWordSet(words []string) (*StopWordSet, error) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if !tokenizer.Validate(w) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStopWords, w)
		}
		set[w] = struct{}{}
	}
	return &StopWordSet{words: set}, nil
}

// NewStopWordSetFromString splits a space-separated string into a
// StopWordSet, the common construction path for SearchServer's constructor
// argument.
func NewStopWordSetFromString(text string) (*StopWordSet, error) {
	return NewStopWordSet(tokenizer.Split(text))
}

// Contains reports whether word is a stop-word.
func (s *StopWordSet) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}
