// Package query turns a raw query string into classified plus/minus term
// buckets, applying stop-word removal and, by default, deduplication.
//
// Grounded on the original search server's ParseQueryWord / ParseQuery: a
// leading '-' marks a minus-term, a bare "-" or a "--..." token is a fatal
// parse error, and stop-words are dropped from either bucket before the
// caller ever sees them.
package query

import (
	"fmt"
	"sort"

	"github.com/arcsearch/fts/pkg/tokenizer"
)

// StopWords is the minimal interface the parser needs from a stop-word set.
type StopWords interface {
	Contains(word string) bool
}

// ErrInvalidQueryWord is returned (wrapped with the offending token) when a
// query token is empty, is a bare "-", begins with "--", or contains an
// invalid character.
var ErrInvalidQueryWord = fmt.Errorf("invalid query word")

// Query holds the classified, parsed term buckets.
type Query struct {
	Plus  []string
	Minus []string
}

// Parse parses raw into a deduplicated Query: each bucket is sorted and made
// unique. This is the default shape used by the Ranker and the sequential
// Matcher.
func Parse(raw string, stop StopWords) (Query, error) {
	q, err := parseRaw(raw, stop)
	if err != nil {
		return Query{}, err
	}
	q.Plus = makeUnique(q.Plus)
	q.Minus = makeUnique(q.Minus)
	return q, nil
}

// ParseRawOrdered parses raw into plus/minus buckets in token order, without
// deduplicating. Used only by the parallel Matcher, which deduplicates the
// matched subset after filtering rather than the whole query up front.
func ParseRawOrdered(raw string, stop StopWords) (Query, error) {
	return parseRaw(raw, stop)
}

func parseRaw(raw string, stop StopWords) (Query, error) {
	var q Query
	for _, token := range tokenizer.Split(raw) {
		word, isMinus, err := parseQueryWord(token)
		if err != nil {
			return Query{}, err
		}
		if stop != nil && stop.Contains(word) {
			continue
		}
		if isMinus {
			q.Minus = append(q.Minus, word)
		} else {
			q.Plus = append(q.Plus, word)
		}
	}
	return q, nil
}

func parseQueryWord(token string) (word string, isMinus bool, err error) {
	if token == "" {
		return "", false, fmt.Errorf("%w: empty token", ErrInvalidQueryWord)
	}
	word = token
	if word[0] == '-' {
		isMinus = true
		word = word[1:]
	}
	if word == "" || word[0] == '-' || !tokenizer.Validate(word) {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidQueryWord, token)
	}
	return word, isMinus, nil
}

// MakeUnique sorts items and removes adjacent duplicates, the Go equivalent
// of the original's sort + std::unique pass over query buckets. Exported so
// the parallel Matcher can apply the same dedup step to its matched-word
// results after filtering.
func MakeUnique(items []string) []string {
	return makeUnique(items)
}

// makeUnique sorts items and removes adjacent duplicates, the Go equivalent
// of the original's sort + std::unique pass over query buckets.
func makeUnique(items []string) []string {
	if len(items) == 0 {
		return items
	}
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
