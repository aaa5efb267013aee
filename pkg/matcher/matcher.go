// Package matcher implements MatchDocument: for a (query, doc) pair, it
// returns the matched plus-terms and the document's status, or an empty
// match list if any minus-term hits.
//
// Grounded on the original search server's two MatchDocument overloads: the
// sequential variant parses the deduplicated query and short-circuits on the
// first minus-term hit; the parallel variant parses the raw ordered query,
// early-outs via a concurrent any-match check, filters plus-terms
// concurrently, then deduplicates the surviving subset by sort+unique.
package matcher

import (
	"github.com/arcsearch/fts/pkg/docindex"
	"github.com/arcsearch/fts/pkg/exec"
	"github.com/arcsearch/fts/pkg/query"
)

// Match is the result of matching a query against a document.
type Match struct {
	Terms  []string
	Status docindex.Status
}

// MatchDocument matches rawQuery against document id in ix under policy.
func MatchDocument(policy exec.Policy, ix *docindex.Index, stop query.StopWords, rawQuery string, id int) (Match, error) {
	if policy == exec.Parallel {
		return matchParallel(ix, stop, rawQuery, id)
	}
	return matchSequential(ix, stop, rawQuery, id)
}

func matchSequential(ix *docindex.Index, stop query.StopWords, rawQuery string, id int) (Match, error) {
	q, err := query.Parse(rawQuery, stop)
	if err != nil {
		return Match{}, err
	}
	doc, _ := ix.DocumentMeta(id)

	for _, term := range q.Minus {
		postings, ok := ix.Postings(term)
		if !ok {
			continue
		}
		if _, hit := postings[id]; hit {
			return Match{Terms: nil, Status: doc.Status}, nil
		}
	}

	var matched []string
	for _, term := range q.Plus {
		postings, ok := ix.Postings(term)
		if !ok {
			continue
		}
		if _, hit := postings[id]; hit {
			matched = append(matched, term)
		}
	}
	return Match{Terms: matched, Status: doc.Status}, nil
}

func matchParallel(ix *docindex.Index, stop query.StopWords, rawQuery string, id int) (Match, error) {
	q, err := query.ParseRawOrdered(rawQuery, stop)
	if err != nil {
		return Match{}, err
	}
	doc, _ := ix.DocumentMeta(id)

	hit := make(chan bool, len(q.Minus))
	exec.ForEach(exec.Parallel, q.Minus, func(term string) {
		postings, ok := ix.Postings(term)
		if !ok {
			hit <- false
			return
		}
		_, present := postings[id]
		hit <- present
	})
	close(hit)
	for h := range hit {
		if h {
			return Match{Terms: nil, Status: doc.Status}, nil
		}
	}

	type slot struct {
		term    string
		matched bool
	}
	slots := exec.Map(exec.Parallel, q.Plus, func(term string) slot {
		postings, ok := ix.Postings(term)
		if !ok {
			return slot{term, false}
		}
		_, present := postings[id]
		return slot{term, present}
	})

	var matched []string
	for _, s := range slots {
		if s.matched {
			matched = append(matched, s.term)
		}
	}
	matched = query.MakeUnique(matched)
	return Match{Terms: matched, Status: doc.Status}, nil
}
