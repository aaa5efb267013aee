// Package ranker computes TF-IDF relevance scores for a parsed query against
// the inverted index, applies predicate/status filtering, sorts, and
// truncates to the top-K results.
//
// Grounded on the original search server's FindAllDocuments / FindTopDocuments
// template pair: the sequential variant accumulates directly into a
// map[int]float64, the parallel variant accumulates into the sharded
// concurrent map (pkg/shardmap) while plus-terms are processed concurrently.
package ranker

import (
	"math"
	"sort"

	"github.com/arcsearch/fts/pkg/docindex"
	"github.com/arcsearch/fts/pkg/exec"
	"github.com/arcsearch/fts/pkg/query"
	"github.com/arcsearch/fts/pkg/shardmap"
)

// MaxResultDocumentCount caps FindTopDocuments output, per the spec boundary
// constant MAX_RESULT_DOCUMENT_COUNT.
const MaxResultDocumentCount = 5

// RelevanceEpsilon is the tie-break tolerance on relevance, per the spec
// boundary constant RELEVANCE_EPSILON.
const RelevanceEpsilon = 1e-6

// Predicate filters candidate documents by id, status, and rating.
type Predicate func(id int, status docindex.Status, rating int) bool

// ByStatus builds a Predicate that accepts only documents with the given
// status, the Go equivalent of the original's status-only FindTopDocuments
// overload.
func ByStatus(status docindex.Status) Predicate {
	return func(_ int, docStatus docindex.Status, _ int) bool {
		return docStatus == status
	}
}

// DefaultPredicate accepts only ACTUAL documents, matching the default
// overload with no explicit predicate or status.
func DefaultPredicate() Predicate {
	return ByStatus(docindex.StatusActual)
}

// Result is a single ranked document: id, relevance, and rating.
type Result struct {
	ID        int
	Relevance float64
	Rating    int
}

// FindTopDocuments parses rawQuery against stop, ranks the matches in ix
// under policy, and returns at most MaxResultDocumentCount results sorted by
// relevance descending, ties broken by rating descending. shardCount sizes
// the accumulator used by the Parallel policy; a non-positive value falls
// back to shardmap.DefaultShardCount (see shardmap.New).
func FindTopDocuments(policy exec.Policy, shardCount int, ix *docindex.Index, stop query.StopWords, rawQuery string, predicate Predicate) ([]Result, error) {
	q, err := query.Parse(rawQuery, stop)
	if err != nil {
		return nil, err
	}

	var scores map[int]float64
	if policy == exec.Parallel {
		scores = findAllParallel(ix, q, predicate, shardCount)
	} else {
		scores = findAllSequential(ix, q, predicate)
	}

	results := make([]Result, 0, len(scores))
	for id, relevance := range scores {
		doc, ok := ix.DocumentMeta(id)
		if !ok {
			continue
		}
		results = append(results, Result{ID: id, Relevance: relevance, Rating: doc.Rating})
	}

	sort.Slice(results, func(i, j int) bool {
		if math.Abs(results[i].Relevance-results[j].Relevance) < RelevanceEpsilon {
			return results[i].Rating > results[j].Rating
		}
		return results[i].Relevance > results[j].Relevance
	})

	if len(results) > MaxResultDocumentCount {
		results = results[:MaxResultDocumentCount]
	}
	return results, nil
}

func findAllSequential(ix *docindex.Index, q query.Query, predicate Predicate) map[int]float64 {
	acc := make(map[int]float64)
	n := ix.DocumentCount()
	for _, term := range q.Plus {
		postings, ok := ix.Postings(term)
		if !ok || len(postings) == 0 {
			continue
		}
		idf := inverseDocumentFrequency(n, len(postings))
		for id, tf := range postings {
			doc, ok := ix.DocumentMeta(id)
			if !ok || !predicate(id, doc.Status, doc.Rating) {
				continue
			}
			acc[id] += tf * idf
		}
	}
	for _, term := range q.Minus {
		postings, ok := ix.Postings(term)
		if !ok {
			continue
		}
		for id := range postings {
			delete(acc, id)
		}
	}
	return acc
}

func findAllParallel(ix *docindex.Index, q query.Query, predicate Predicate, shardCount int) map[int]float64 {
	acc := shardmap.New(shardCount)
	n := ix.DocumentCount()
	exec.ForEach(exec.Parallel, q.Plus, func(term string) {
		postings, ok := ix.Postings(term)
		if !ok || len(postings) == 0 {
			return
		}
		idf := inverseDocumentFrequency(n, len(postings))
		for id, tf := range postings {
			doc, ok := ix.DocumentMeta(id)
			if !ok || !predicate(id, doc.Status, doc.Rating) {
				continue
			}
			acc.Add(id, tf*idf)
		}
	})
	for _, term := range q.Minus {
		postings, ok := ix.Postings(term)
		if !ok {
			continue
		}
		for id := range postings {
			acc.Erase(id)
		}
	}
	return acc.Collect()
}

func inverseDocumentFrequency(totalDocs, docsWithTerm int) float64 {
	return math.Log(float64(totalDocs) / float64(docsWithTerm))
}
