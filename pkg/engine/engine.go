// Package engine is the public library surface for the in-memory TF-IDF
// search server: it wires the string arena, tokenizer, query parser,
// inverted index, ranker, matcher, and request window components into one
// facade, the same way pkg/nornicdb/db.go composes its own subsystems.
//
// Construction validates stop-words eagerly (ErrInvalidStopWords); every
// other error kind is returned from the operation that triggers it, never
// panicked.
package engine

import (
	"github.com/arcsearch/fts/internal/telemetry"
	"github.com/arcsearch/fts/pkg/dedup"
	"github.com/arcsearch/fts/pkg/docindex"
	"github.com/arcsearch/fts/pkg/exec"
	"github.com/arcsearch/fts/pkg/matcher"
	"github.com/arcsearch/fts/pkg/query"
	"github.com/arcsearch/fts/pkg/ranker"
	"github.com/arcsearch/fts/pkg/reqwindow"
	"github.com/arcsearch/fts/pkg/shardmap"
)

// Re-exported so callers don't need to import pkg/docindex, pkg/ranker, or
// pkg/matcher directly for the common path.
type (
	Status    = docindex.Status
	Result    = ranker.Result
	Match     = matcher.Match
	Predicate = ranker.Predicate
	Policy    = exec.Policy
)

const (
	StatusActual     = docindex.StatusActual
	StatusIrrelevant = docindex.StatusIrrelevant
	StatusBanned     = docindex.StatusBanned
	StatusRemoved    = docindex.StatusRemoved

	Sequential = exec.Sequential
	Parallel   = exec.Parallel
)

// Options sizes the tunables an engine construction may need beyond its
// stop-word set. A zero Options is valid: ShardCount falls back to
// shardmap.DefaultShardCount and RequestWindowSize falls back to
// reqwindow.DefaultSize, both via their own constructors.
type Options struct {
	// ShardCount sizes the sharded accumulator (component G) the ranker
	// uses under the Parallel policy.
	ShardCount int

	// RequestWindowSize sizes the rolling window of empty-result outcomes
	// tracked across FindTopDocuments* calls.
	RequestWindowSize int
}

// Server is the engine facade: construct with New, then call AddDocument,
// FindTopDocuments, MatchDocument, RemoveDocument, GetDocumentCount,
// GetWordFrequencies, and Ids.
type Server struct {
	ix         *docindex.Index
	stop       *query.StopWordSet
	shardCount int
	window     *reqwindow.Window
}

// New constructs a Server whose stop-word set is parsed from a
// space-separated string, with default-sized shard map and request window.
// Returns query.ErrInvalidStopWords if any stop-word contains a control
// character.
func New(stopWordsText string) (*Server, error) {
	return NewWithOptions(stopWordsText, Options{})
}

// NewFromWords constructs a Server from an already-split stop-word list,
// with default-sized shard map and request window.
func NewFromWords(stopWords []string) (*Server, error) {
	return NewFromWordsWithOptions(stopWords, Options{})
}

// NewWithOptions is New with explicit tunables.
func NewWithOptions(stopWordsText string, opts Options) (*Server, error) {
	stop, err := query.NewStopWordSetFromString(stopWordsText)
	if err != nil {
		return nil, err
	}
	return newServer(stop, opts), nil
}

// NewFromWordsWithOptions is NewFromWords with explicit tunables.
func NewFromWordsWithOptions(stopWords []string, opts Options) (*Server, error) {
	stop, err := query.NewStopWordSet(stopWords)
	if err != nil {
		return nil, err
	}
	return newServer(stop, opts), nil
}

func newServer(stop *query.StopWordSet, opts Options) *Server {
	shardCount := opts.ShardCount
	if shardCount <= 0 {
		shardCount = shardmap.DefaultShardCount
	}
	return &Server{
		ix:         docindex.New(stop),
		stop:       stop,
		shardCount: shardCount,
		window:     reqwindow.New(opts.RequestWindowSize),
	}
}

// AddDocument indexes a new document. See docindex.ErrInvalidID,
// ErrInvalidWord, and ErrEmptyDocument for the possible failure modes.
func (s *Server) AddDocument(id int, body string, status Status, ratings []int) error {
	return s.ix.AddDocument(id, body, status, ratings)
}

// FindTopDocuments ranks rawQuery against ACTUAL documents sequentially.
func (s *Server) FindTopDocuments(rawQuery string) ([]Result, error) {
	return s.FindTopDocumentsPolicy(Sequential, rawQuery, ranker.DefaultPredicate())
}

// FindTopDocumentsStatus ranks rawQuery against documents with the given
// status sequentially.
func (s *Server) FindTopDocumentsStatus(rawQuery string, status Status) ([]Result, error) {
	return s.FindTopDocumentsPolicy(Sequential, rawQuery, ranker.ByStatus(status))
}

// FindTopDocumentsPredicate ranks rawQuery against documents matching an
// arbitrary predicate sequentially.
func (s *Server) FindTopDocumentsPredicate(rawQuery string, predicate Predicate) ([]Result, error) {
	return s.FindTopDocumentsPolicy(Sequential, rawQuery, predicate)
}

// FindTopDocumentsPolicy is the fully general entry point: explicit
// execution policy and predicate. Every call passes through the request
// window, which tracks whether the call returned zero results.
func (s *Server) FindTopDocumentsPolicy(policy Policy, rawQuery string, predicate Predicate) ([]Result, error) {
	return reqwindow.Do(s.window, func() ([]Result, error) {
		return ranker.FindTopDocuments(policy, s.shardCount, s.ix, s.stop, rawQuery, predicate)
	})
}

// EmptyRequestCount returns the number of FindTopDocuments* calls, among the
// most recent window of calls, that returned zero results.
func (s *Server) EmptyRequestCount() int {
	return s.window.EmptyRequestCount()
}

// MatchDocument matches rawQuery against document id sequentially.
func (s *Server) MatchDocument(rawQuery string, id int) (Match, error) {
	return s.MatchDocumentPolicy(Sequential, rawQuery, id)
}

// MatchDocumentPolicy matches rawQuery against document id under policy.
func (s *Server) MatchDocumentPolicy(policy Policy, rawQuery string, id int) (Match, error) {
	return matcher.MatchDocument(policy, s.ix, s.stop, rawQuery, id)
}

// RemoveDocument removes document id sequentially. Removing an unknown id is
// a no-op.
func (s *Server) RemoveDocument(id int) {
	s.RemoveDocumentPolicy(Sequential, id)
}

// RemoveDocumentPolicy removes document id. The original's parallel
// std::for_each over word pointers has no Go counterpart here: the index's
// removal is a single critical section regardless of policy, since Go gives
// no safe way to mutate the same map from multiple goroutines even on
// disjoint keys without the index's own locking. policy is accepted for
// interface symmetry with the other *Policy methods but does not change
// behavior.
func (s *Server) RemoveDocumentPolicy(policy Policy, id int) {
	s.ix.RemoveDocument(id)
}

// GetDocumentCount returns the number of live documents.
func (s *Server) GetDocumentCount() int {
	return s.ix.DocumentCount()
}

// GetWordFrequencies returns a copy of document id's term->frequency map, or
// an empty map if id is absent.
func (s *Server) GetWordFrequencies(id int) map[string]float64 {
	return s.ix.GetWordFrequencies(id)
}

// Ids returns the live document ids in ascending order.
func (s *Server) Ids() []int {
	return s.ix.Ids()
}

// RemoveDuplicates removes every document whose distinct plus-term set
// duplicates an earlier (lower-id) document, returning the removed ids.
func (s *Server) RemoveDuplicates() []int {
	removed := dedup.RemoveDuplicates(s.ix)
	if len(removed) > 0 {
		telemetry.Info("removed duplicate documents", map[string]any{"count": len(removed)})
	}
	return removed
}

// ProcessQueries evaluates each query in queries against s independently and
// in parallel, returning one result list per query in input order. If any
// query fails to parse, the first such error in input order is returned and
// no results are.
//
// Grounded on the original's ProcessQueries (process_queries.cpp): a
// std::transform under std::execution::par over the query list.
func ProcessQueries(s *Server, queries []string) ([][]Result, error) {
	type outcome struct {
		results []Result
		err     error
	}
	outcomes := exec.Map(Parallel, queries, func(q string) outcome {
		r, err := s.FindTopDocuments(q)
		return outcome{results: r, err: err}
	})
	results := make([][]Result, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		results[i] = o.results
	}
	return results, nil
}

// ProcessQueriesJoined is ProcessQueries with all per-query result lists
// concatenated in input order.
func ProcessQueriesJoined(s *Server, queries []string) ([]Result, error) {
	perQuery, err := ProcessQueries(s, queries)
	if err != nil {
		return nil, err
	}
	var joined []Result
	for _, r := range perQuery {
		joined = append(joined, r...)
	}
	return joined, nil
}
