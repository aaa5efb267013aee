// Package docindex implements the inverted index: term -> (doc -> term
// frequency), doc -> (term -> frequency) plus per-document metadata, and the
// ascending set of live document ids.
//
// Grounded on the original search server's word_to_document_freqs_ / documents_
// / document_ids_ trio, backed in Go by a string Arena (pkg/arena) instead of
// a std::set<std::string> of owned strings.
package docindex

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arcsearch/fts/internal/telemetry"
	"github.com/arcsearch/fts/pkg/arena"
	"github.com/arcsearch/fts/pkg/tokenizer"
)

// StopWords is the minimal interface the index needs to exclude stop-words
// from a document's body during ingestion.
type StopWords interface {
	Contains(word string) bool
}

var (
	// ErrInvalidID is returned by AddDocument when id is negative or
	// already present.
	ErrInvalidID = fmt.Errorf("invalid document id")
	// ErrInvalidWord is returned by AddDocument when the body contains a
	// token with a byte below 0x20.
	ErrInvalidWord = fmt.Errorf("invalid word in document body")
	// ErrEmptyDocument is returned by AddDocument when the body contains
	// no words after stop-word removal; admitting it would divide by
	// zero computing term frequency (spec §9 open question, resolved as
	// a checked error here rather than a silent precondition).
	ErrEmptyDocument = fmt.Errorf("document has no indexable words")
)

// DocumentData is the per-document metadata the index retains.
type DocumentData struct {
	Rating int
	Status Status
	Freqs  map[string]float64
}

// Index is the dictionary-backed inverted index (component D).
type Index struct {
	mu    sync.RWMutex
	arena *arena.Arena
	stop  StopWords

	w2d  map[string]map[int]float64 // term -> docID -> tf
	docs map[int]DocumentData
	ids  []int // ascending, live document ids

	docArenaHandle map[int]int
}

// New creates an empty Index over the given stop-word set (may be nil).
func New(stop StopWords) *Index {
	return &Index{
		arena:          arena.New(),
		stop:           stop,
		w2d:            make(map[string]map[int]float64),
		docs:           make(map[int]DocumentData),
		docArenaHandle: make(map[int]int),
	}
}

// AddDocument inserts a new document. Words are validated before any
// mutation of index state, per the spec's design-note resolution of the
// "AddDocument validation order" open question: a failed call leaves the
// index exactly as it was.
func (ix *Index) AddDocument(id int, body string, status Status, ratings []int) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if id < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidID, id)
	}
	if _, exists := ix.docs[id]; exists {
		return fmt.Errorf("%w: %d already present", ErrInvalidID, id)
	}

	words, err := ix.splitAndValidate(body)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("%w: document %d", ErrEmptyDocument, id)
	}

	handle, stored := ix.arena.Insert(body)
	// Re-derive words from the stored copy so every kept token is a slice
	// into arena-owned memory, not the caller's original string.
	words, _ = ix.splitAndValidate(stored)

	inv := 1.0 / float64(len(words))
	freqs := make(map[string]float64, len(words))
	for _, w := range words {
		if ix.w2d[w] == nil {
			ix.w2d[w] = make(map[int]float64)
		}
		ix.w2d[w][id] += inv
		freqs[w] += inv
	}

	ix.docs[id] = DocumentData{
		Rating: computeAverageRating(ratings),
		Status: status,
		Freqs:  freqs,
	}
	ix.docArenaHandle[id] = handle
	ix.insertID(id)

	telemetry.Debug("document indexed", map[string]any{"id": id, "terms": len(freqs)})
	return nil
}

// splitAndValidate tokenizes text, rejecting the whole body if any word
// contains an invalid character, and drops stop-words.
func (ix *Index) splitAndValidate(text string) ([]string, error) {
	tokens := tokenizer.Split(text)
	words := make([]string, 0, len(tokens))
	for _, w := range tokens {
		if !tokenizer.Validate(w) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWord, w)
		}
		if ix.stop != nil && ix.stop.Contains(w) {
			continue
		}
		words = append(words, w)
	}
	return words, nil
}

// RemoveDocument removes a document and its postings. Removing an unknown id
// is a no-op, matching the source's undefined-but-harmless behavior.
func (ix *Index) RemoveDocument(id int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(id)
}

func (ix *Index) removeLocked(id int) {
	doc, ok := ix.docs[id]
	if !ok {
		return
	}
	for term := range doc.Freqs {
		if postings, ok := ix.w2d[term]; ok {
			delete(postings, id)
		}
	}
	delete(ix.docs, id)
	if handle, ok := ix.docArenaHandle[id]; ok {
		ix.arena.Drop(handle)
		delete(ix.docArenaHandle, id)
	}
	ix.removeID(id)
	telemetry.Debug("document removed", map[string]any{"id": id})
}

// RemoveDocuments removes multiple ids under a single lock acquisition, used
// by the deduplicator to batch its removals.
func (ix *Index) RemoveDocuments(ids []int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, id := range ids {
		ix.removeLocked(id)
	}
}

// GetWordFrequencies returns a copy of the term->frequency map for id, or a
// canonical empty map when the document is absent.
func (ix *Index) GetWordFrequencies(id int) map[string]float64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	doc, ok := ix.docs[id]
	if !ok {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(doc.Freqs))
	for k, v := range doc.Freqs {
		out[k] = v
	}
	return out
}

// DocumentMeta returns the stored metadata for id.
func (ix *Index) DocumentMeta(id int) (DocumentData, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	doc, ok := ix.docs[id]
	return doc, ok
}

// DocumentCount returns the number of live documents.
func (ix *Index) DocumentCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Ids returns a copy of the live document ids in ascending order.
func (ix *Index) Ids() []int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]int, len(ix.ids))
	copy(out, ix.ids)
	return out
}

// Postings returns the doc-id -> tf map for term and whether the term is
// present at all in the index. The returned map must be treated as
// read-only by callers.
func (ix *Index) Postings(term string) (map[int]float64, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	postings, ok := ix.w2d[term]
	return postings, ok
}

func (ix *Index) insertID(id int) {
	i := sort.SearchInts(ix.ids, id)
	ix.ids = append(ix.ids, 0)
	copy(ix.ids[i+1:], ix.ids[i:])
	ix.ids[i] = id
}

func (ix *Index) removeID(id int) {
	i := sort.SearchInts(ix.ids, id)
	if i < len(ix.ids) && ix.ids[i] == id {
		ix.ids = append(ix.ids[:i], ix.ids[i+1:]...)
	}
}

func computeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
