// Package dedup removes documents whose set of distinct plus-terms equals
// that of an earlier document.
//
// Grounded on the original search server's RemoveDuplicates: it iterates live
// ids in ascending order, builds a key from each document's distinct term
// set, and removes every document after the first whose key was already
// seen. The original builds that key as a space-joined string via
// std::stringstream; here it is a blake2b digest of the sorted term set
// instead, the content-addressed approach the teacher repo itself uses
// (golang.org/x/crypto, via bcrypt in pkg/auth) for comparing content without
// retaining the full text.
package dedup

import (
	"sort"

	"github.com/arcsearch/fts/internal/telemetry"
	"golang.org/x/crypto/blake2b"
)

// Index is the minimal surface RemoveDuplicates needs from the inverted
// index.
type Index interface {
	Ids() []int
	GetWordFrequencies(id int) map[string]float64
	RemoveDocuments(ids []int)
}

// RemoveDuplicates scans ix's live ids in ascending order and removes every
// document whose distinct plus-term set duplicates an earlier one. Returns
// the ids that were removed, in ascending order.
func RemoveDuplicates(ix Index) []int {
	seen := make(map[[blake2b.Size256]byte]int)
	var toRemove []int

	for _, id := range ix.Ids() {
		key := termSetDigest(ix.GetWordFrequencies(id))
		if firstID, ok := seen[key]; ok {
			telemetry.Info("duplicate document found", map[string]any{"id": id, "duplicate_of": firstID})
			toRemove = append(toRemove, id)
			continue
		}
		seen[key] = id
	}

	if len(toRemove) > 0 {
		ix.RemoveDocuments(toRemove)
	}
	return toRemove
}

// termSetDigest hashes the sorted, distinct term set of freqs (frequency
// values are ignored, only membership matters).
func termSetDigest(freqs map[string]float64) [blake2b.Size256]byte {
	terms := make([]string, 0, len(freqs))
	for t := range freqs {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	h, _ := blake2b.New256(nil)
	for _, t := range terms {
		h.Write([]byte(t))
		h.Write([]byte{0})
	}
	var digest [blake2b.Size256]byte
	copy(digest[:], h.Sum(nil))
	return digest
}
