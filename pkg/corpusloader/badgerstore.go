// Package corpusloader is an on-disk staging store for bulk document
// ingestion. It exists only for the CLI's "--from-badger" loading path: the
// search engine itself is purely in-memory (spec non-goal: persistence), so
// this package never touches pkg/engine's state directly — it just gives the
// CLI driver a place to stage a corpus before feeding it to AddDocument one
// document at a time.
//
// Grounded on pkg/storage/badger.go's Options/Open pattern, trimmed down from
// a full transactional graph-storage engine to the handful of operations a
// bulk loader needs.
package corpusloader

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var keyPrefix = []byte("doc:")

// Document is the staged, on-disk representation of one document awaiting
// ingestion.
type Document struct {
	ID      int    `json:"id"`
	Body    string `json:"body"`
	Status  int    `json:"status"`
	Ratings []int  `json:"ratings"`
}

// Options configures the staging store.
type Options struct {
	// DataDir is the directory for storing data files. Ignored when
	// InMemory is true.
	DataDir string

	// InMemory runs BadgerDB in memory-only mode, useful for tests and
	// for corpora that are assembled and consumed within one process.
	InMemory bool
}

// Store is a thin BadgerDB wrapper that stages Documents for bulk ingestion.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a staging store per opts.
func Open(opts Options) (*Store, error) {
	dir := opts.DataDir
	if opts.InMemory {
		dir = ""
	}
	badgerOpts := badger.DefaultOptions(dir).WithLogger(nil)
	if opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("opening corpus store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying BadgerDB handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stages doc for later ingestion, keyed by its id.
func (s *Store) Put(doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding staged document %d: %w", doc.ID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(doc.ID), data)
	})
}

// Each decodes and visits every staged document in key order, stopping at
// the first error fn returns.
func (s *Store) Each(fn func(Document) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			var doc Document
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if err != nil {
				return fmt.Errorf("decoding staged document: %w", err)
			}
			if err := fn(doc); err != nil {
				return err
			}
		}
		return nil
	})
}

func docKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", keyPrefix, id))
}
