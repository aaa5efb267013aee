package engine

import (
	"sort"
	"testing"

	"github.com/arcsearch/fts/pkg/ranker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScenario1(t *testing.T) *Server {
	t.Helper()
	s, err := New("and with")
	require.NoError(t, err)
	bodies := []string{
		"funny pet and nasty rat",
		"funny pet with curly hair",
		"funny pet and not very nasty rat",
		"pet with rat and rat and rat",
		"nasty rat with curly hair",
	}
	for i, b := range bodies {
		require.NoError(t, s.AddDocument(i+1, b, StatusActual, []int{1, 2}))
	}
	return s
}

func TestScenario1_MatchDocument(t *testing.T) {
	s := buildScenario1(t)

	m1, err := s.MatchDocument("curly and funny curly -not -not", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"funny"}, m1.Terms)
	assert.Equal(t, StatusActual, m1.Status)

	m2, err := s.MatchDocumentPolicy(Parallel, "curly and funny curly -not -not", 2)
	require.NoError(t, err)
	sorted := append([]string(nil), m2.Terms...)
	sort.Strings(sorted)
	assert.Equal(t, []string{"curly", "funny"}, sorted)

	m3, err := s.MatchDocumentPolicy(Parallel, "curly and funny curly -not -not", 3)
	require.NoError(t, err)
	assert.Empty(t, m3.Terms)
	assert.Equal(t, StatusActual, m3.Status)
}

func TestScenario2_FindTopDocumentsAfterRemovals(t *testing.T) {
	s := buildScenario1(t)

	// "curly" matches docs 2,5; "funny" matches docs 1,2,3 -> {1,2,3,5}.
	results, err := s.FindTopDocuments("curly and funny")
	require.NoError(t, err)
	assert.Len(t, results, 4)

	s.RemoveDocument(5)
	results, err = s.FindTopDocuments("curly and funny")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	s.RemoveDocument(1)
	results, err = s.FindTopDocuments("curly and funny")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	s.RemoveDocumentPolicy(Parallel, 2)
	results, err = s.FindTopDocuments("curly and funny")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestScenario3_RemoveDuplicates(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)

	bodies := map[int]string{
		1: "alpha beta gamma",
		2: "delta epsilon zeta",
		3: "delta epsilon zeta",  // dup of 2
		4: "alpha beta gamma",    // dup of 1
		5: "alpha beta gamma",    // dup of 1
		6: "theta iota kappa",
		7: "theta iota kappa",    // dup of 6
		8: "lambda mu nu xi",
		9: "omicron pi rho sigma",
	}
	for id := 1; id <= 9; id++ {
		require.NoError(t, s.AddDocument(id, bodies[id], StatusActual, nil))
	}

	s.RemoveDuplicates()
	assert.Equal(t, []int{1, 2, 6, 8, 9}, s.Ids())
}

func TestScenario4_TFIDFOrdering(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	require.NoError(t, s.AddDocument(1, "white cat in the city", StatusActual, nil))
	require.NoError(t, s.AddDocument(2, "black cat in the village", StatusActual, nil))
	require.NoError(t, s.AddDocument(3, "red cat in the house", StatusActual, nil))

	results, err := s.FindTopDocuments("black cat village")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].ID)
}

func TestScenario5_InvalidIDs(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)

	err = s.AddDocument(-1, "x", StatusActual, nil)
	assert.Error(t, err)

	require.NoError(t, s.AddDocument(1, "ok", StatusActual, []int{1}))
	err = s.AddDocument(1, "dup", StatusActual, []int{1})
	assert.Error(t, err)
}

func TestNew_RejectsInvalidStopWords(t *testing.T) {
	_, err := New("good ba\x01d")
	assert.Error(t, err)
}

func TestNewWithOptions_ShardCountFeedsParallelRanking(t *testing.T) {
	s, err := NewWithOptions("and with", Options{ShardCount: 3, RequestWindowSize: 10})
	require.NoError(t, err)
	bodies := []string{
		"funny pet and nasty rat",
		"funny pet with curly hair",
		"funny pet and not very nasty rat",
		"pet with rat and rat and rat",
		"nasty rat with curly hair",
	}
	for i, b := range bodies {
		require.NoError(t, s.AddDocument(i+1, b, StatusActual, []int{1, 2}))
	}

	seq, err := s.FindTopDocumentsPolicy(Sequential, "curly and funny", ranker.DefaultPredicate())
	require.NoError(t, err)
	par, err := s.FindTopDocumentsPolicy(Parallel, "curly and funny", ranker.DefaultPredicate())
	require.NoError(t, err)

	seqIDs := make(map[int]bool, len(seq))
	for _, r := range seq {
		seqIDs[r.ID] = true
	}
	parIDs := make(map[int]bool, len(par))
	for _, r := range par {
		parIDs[r.ID] = true
	}
	assert.Equal(t, seqIDs, parIDs)
}

func TestEmptyRequestCount_TracksWindow(t *testing.T) {
	s, err := NewWithOptions("", Options{RequestWindowSize: 4})
	require.NoError(t, err)
	require.NoError(t, s.AddDocument(1, "cat dog", StatusActual, nil))

	_, err = s.FindTopDocuments("cat")
	require.NoError(t, err)
	assert.Equal(t, 0, s.EmptyRequestCount())

	_, err = s.FindTopDocuments("nothing matches this")
	require.NoError(t, err)
	assert.Equal(t, 1, s.EmptyRequestCount())

	_, err = s.FindTopDocuments("still nothing here")
	require.NoError(t, err)
	_, err = s.FindTopDocuments("or here either")
	require.NoError(t, err)
	// 4 calls recorded so far against a window of size 4: no eviction yet.
	assert.Equal(t, 3, s.EmptyRequestCount())

	// A 5th call evicts the oldest outcome ("cat", non-empty — no decrement)
	// and records another empty result, so the count rises to 4.
	_, err = s.FindTopDocuments("once more nothing")
	require.NoError(t, err)
	assert.Equal(t, 4, s.EmptyRequestCount())
}

func TestProcessQueriesJoined(t *testing.T) {
	s := buildScenario1(t)
	joined, err := ProcessQueriesJoined(s, []string{"curly", "funny"})
	require.NoError(t, err)
	assert.NotEmpty(t, joined)

	perQuery, err := ProcessQueries(s, []string{"curly", "funny"})
	require.NoError(t, err)
	var total int
	for _, r := range perQuery {
		total += len(r)
	}
	assert.Equal(t, total, len(joined))
}
