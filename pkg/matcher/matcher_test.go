package matcher

import (
	"testing"

	"github.com/arcsearch/fts/pkg/docindex"
	"github.com/arcsearch/fts/pkg/exec"
	"github.com/arcsearch/fts/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T) (*docindex.Index, *query.StopWordSet) {
	t.Helper()
	stop, err := query.NewStopWordSetFromString("and with")
	require.NoError(t, err)
	ix := docindex.New(stop)
	docs := []string{
		"funny pet and nasty rat",
		"funny pet with curly hair",
		"funny pet and not very nasty rat",
		"pet with rat and rat and rat",
		"nasty rat with curly hair",
	}
	for i, d := range docs {
		require.NoError(t, ix.AddDocument(i+1, d, docindex.StatusActual, []int{1, 2}))
	}
	return ix, stop
}

func TestMatchDocument_Sequential(t *testing.T) {
	ix, stop := buildIndex(t)
	m, err := MatchDocument(exec.Sequential, ix, stop, "curly and funny curly -not -not", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"funny"}, m.Terms)
	assert.Equal(t, docindex.StatusActual, m.Status)
}

func TestMatchDocument_MinusTermEmptiesMatch(t *testing.T) {
	ix, stop := buildIndex(t)
	m, err := MatchDocument(exec.Sequential, ix, stop, "curly and funny curly -not -not", 3)
	require.NoError(t, err)
	assert.Empty(t, m.Terms)
}

func TestMatchDocument_Parallel(t *testing.T) {
	ix, stop := buildIndex(t)
	m, err := MatchDocument(exec.Parallel, ix, stop, "curly and funny curly -not -not", 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"curly", "funny"}, m.Terms)

	m3, err := MatchDocument(exec.Parallel, ix, stop, "curly and funny curly -not -not", 3)
	require.NoError(t, err)
	assert.Empty(t, m3.Terms)
}
