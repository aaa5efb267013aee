package reqwindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_EmptyRequestCount(t *testing.T) {
	w := New(DefaultSize)
	for i := 0; i < 1439; i++ {
		w.Record(true)
	}
	w.Record(false)
	assert.Equal(t, 1439, w.EmptyRequestCount())

	w.Record(true)
	assert.Equal(t, 1439, w.EmptyRequestCount())

	w.Record(false)
	assert.Equal(t, 1438, w.EmptyRequestCount())
}

func TestWindow_SmallSizeEvicts(t *testing.T) {
	w := New(2)
	w.Record(true)
	w.Record(true)
	assert.Equal(t, 2, w.EmptyRequestCount())
	w.Record(false)
	assert.Equal(t, 1, w.EmptyRequestCount())
}

func TestDo_RecordsEmptyResult(t *testing.T) {
	w := New(10)
	_, err := Do(w, func() ([]int, error) { return nil, nil })
	assert.NoError(t, err)
	assert.Equal(t, 1, w.EmptyRequestCount())

	_, err = Do(w, func() ([]int, error) { return []int{1, 2}, nil })
	assert.NoError(t, err)
	assert.Equal(t, 1, w.EmptyRequestCount())
}
