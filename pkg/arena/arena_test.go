package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_InsertAndGet(t *testing.T) {
	a := New()
	h, stored := a.Insert("funny pet and nasty rat")
	assert.Equal(t, "funny pet and nasty rat", stored)

	got, ok := a.Get(h)
	require.True(t, ok)
	assert.Equal(t, stored, got)
}

func TestArena_DuplicatesCoexist(t *testing.T) {
	a := New()
	h1, _ := a.Insert("same text")
	h2, _ := a.Insert("same text")
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, a.Len())
}

func TestArena_DropInvalidatesHandle(t *testing.T) {
	a := New()
	h, _ := a.Insert("gone soon")
	a.Drop(h)
	_, ok := a.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 0, a.Len())
}

func TestArena_IndependentOfCallerBuffer(t *testing.T) {
	a := New()
	buf := []byte("mutable")
	h, _ := a.Insert(string(buf))
	copy(buf, "CHANGED")
	got, _ := a.Get(h)
	assert.Equal(t, "mutable", got)
}
