package shardmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_AddAccumulates(t *testing.T) {
	m := New(4)
	m.Add(7, 1.5)
	m.Add(7, 2.5)
	assert.Equal(t, map[int]float64{7: 4.0}, m.Collect())
}

func TestMap_Erase(t *testing.T) {
	m := New(4)
	m.Add(1, 1.0)
	m.Add(2, 2.0)
	m.Erase(1)
	assert.Equal(t, map[int]float64{2: 2.0}, m.Collect())
}

func TestMap_ConcurrentAddsAreLinearizablePerKey(t *testing.T) {
	m := New(8)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Add(42, 1.0)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100.0, m.Collect()[42])
}

func TestNew_NonPositiveShardCountFallsBackToDefault(t *testing.T) {
	m := New(0)
	assert.Len(t, m.shards, DefaultShardCount)
}
