package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("analysis.division", "D9"))
	require.NoError(t, store.Set("analysis.division", "D10"))

	val, ok := store.Get("analysis.division")
	assert.True(t, ok)
	assert.Equal(t, "D10", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("i", 7))
	require.NoError(t, store.Set("i64", int64(9)))
	require.NoError(t, store.Set("f", 4.5))
	require.NoError(t, store.Set("b", true))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("s"), "text"},
		{"string wrong type", store.GetString("i"), ""},
		{"float", store.GetFloat("f"), 4.5},
		{"float from int", store.GetFloat("i"), 7.0},
		{"float from int64", store.GetFloat("i64"), 9.0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"bool", store.GetBool("b"), true},
		{"bool wrong type", store.GetBool("s"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveCountsAndLoadIsNoOp(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", "v"))

	require.NoError(t, store.Save())
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, 2, store.Saves())
	assert.Equal(t, "v", store.GetString("k"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("key", i)
			_ = store.Save()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Saves())
}
