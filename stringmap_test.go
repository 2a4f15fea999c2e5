package intmap

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringMapBasic(t *testing.T) {
	sm, err := NewStringMap(16)
	require.NoError(t, err)
	assert.Zero(t, sm.SymbolSize())

	assertPut := func(key int32, val, prev string, found bool) {
		t.Helper()
		p, f, err := sm.Put(key, val)
		require.NoError(t, err)
		assert.Equal(t, found, f)
		assert.Equal(t, prev, p)
	}

	assertPut(1, "a1", "", false)
	assertPut(-2, "a2", "", false)
	assertPut(3, "a3", "", false)
	assertPut(-2, "b2", "a2", true)
	assertPut(3, "a3", "a3", true)

	assert.Equal(t, 3, sm.Len())
	assert.Positive(t, sm.SymbolSize())

	v, ok := sm.Get(-2)
	assert.True(t, ok)
	assert.Equal(t, "b2", v)

	v, ok = sm.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "a3", v)

	_, ok = sm.Get(2)
	assert.False(t, ok)
}

func TestStringMapGrowth(t *testing.T) {
	sm, err := NewStringMap(1)
	require.NoError(t, err)

	for i := -5000; i < 5000; i++ {
		_, found, err := sm.Put(int32(i), strconv.Itoa(i))
		require.NoError(t, err)
		assert.False(t, found)
	}

	assert.Equal(t, 10000, sm.Len())
	assert.Greater(t, sm.Cap(), sm.Len())

	for i := -5000; i < 5000; i++ {
		v, ok := sm.Get(int32(i))
		require.True(t, ok)
		require.Equal(t, strconv.Itoa(i), v)
	}
}

func TestStringMapInvalidCapacity(t *testing.T) {
	_, err := NewStringMap(0)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestStringMapCapacityExceeded(t *testing.T) {
	sm, err := NewStringMap(4)
	require.NoError(t, err)
	sm.index.maxCapacity = 4

	for i := int32(0); i < 2; i++ {
		_, _, err := sm.Put(i, "x")
		require.NoError(t, err)
	}
	size := sm.SymbolSize()

	_, _, err = sm.Put(2, "y")
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 2, sm.Len())
	// Nothing was saved for the failed put
	assert.Equal(t, size, sm.SymbolSize())
}

func ExampleStringMap() {
	sm, _ := NewStringMap(16)
	sm.Put(-7, "minus seven")
	v, ok := sm.Get(-7)
	fmt.Println(ok)
	fmt.Println(v)
	// Output: true
	// minus seven
}
