package shard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForKey_Stable(t *testing.T) {
	a := ForKey("some-key", 16)
	b := ForKey("some-key", 16)
	require.Equal(t, a, b)
}

func TestForKey_InRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		idx := ForKey(fmt.Sprintf("key-%d", i), 8)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 8)
	}
}

func TestForKey_SingleShard(t *testing.T) {
	require.Zero(t, ForKey("anything", 1))
	require.Zero(t, ForKey("anything", 0))
}

func TestForKey_Spreads(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		seen[ForKey(fmt.Sprintf("key-%d", i), 8)] = true
	}
	require.Greater(t, len(seen), 1)
}
