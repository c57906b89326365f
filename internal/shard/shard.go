// Package shard maps string keys onto a fixed number of shards.
package shard

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// ForKey returns the shard index for key in [0, shardCount). The mapping is
// stable for a given shardCount.
func ForKey(key string, shardCount int) int {
	if shardCount <= 1 {
		return 0
	}
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(key))
	v := binary.BigEndian.Uint64(h.Sum(nil))
	return int(v % uint64(shardCount))
}
