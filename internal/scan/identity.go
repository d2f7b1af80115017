package scan

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const identityShards = 256

type devInode struct {
	dev, inode uint64
}

// identitySet is a sharded (device_id, inode) set. Traversal hammers
// this map from every worker at once, so a single mutex would collapse
// the pool's parallelism back to one lane; sharding by xxhash of the
// key spreads contention across identityShards independent locks.
type identitySet struct {
	shards [identityShards]struct {
		mu   sync.Mutex
		seen map[devInode]struct{}
	}
}

func newIdentitySet() *identitySet {
	s := &identitySet{}
	for i := range s.shards {
		s.shards[i].seen = make(map[devInode]struct{})
	}
	return s
}

func shardFor(dev, inode uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], dev)
	binary.LittleEndian.PutUint64(buf[8:], inode)
	return xxhash.Sum64(buf[:]) % identityShards
}

// insert records (dev, inode) and reports whether this call was the
// first to see it (first-write-wins).
func (s *identitySet) insert(dev, inode uint64) bool {
	key := devInode{dev, inode}
	shard := &s.shards[shardFor(dev, inode)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if _, ok := shard.seen[key]; ok {
		return false
	}
	shard.seen[key] = struct{}{}
	return true
}
